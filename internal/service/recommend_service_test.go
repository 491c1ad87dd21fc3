package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoulbrew/sitescope/internal/domain"
)

func newRecommendService(t *testing.T) *RecommendService {
	t.Helper()
	snap := newTestSnapshot(t)
	return NewRecommendService(snap, NewBrandService(snap), nil)
}

func TestRecommendNeverIncludesDongsWithPresence(t *testing.T) {
	snap := newTestSnapshot(t)
	svc := NewRecommendService(snap, NewBrandService(snap), nil)

	recs, err := svc.Recommend(context.Background(),
		domain.RecommendFilter{}, domain.MetricAttractivenessScore, 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	for _, rec := range recs {
		d, err := snap.DongByCode(rec.DongCode)
		require.NoError(t, err)
		assert.Zero(t, d.StoreCount(rec.Brand),
			"%s recommended for %s where it already operates", rec.Brand, rec.DongName)
	}
}

func TestRecommendBrandFilterAndTopN(t *testing.T) {
	svc := newRecommendService(t)

	// 메가커피 is absent from 자양동 and 수유동 only.
	recs, err := svc.Recommend(context.Background(),
		domain.RecommendFilter{Brand: "메가커피"}, domain.MetricAttractivenessScore, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.GreaterOrEqual(t, recs[0].AttractivenessScore, recs[1].AttractivenessScore)

	top1, err := svc.Recommend(context.Background(),
		domain.RecommendFilter{Brand: "메가커피"}, domain.MetricAttractivenessScore, 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, recs[0].DongName, top1[0].DongName)
}

func TestRecommendValidation(t *testing.T) {
	svc := newRecommendService(t)

	_, err := svc.Recommend(context.Background(),
		domain.RecommendFilter{Brand: "스타벅스"}, domain.MetricAttractivenessScore, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownBrand)

	// cafe_count is a dong metric, not a recommendation sort key.
	_, err = svc.Recommend(context.Background(),
		domain.RecommendFilter{}, domain.MetricCafeCount, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestRecommendDongSelection(t *testing.T) {
	svc := newRecommendService(t)

	recs, err := svc.Recommend(context.Background(),
		domain.RecommendFilter{DongNames: []string{"수유동"}}, domain.MetricDemandScore, 0)
	require.NoError(t, err)
	// No brand operates in 수유동, so all three qualify.
	require.Len(t, recs, 3)
	for _, rec := range recs {
		assert.Equal(t, "수유동", rec.DongName)
	}
}

func TestRecommendGrouped(t *testing.T) {
	svc := newRecommendService(t)

	groups, err := svc.RecommendGrouped(context.Background(),
		domain.RecommendFilter{}, domain.MetricAttractivenessScore, 0)
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	// Each dong surfaces exactly once, in ranked order.
	seen := make(map[string]bool)
	for i, group := range groups {
		assert.False(t, seen[group.DongCode], "dong %s grouped twice", group.DongName)
		seen[group.DongCode] = true
		if i > 0 {
			assert.GreaterOrEqual(t,
				groups[i-1].AttractivenessScore, group.AttractivenessScore)
		}
		assert.Len(t, group.Records, len(group.Brands))
	}

	// 수유동 has no footprint at all, so every brand is a candidate there.
	var suyu *domain.RecommendationGroup
	for i := range groups {
		if groups[i].DongName == "수유동" {
			suyu = &groups[i]
		}
	}
	require.NotNil(t, suyu)
	assert.Len(t, suyu.Brands, 3)
}

func TestRecommendGroupedBrandOrdering(t *testing.T) {
	snap := newTestSnapshot(t)
	brands := NewBrandService(snap)
	svc := NewRecommendService(snap, brands, nil)

	groups, err := svc.RecommendGrouped(context.Background(),
		domain.RecommendFilter{}, domain.MetricAttractivenessScore, 0)
	require.NoError(t, err)

	attractiveness := make(map[string]float64)
	for _, brand := range snap.Brands() {
		profile, err := brands.GetProfile(context.Background(), brand)
		require.NoError(t, err)
		attractiveness[brand] = profile.AvgAttractiveness
	}

	for _, group := range groups {
		for i := 1; i < len(group.Brands); i++ {
			assert.GreaterOrEqual(t,
				attractiveness[group.Brands[i-1]], attractiveness[group.Brands[i]],
				"group %s not ordered by brand attractiveness", group.DongName)
		}
	}
}

func TestRecommendGroupedTopNLimitsGroups(t *testing.T) {
	svc := newRecommendService(t)

	groups, err := svc.RecommendGrouped(context.Background(),
		domain.RecommendFilter{}, domain.MetricAttractivenessScore, 2)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}
