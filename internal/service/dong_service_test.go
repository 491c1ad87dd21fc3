package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoulbrew/sitescope/internal/domain"
)

func TestGetDong(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	d, err := svc.GetDong(context.Background(), "1147054000")
	require.NoError(t, err)
	assert.Equal(t, "목동", d.Name)

	_, err = svc.GetDong(context.Background(), "9999999999")
	assert.ErrorIs(t, err, domain.ErrDongNotFound)
}

func TestListDongsRanksDescending(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	dongs, err := svc.ListDongs(context.Background(), domain.DongFilter{}, domain.MetricMonthlySales, 0)
	require.NoError(t, err)
	require.Len(t, dongs, 4)
	assert.Equal(t, "역삼1동", dongs[0].Name)
	assert.Equal(t, "수유동", dongs[3].Name)

	top2, err := svc.ListDongs(context.Background(), domain.DongFilter{}, domain.MetricMonthlySales, 2)
	require.NoError(t, err)
	require.Len(t, top2, 2)
	assert.Equal(t, "목동", top2[1].Name)
}

func TestListDongsBrandFilter(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	dongs, err := svc.ListDongs(context.Background(),
		domain.DongFilter{Brand: "컴포즈커피"}, domain.MetricTotalBrandCount, 0)
	require.NoError(t, err)
	require.Len(t, dongs, 2)
	for _, d := range dongs {
		assert.Greater(t, d.StoreCount("컴포즈커피"), 0)
	}
}

func TestListDongsValidation(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	_, err := svc.ListDongs(context.Background(),
		domain.DongFilter{Brand: "스타벅스"}, domain.MetricMonthlySales, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownBrand)

	_, err = svc.ListDongs(context.Background(), domain.DongFilter{}, "not_a_metric", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestListDongsEmptyResultIsNotAnError(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	dongs, err := svc.ListDongs(context.Background(),
		domain.DongFilter{DongName: "없는동"}, domain.MetricMonthlySales, 0)
	require.NoError(t, err)
	assert.Empty(t, dongs)
}

func TestVitalityDistribution(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	dist, err := svc.VitalityDistribution(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, dist, 4)

	// Buckets come back in descending activity order, empty ones included.
	assert.Equal(t, domain.VitalityDynamic, dist[0].Index)
	assert.Equal(t, "dynamic", dist[0].Label)
	assert.Equal(t, 1, dist[0].Count) // 목동
	assert.Equal(t, domain.VitalityExpanding, dist[1].Index)
	assert.Equal(t, 0, dist[1].Count)
	assert.Equal(t, domain.VitalityStagnant, dist[2].Index)
	assert.Equal(t, 1, dist[2].Count) // 자양동
	assert.Equal(t, domain.VitalityContracting, dist[3].Index)
	assert.Equal(t, 0, dist[3].Count)
}

func TestVitalityDistributionBrandFilter(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	// 메가커피 is present in 목동 but not 자양동.
	dist, err := svc.VitalityDistribution(context.Background(), []string{"메가커피"})
	require.NoError(t, err)
	assert.Equal(t, 1, dist[0].Count)
	assert.Equal(t, 0, dist[2].Count)

	_, err = svc.VitalityDistribution(context.Background(), []string{"스타벅스"})
	assert.ErrorIs(t, err, domain.ErrUnknownBrand)
}

func TestMapPointsFilters(t *testing.T) {
	svc := NewDongService(newTestSnapshot(t), nil)

	all := svc.MapPoints(context.Background(), nil, nil)
	assert.Len(t, all, 3)

	mega := svc.MapPoints(context.Background(), []string{"메가커피"}, nil)
	require.Len(t, mega, 2)
	for _, p := range mega {
		assert.Equal(t, "메가커피", p.Brand)
	}

	// Dong names were attached from codes at build time.
	yeoksam := svc.MapPoints(context.Background(), nil, []string{"역삼1동"})
	require.Len(t, yeoksam, 1)
	assert.Equal(t, "메가커피 역삼점", yeoksam[0].Name)

	none := svc.MapPoints(context.Background(), []string{"빽다방"}, nil)
	assert.Empty(t, none)
}
