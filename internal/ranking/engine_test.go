package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoulbrew/sitescope/internal/domain"
)

func dong(name, code string, attractiveness float64) *domain.DongStats {
	return &domain.DongStats{
		Name:                name,
		Code:                code,
		AttractivenessScore: attractiveness,
	}
}

func TestRankDongsDescendingTopN(t *testing.T) {
	dongs := []*domain.DongStats{
		dong("A", "1", 40),
		dong("B", "2", 90),
		dong("C", "3", 10),
		dong("D", "4", 70),
		dong("E", "5", 55),
	}

	ranked, err := RankDongs(dongs, domain.MetricAttractivenessScore, true, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Name)
	assert.Equal(t, "D", ranked[1].Name)
	assert.Equal(t, "E", ranked[2].Name)

	// Input order is untouched.
	assert.Equal(t, "A", dongs[0].Name)
	assert.Equal(t, "B", dongs[1].Name)
}

func TestRankDongsTiesKeepInputOrder(t *testing.T) {
	dongs := []*domain.DongStats{
		dong("first", "1", 50),
		dong("second", "2", 50),
		dong("third", "3", 50),
	}

	ranked, err := RankDongs(dongs, domain.MetricAttractivenessScore, true, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", ranked[0].Name)
	assert.Equal(t, "second", ranked[1].Name)
	assert.Equal(t, "third", ranked[2].Name)
}

func TestRankDongsMissingValuesSortLast(t *testing.T) {
	withDetail := dong("covered", "1", 0)
	withDetail.PeakSalesRatio = 35
	withDetail.DetailAvailable = true

	withoutDetail := dong("uncovered", "2", 0)
	lowDetail := dong("low", "3", 0)
	lowDetail.PeakSalesRatio = 5
	lowDetail.DetailAvailable = true

	dongs := []*domain.DongStats{withoutDetail, withDetail, lowDetail}

	ranked, err := RankDongs(dongs, domain.MetricPeakSalesRatio, true, 0)
	require.NoError(t, err)
	assert.Equal(t, "covered", ranked[0].Name)
	assert.Equal(t, "low", ranked[1].Name)
	assert.Equal(t, "uncovered", ranked[2].Name)

	// Missing values go last in ascending order too.
	ranked, err = RankDongs(dongs, domain.MetricPeakSalesRatio, false, 0)
	require.NoError(t, err)
	assert.Equal(t, "low", ranked[0].Name)
	assert.Equal(t, "covered", ranked[1].Name)
	assert.Equal(t, "uncovered", ranked[2].Name)
}

func TestRankDongsUnknownMetric(t *testing.T) {
	_, err := RankDongs(nil, "latte_index", true, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestRankDongsTopNLargerThanInput(t *testing.T) {
	dongs := []*domain.DongStats{dong("A", "1", 1), dong("B", "2", 2)}

	ranked, err := RankDongs(dongs, domain.MetricAttractivenessScore, true, 10)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestFilterDongs(t *testing.T) {
	a := dong("상계동", "1", 0)
	a.StoreCounts = map[string]int{"메가커피": 2}
	b := dong("목동", "2", 0)
	b.StoreCounts = map[string]int{"빽다방": 1}
	c := dong("자양동", "3", 0)

	dongs := []*domain.DongStats{a, b, c}

	t.Run("empty filter passes everything through", func(t *testing.T) {
		assert.Len(t, FilterDongs(dongs, domain.DongFilter{}), 3)
	})

	t.Run("exact name", func(t *testing.T) {
		got := FilterDongs(dongs, domain.DongFilter{DongName: "목동"})
		require.Len(t, got, 1)
		assert.Equal(t, "목동", got[0].Name)
	})

	t.Run("name selection set", func(t *testing.T) {
		got := FilterDongs(dongs, domain.DongFilter{DongNames: []string{"상계동", "자양동"}})
		require.Len(t, got, 2)
		assert.Equal(t, "상계동", got[0].Name)
		assert.Equal(t, "자양동", got[1].Name)
	})

	t.Run("brand presence", func(t *testing.T) {
		got := FilterDongs(dongs, domain.DongFilter{Brand: "메가커피"})
		require.Len(t, got, 1)
		assert.Equal(t, "상계동", got[0].Name)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		got := FilterDongs(dongs, domain.DongFilter{DongName: "없는동"})
		assert.Empty(t, got)
	})
}

func TestRankRecommendations(t *testing.T) {
	recs := []domain.Recommendation{
		{Brand: "메가커피", DongName: "A", AttractivenessScore: 30, DemandScore: 90},
		{Brand: "메가커피", DongName: "B", AttractivenessScore: 80, DemandScore: 10},
		{Brand: "메가커피", DongName: "C", AttractivenessScore: 55, DemandScore: 50},
	}

	ranked, err := RankRecommendations(recs, domain.MetricAttractivenessScore, true, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[0].DongName)
	assert.Equal(t, "C", ranked[1].DongName)

	ranked, err = RankRecommendations(recs, domain.MetricDemandScore, true, 0)
	require.NoError(t, err)
	assert.Equal(t, "A", ranked[0].DongName)
}

func TestRankRecommendationsRejectsDongOnlyMetrics(t *testing.T) {
	_, err := RankRecommendations(nil, domain.MetricCafeCount, true, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestFilterRecommendations(t *testing.T) {
	recs := []domain.Recommendation{
		{Brand: "메가커피", DongName: "A"},
		{Brand: "빽다방", DongName: "A"},
		{Brand: "메가커피", DongName: "B"},
	}

	got := FilterRecommendations(recs, domain.RecommendFilter{Brand: "메가커피"})
	require.Len(t, got, 2)

	got = FilterRecommendations(recs, domain.RecommendFilter{DongNames: []string{"A"}})
	require.Len(t, got, 2)

	got = FilterRecommendations(recs, domain.RecommendFilter{Brand: "빽다방", DongNames: []string{"B"}})
	assert.Empty(t, got)
}
