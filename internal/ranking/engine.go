// internal/ranking/engine.go

// Package ranking implements the multi-criteria sort/filter engine for
// neighborhoods and recommendation records. Sorting is stable: ties keep
// input order, missing values go last regardless of direction, and top-N
// truncation only happens after the full sort.
package ranking

import (
	"sort"
	"strings"

	"github.com/seoulbrew/sitescope/internal/domain"
)

// rankBy orders items by the extracted value without mutating the input
// slice. The extractor's second return marks the value as present; absent
// values always sort after present ones.
func rankBy[T any](items []T, value func(T) (float64, bool), descending bool, topN int) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := value(ranked[i])
		vj, okj := value(ranked[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if descending {
			return vi > vj
		}
		return vi < vj
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// RankDongs sorts neighborhoods by a validated metric key.
func RankDongs(dongs []*domain.DongStats, key domain.Metric, descending bool, topN int) ([]*domain.DongStats, error) {
	if _, err := domain.ParseMetric(string(key)); err != nil {
		return nil, err
	}
	return rankBy(dongs, func(d *domain.DongStats) (float64, bool) {
		return key.DongValue(d)
	}, descending, topN), nil
}

// FilterDongs applies the dong filter; an empty filter returns the input
// order unchanged. A result with zero rows is a valid outcome, not an
// error.
func FilterDongs(dongs []*domain.DongStats, filter domain.DongFilter) []*domain.DongStats {
	selection := nameSet(filter.DongNames)

	filtered := make([]*domain.DongStats, 0, len(dongs))
	for _, d := range dongs {
		if filter.DongName != "" && d.Name != filter.DongName {
			continue
		}
		if selection != nil {
			if _, ok := selection[d.Name]; !ok {
				continue
			}
		}
		if filter.Brand != "" && d.StoreCount(filter.Brand) == 0 {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// RankRecommendations sorts recommendation records by one of the
// recommendation sort keys.
func RankRecommendations(recs []domain.Recommendation, key domain.Metric, descending bool, topN int) ([]domain.Recommendation, error) {
	if _, err := domain.ParseRecommendMetric(string(key)); err != nil {
		return nil, err
	}
	return rankBy(recs, func(r domain.Recommendation) (float64, bool) {
		return key.RecommendValue(&r)
	}, descending, topN), nil
}

// FilterRecommendations narrows the recommendation universe by brand and
// dong-name selection.
func FilterRecommendations(recs []domain.Recommendation, filter domain.RecommendFilter) []domain.Recommendation {
	selection := nameSet(filter.DongNames)

	filtered := make([]domain.Recommendation, 0, len(recs))
	for _, r := range recs {
		if filter.Brand != "" && r.Brand != filter.Brand {
			continue
		}
		if selection != nil {
			if _, ok := selection[r.DongName]; !ok {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func nameSet(names []string) map[string]struct{} {
	var set map[string]struct{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{})
		}
		set[name] = struct{}{}
	}
	return set
}
