// internal/service/recommend_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/seoulbrew/sitescope/internal/cache"
	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/ranking"
	"github.com/seoulbrew/sitescope/internal/snapshot"
)

// RecommendService serves the site-recommendation queries over the
// precomputed opportunity universe: every (brand, dong) pair where the
// brand has zero footprint.
type RecommendService struct {
	snap   *snapshot.Snapshot
	brands *BrandService
	cache  cache.QueryCache
}

func NewRecommendService(snap *snapshot.Snapshot, brands *BrandService, cacheImpl cache.QueryCache) *RecommendService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopQueryCache()
	}
	return &RecommendService{snap: snap, brands: brands, cache: cacheImpl}
}

// Recommend filters and ranks the recommendation universe. A brand that is
// already present in a dong can never appear: the universe is built from
// footprint complements and re-checked here, so the invariant holds even
// against a stale cache entry or a hand-edited payload.
func (s *RecommendService) Recommend(ctx context.Context, filter domain.RecommendFilter, sortBy domain.Metric, topN int) ([]domain.Recommendation, error) {
	if filter.Brand != "" && !s.snap.HasBrand(filter.Brand) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBrand, filter.Brand)
	}
	if _, err := domain.ParseRecommendMetric(string(sortBy)); err != nil {
		return nil, err
	}

	key := cache.Key(s.snap.ID(), "recommend",
		filter.Brand,
		strings.Join(filter.DongNames, ","),
		string(sortBy),
		strconv.Itoa(topN),
	)
	if recs, ok, err := s.cache.GetRecommendations(ctx, key); err == nil && ok {
		return s.enforceFootprint(recs), nil
	} else if err != nil {
		log.Warn().Err(err).Msg("recommend: cache get failed")
	}

	filtered := ranking.FilterRecommendations(s.snap.Recommendations(), filter)
	ranked, err := ranking.RankRecommendations(filtered, sortBy, true, topN)
	if err != nil {
		return nil, err
	}
	ranked = s.enforceFootprint(ranked)

	if err := s.cache.SetRecommendations(ctx, key, ranked); err != nil {
		log.Warn().Err(err).Msg("recommend: cache set failed")
	}

	return ranked, nil
}

// RecommendGrouped produces multi-brand recommendations grouped per dong.
// Each dong surfaces once, in ranked order; candidate brands within a group
// are ordered by the brand's own average attractiveness, descending.
func (s *RecommendService) RecommendGrouped(ctx context.Context, filter domain.RecommendFilter, sortBy domain.Metric, topN int) ([]domain.RecommendationGroup, error) {
	// Rank the full universe first; per-dong grouping truncates afterwards
	// so a low-ranked record cannot displace a better dong.
	recs, err := s.Recommend(ctx, filter, sortBy, 0)
	if err != nil {
		return nil, err
	}

	attractiveness := make(map[string]float64)
	for _, brand := range s.snap.Brands() {
		profile, err := s.brands.GetProfile(ctx, brand)
		if err != nil {
			return nil, err
		}
		attractiveness[brand] = profile.AvgAttractiveness
	}

	byCode := make(map[string]*domain.RecommendationGroup)
	order := make([]string, 0)
	for _, rec := range recs {
		group, ok := byCode[rec.DongCode]
		if !ok {
			group = &domain.RecommendationGroup{
				DongName:            rec.DongName,
				DongCode:            rec.DongCode,
				AttractivenessScore: rec.AttractivenessScore,
			}
			byCode[rec.DongCode] = group
			order = append(order, rec.DongCode)
		}
		group.Brands = append(group.Brands, rec.Brand)
		group.Records = append(group.Records, rec)
	}

	groups := make([]domain.RecommendationGroup, 0, len(order))
	for _, code := range order {
		group := byCode[code]
		sortBrandsByAttractiveness(group, attractiveness)
		groups = append(groups, *group)
		if topN > 0 && len(groups) == topN {
			break
		}
	}
	return groups, nil
}

// enforceFootprint drops any record whose brand has presence in the dong.
func (s *RecommendService) enforceFootprint(recs []domain.Recommendation) []domain.Recommendation {
	kept := recs[:0:len(recs)]
	for _, rec := range recs {
		d, err := s.snap.DongByCode(rec.DongCode)
		if err != nil || d.StoreCount(rec.Brand) > 0 {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func sortBrandsByAttractiveness(group *domain.RecommendationGroup, attractiveness map[string]float64) {
	sort.SliceStable(group.Brands, func(i, j int) bool {
		return attractiveness[group.Brands[i]] > attractiveness[group.Brands[j]]
	})
	sort.SliceStable(group.Records, func(i, j int) bool {
		return attractiveness[group.Records[i].Brand] > attractiveness[group.Records[j].Brand]
	})
}
