// internal/service/dong_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/seoulbrew/sitescope/internal/cache"
	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/ranking"
	"github.com/seoulbrew/sitescope/internal/snapshot"
)

// DongService answers the neighborhood-level queries: lookups, filtered and
// ranked lists, vitality distribution, map points. All queries are
// read-only over the snapshot.
type DongService struct {
	snap  *snapshot.Snapshot
	cache cache.QueryCache
}

func NewDongService(snap *snapshot.Snapshot, cacheImpl cache.QueryCache) *DongService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopQueryCache()
	}
	return &DongService{snap: snap, cache: cacheImpl}
}

// GetDong returns one neighborhood by administrative code.
func (s *DongService) GetDong(ctx context.Context, code string) (*domain.DongStats, error) {
	return s.snap.DongByCode(code)
}

// ListDongs filters and ranks the neighborhood universe. An empty result is
// a valid answer, not an error; only unknown sort keys and brands fail.
func (s *DongService) ListDongs(ctx context.Context, filter domain.DongFilter, sortBy domain.Metric, topN int) ([]*domain.DongStats, error) {
	if filter.Brand != "" && !s.snap.HasBrand(filter.Brand) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBrand, filter.Brand)
	}
	if _, err := domain.ParseMetric(string(sortBy)); err != nil {
		return nil, err
	}

	key := cache.Key(s.snap.ID(), "dongs",
		filter.DongName,
		strings.Join(filter.DongNames, ","),
		filter.Brand,
		string(sortBy),
		strconv.Itoa(topN),
	)
	if dongs, ok, err := s.cache.GetDongList(ctx, key); err == nil && ok {
		return dongs, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dong list: cache get failed")
	}

	filtered := ranking.FilterDongs(s.snap.Dongs(), filter)
	ranked, err := ranking.RankDongs(filtered, sortBy, true, topN)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDongList(ctx, key, ranked); err != nil {
		log.Warn().Err(err).Msg("dong list: cache set failed")
	}

	return ranked, nil
}

// VitalityDistribution counts neighborhoods per commercial-vitality bucket.
// When brands is non-empty, only dongs where at least one of those brands
// is present are counted. Dongs without overlay data have no vitality
// classification and are excluded.
func (s *DongService) VitalityDistribution(ctx context.Context, brands []string) ([]domain.VitalityCount, error) {
	for _, brand := range brands {
		if !s.snap.HasBrand(brand) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBrand, brand)
		}
	}

	counts := make(map[int]int)
	for _, d := range s.snap.Dongs() {
		if !d.DetailAvailable {
			continue
		}
		if len(brands) > 0 && !anyBrandPresent(d, brands) {
			continue
		}
		counts[d.CommercialIndex]++
	}

	distribution := make([]domain.VitalityCount, 0, 4)
	for _, index := range domain.VitalityIndexes() {
		distribution = append(distribution, domain.VitalityCount{
			Index: index,
			Label: domain.VitalityLabel(index),
			Count: counts[index],
		})
	}
	return distribution, nil
}

// MapPoints returns store locations filtered by brand set and dong-name
// selection.
func (s *DongService) MapPoints(ctx context.Context, brands, dongNames []string) []domain.MapPoint {
	brandSet := toSet(brands)
	dongSet := toSet(dongNames)

	points := make([]domain.MapPoint, 0, len(s.snap.MapPoints()))
	for _, p := range s.snap.MapPoints() {
		if brandSet != nil {
			if _, ok := brandSet[p.Brand]; !ok {
				continue
			}
		}
		if dongSet != nil {
			if _, ok := dongSet[p.DongName]; !ok {
				continue
			}
		}
		points = append(points, p)
	}
	return points
}

func anyBrandPresent(d *domain.DongStats, brands []string) bool {
	for _, brand := range brands {
		if d.StoreCount(brand) > 0 {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{})
		}
		set[v] = struct{}{}
	}
	return set
}
