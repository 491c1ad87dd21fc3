// internal/snapshot/snapshot.go

// Package snapshot builds the immutable data aggregate the query services
// operate on. A Snapshot is constructed once from a source, has every
// derived score computed exactly once, and is read-only for the rest of the
// process lifetime.
package snapshot

import (
	"fmt"

	"github.com/seoulbrew/sitescope/internal/analytics"
	"github.com/seoulbrew/sitescope/internal/domain"
)

// RawSnapshot mirrors the precomputed dashboard payload produced by the
// offline pipeline (dashboard_data.json).
type RawSnapshot struct {
	Brands       []string                       `json:"brands"`
	BrandColors  map[string]string              `json:"brand_colors"`
	BrandStats   map[string]domain.BrandSummary `json:"brand_stats"`
	DongData     []*domain.DongStats            `json:"dong_data"`
	MapPoints    []domain.MapPoint              `json:"map_points"`
	RecommendTop []domain.Recommendation        `json:"recommend_top"`
}

// DetailMetrics is one dong's entry in the detailed-analysis overlay.
type DetailMetrics struct {
	OpportunityScore     float64 `json:"opportunity_score" db:"opportunity_score"`
	PenetrationRate      float64 `json:"penetration_rate" db:"penetration_rate"`
	PeakSalesRatio       float64 `json:"peak_sales_ratio" db:"peak_sales_ratio"`
	WeekdaySalesRatio    float64 `json:"weekday_sales_ratio" db:"weekday_sales_ratio"`
	AvgOpDays            float64 `json:"avg_op_days" db:"avg_op_days"`
	ClosureRate          float64 `json:"closure_rate" db:"closure_rate"`
	CompetitionIntensity float64 `json:"competition_intensity" db:"competition_intensity"`
	PenetrationScore     int     `json:"penetration_score" db:"penetration_score"`
	CommercialIndex      int     `json:"commercial_index" db:"commercial_index"`
}

// Overlay maps a punctuation-normalized dong name to its detail metrics.
type Overlay map[string]DetailMetrics

// Snapshot is the immutable aggregate. All exported accessors are
// read-only; callers that sort copy first.
type Snapshot struct {
	id              string
	brands          []string
	brandColors     map[string]string
	brandStats      map[string]domain.BrandSummary
	brandSet        map[string]struct{}
	dongs           []*domain.DongStats
	dongsByCode     map[string]*domain.DongStats
	mapPoints       []domain.MapPoint
	recommendations []domain.Recommendation
}

// Build assembles a Snapshot from the raw payload and the optional detail
// overlay. The id should fingerprint the source content; it keys the query
// cache. Derived scores are computed here, once, over the full universe.
func Build(raw *RawSnapshot, overlay Overlay, id string) (*Snapshot, error) {
	if raw == nil || len(raw.DongData) == 0 {
		return nil, fmt.Errorf("%w: no dong data", domain.ErrSnapshotMissing)
	}
	if len(raw.Brands) == 0 {
		return nil, fmt.Errorf("%w: no tracked brands", domain.ErrSnapshotMissing)
	}
	for _, d := range raw.DongData {
		if d.Code == "" || d.Name == "" {
			return nil, fmt.Errorf("%w: dong record missing name or code", domain.ErrSnapshotMissing)
		}
	}

	analytics.ApplyScores(raw.DongData, raw.Brands)
	mergeOverlay(raw.DongData, overlay)

	s := &Snapshot{
		id:          id,
		brands:      raw.Brands,
		brandColors: raw.BrandColors,
		brandStats:  raw.BrandStats,
		brandSet:    make(map[string]struct{}, len(raw.Brands)),
		dongs:       raw.DongData,
		dongsByCode: make(map[string]*domain.DongStats, len(raw.DongData)),
	}
	for _, brand := range raw.Brands {
		s.brandSet[brand] = struct{}{}
	}
	for _, d := range raw.DongData {
		s.dongsByCode[d.Code] = d
	}

	s.mapPoints = attachDongNames(raw.MapPoints, s.dongsByCode)

	// The recommendation universe is always regenerated from the footprint
	// data rather than trusted from the payload: a record may only exist
	// where the brand has zero presence, and precomputed lists go stale the
	// moment footprints change.
	s.recommendations = buildRecommendations(raw.DongData, raw.Brands)

	return s, nil
}

func mergeOverlay(dongs []*domain.DongStats, overlay Overlay) {
	if len(overlay) == 0 {
		return
	}
	for _, d := range dongs {
		detail, ok := overlay[NormalizeDongName(d.Name)]
		if !ok {
			continue
		}
		// Overlay values win over locally computed ones; upstream had the
		// time-banded source data the snapshot itself lacks.
		d.OpportunityScore = detail.OpportunityScore
		d.PenetrationRate = detail.PenetrationRate
		d.PeakSalesRatio = detail.PeakSalesRatio
		d.WeekdaySalesRatio = detail.WeekdaySalesRatio
		d.AvgOpDays = detail.AvgOpDays
		d.ClosureRate = detail.ClosureRate
		d.CompetitionIntensity = detail.CompetitionIntensity
		d.PenetrationScore = detail.PenetrationScore
		d.CommercialIndex = detail.CommercialIndex
		d.DetailAvailable = true
	}
}

func attachDongNames(points []domain.MapPoint, byCode map[string]*domain.DongStats) []domain.MapPoint {
	attached := make([]domain.MapPoint, len(points))
	for i, p := range points {
		if p.DongName == "" {
			if d, ok := byCode[p.DongCode]; ok {
				p.DongName = d.Name
			}
		}
		attached[i] = p
	}
	return attached
}

func buildRecommendations(dongs []*domain.DongStats, brands []string) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(dongs))
	for _, brand := range brands {
		for _, d := range dongs {
			if d.StoreCount(brand) > 0 {
				continue
			}
			recs = append(recs, domain.Recommendation{
				Brand:               brand,
				DongName:            d.Name,
				DongCode:            d.Code,
				AttractivenessScore: d.AttractivenessScore,
				DemandScore:         d.DemandScore,
				CompetitionScore:    d.CompetitionScore,
				CostScore:           d.CostScore,
				TotalWorkers:        d.TotalWorkers,
				CafeCount:           d.CafeCount,
				MonthlySales:        d.MonthlySales,
			})
		}
	}
	return recs
}

// ID fingerprints the snapshot content; cache keys include it so a reload
// never serves stale entries.
func (s *Snapshot) ID() string { return s.id }

// Brands returns the tracked brand list in display order.
func (s *Snapshot) Brands() []string { return s.brands }

// HasBrand reports whether the brand is tracked by this snapshot.
func (s *Snapshot) HasBrand(brand string) bool {
	_, ok := s.brandSet[brand]
	return ok
}

// BrandColor returns the display color for a brand, "" when unknown.
func (s *Snapshot) BrandColor(brand string) string { return s.brandColors[brand] }

// BrandSummary returns the precomputed overview stats for a brand.
func (s *Snapshot) BrandSummary(brand string) (domain.BrandSummary, bool) {
	stats, ok := s.brandStats[brand]
	return stats, ok
}

// Dongs returns all neighborhoods in snapshot order.
func (s *Snapshot) Dongs() []*domain.DongStats { return s.dongs }

// DongByCode looks a neighborhood up by its administrative code.
func (s *Snapshot) DongByCode(code string) (*domain.DongStats, error) {
	d, ok := s.dongsByCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDongNotFound, code)
	}
	return d, nil
}

// MapPoints returns all store locations.
func (s *Snapshot) MapPoints() []domain.MapPoint { return s.mapPoints }

// Recommendations returns the full recommendation universe: every (brand,
// dong) pair where the brand has no footprint.
func (s *Snapshot) Recommendations() []domain.Recommendation { return s.recommendations }
