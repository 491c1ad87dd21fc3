// internal/service/brand_service.go
package service

import (
	"context"
	"fmt"

	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/snapshot"
)

// BrandService computes per-brand rollups over the snapshot. Profiles are
// views: cheap to recompute whenever the active brand selection changes.
type BrandService struct {
	snap *snapshot.Snapshot
}

func NewBrandService(snap *snapshot.Snapshot) *BrandService {
	return &BrandService{snap: snap}
}

// BrandInfo pairs a brand with its display color, in snapshot order.
type BrandInfo struct {
	Name    string              `json:"name"`
	Color   string              `json:"color"`
	Summary domain.BrandSummary `json:"summary"`
}

// Brands returns the tracked brands in display order with their
// precomputed overview stats.
func (s *BrandService) Brands(ctx context.Context) []BrandInfo {
	infos := make([]BrandInfo, 0, len(s.snap.Brands()))
	for _, brand := range s.snap.Brands() {
		summary, _ := s.snap.BrandSummary(brand)
		infos = append(infos, BrandInfo{
			Name:    brand,
			Color:   s.snap.BrandColor(brand),
			Summary: summary,
		})
	}
	return infos
}

// GetProfile aggregates one brand's footprint. A brand absent from every
// dong yields a zero-valued profile, never an error.
func (s *BrandService) GetProfile(ctx context.Context, brand string) (domain.BrandProfile, error) {
	if !s.snap.HasBrand(brand) {
		return domain.BrandProfile{}, fmt.Errorf("%w: %q", domain.ErrUnknownBrand, brand)
	}

	profile := domain.BrandProfile{
		Name:  brand,
		Color: s.snap.BrandColor(brand),
	}

	var (
		salesSum   int64
		attractSum float64
	)
	for _, d := range s.snap.Dongs() {
		count := d.StoreCount(brand)
		// Total stores spans the full universe, not the footprint subset.
		profile.TotalStores += count
		if count == 0 {
			continue
		}

		if profile.DongCount == 0 || d.MonthlySales < profile.MinMonthlySales {
			profile.MinMonthlySales = d.MonthlySales
		}
		if d.MonthlySales > profile.MaxMonthlySales {
			profile.MaxMonthlySales = d.MonthlySales
		}
		profile.DongCount++
		salesSum += d.MonthlySales
		attractSum += d.AttractivenessScore
	}

	if profile.DongCount > 0 {
		profile.AvgMonthlySales = float64(salesSum) / float64(profile.DongCount)
		profile.AvgAttractiveness = attractSum / float64(profile.DongCount)
	}

	return profile, nil
}

// ListProfiles aggregates each brand of the active selection. An empty
// selection means every tracked brand.
func (s *BrandService) ListProfiles(ctx context.Context, activeBrands []string) ([]domain.BrandProfile, error) {
	brands := activeBrands
	if len(brands) == 0 {
		brands = s.snap.Brands()
	}

	profiles := make([]domain.BrandProfile, 0, len(brands))
	for _, brand := range brands {
		profile, err := s.GetProfile(ctx, brand)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
