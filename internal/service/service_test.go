package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/snapshot"
)

// newTestSnapshot builds a four-dong, three-brand fixture. 빽다방 has no
// footprint anywhere; 목동 and 자양동 carry a detail overlay.
func newTestSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()

	raw := &snapshot.RawSnapshot{
		Brands: []string{"메가커피", "컴포즈커피", "빽다방"},
		BrandColors: map[string]string{
			"메가커피": "#FFD400", "컴포즈커피": "#8B5A2B", "빽다방": "#1E3A8A",
		},
		BrandStats: map[string]domain.BrandSummary{
			"메가커피": {TotalStores: 5, DongCount: 2},
		},
		DongData: []*domain.DongStats{
			{
				Name: "역삼1동", Code: "1168064000",
				MonthlySales: 2000, TotalWorkers: 9000, CafeCount: 120, RealEstateCost: 80,
				StoreCounts: map[string]int{"메가커피": 4, "컴포즈커피": 2},
			},
			{
				Name: "목동", Code: "1147054000",
				MonthlySales: 1200, TotalWorkers: 5000, CafeCount: 60, RealEstateCost: 40,
				StoreCounts: map[string]int{"메가커피": 1},
			},
			{
				Name: "자양동", Code: "1121574000",
				MonthlySales: 800, TotalWorkers: 3000, CafeCount: 30, RealEstateCost: 25,
				StoreCounts: map[string]int{"컴포즈커피": 1},
			},
			{
				Name: "수유동", Code: "1130553000",
				MonthlySales: 300, TotalWorkers: 1000, CafeCount: 10, RealEstateCost: 15,
			},
		},
		MapPoints: []domain.MapPoint{
			{Brand: "메가커피", Name: "메가커피 역삼점", Lat: 37.50, Lng: 127.03, DongCode: "1168064000"},
			{Brand: "메가커피", Name: "메가커피 목동점", Lat: 37.53, Lng: 126.87, DongCode: "1147054000"},
			{Brand: "컴포즈커피", Name: "컴포즈 자양점", Lat: 37.53, Lng: 127.08, DongCode: "1121574000"},
		},
	}

	overlay := snapshot.Overlay{
		"목동": {
			OpportunityScore: 5000, PeakSalesRatio: 42, AvgOpDays: 27,
			CommercialIndex: domain.VitalityDynamic, PenetrationScore: domain.PenetrationOptimal,
		},
		"자양동": {
			OpportunityScore: 3000, PeakSalesRatio: 30, AvgOpDays: 25,
			CommercialIndex: domain.VitalityStagnant, PenetrationScore: domain.PenetrationUnderValidated,
		},
	}

	snap, err := snapshot.Build(raw, overlay, "test-snapshot")
	require.NoError(t, err)
	return snap
}
