// internal/analytics/scorer.go
package analytics

import "github.com/seoulbrew/sitescope/internal/domain"

// Fixed scoring weights. These must match the published methodology exactly;
// changing them silently would invalidate every stored comparison.
const (
	demandSalesWeight   = 0.5
	demandWorkersWeight = 0.5

	attractivenessDemandWeight      = 0.4
	attractivenessCompetitionWeight = 0.3
	attractivenessCostWeight        = 0.3
)

// Penetration-rate band boundaries, in percent. Both boundaries are
// inclusive on the lower band: exactly 3% is still under-validated, exactly
// 15% is still optimal.
const (
	penetrationLowerBound = 3.0
	penetrationUpperBound = 15.0
)

// SiteCalculator computes the derived site-viability metrics for one
// neighborhood from its raw fields and the globally normalized inputs.
// Every division guards the zero-denominator case and yields 0 rather than
// propagating an error; absence of source data is tracked separately.
type SiteCalculator struct{}

func NewSiteCalculator() *SiteCalculator {
	return &SiteCalculator{}
}

// DemandScore combines normalized monthly sales and worker count, equally
// weighted, into a 0-100 score.
func (sc *SiteCalculator) DemandScore(normSales, normWorkers float64) float64 {
	return (normSales*demandSalesWeight + normWorkers*demandWorkersWeight) * 100
}

// CompetitionScore inverts the normalized cafe count: fewer cafes score
// higher.
func (sc *SiteCalculator) CompetitionScore(normCafeCount float64) float64 {
	return (1 - normCafeCount) * 100
}

// CostScore inverts the normalized real-estate cost: cheaper rent scores
// higher.
func (sc *SiteCalculator) CostScore(normRealEstateCost float64) float64 {
	return (1 - normRealEstateCost) * 100
}

// AttractivenessScore is the weighted composite of the three sub-scores.
func (sc *SiteCalculator) AttractivenessScore(demand, competition, cost float64) float64 {
	return demand*attractivenessDemandWeight +
		competition*attractivenessCompetitionWeight +
		cost*attractivenessCostWeight
}

// OpportunityScore is workers per low-cost store, a proxy for unmet demand.
// 0 when the dong has no tracked-brand stores.
func (sc *SiteCalculator) OpportunityScore(totalWorkers, lowCostStores int) float64 {
	if lowCostStores <= 0 {
		return 0
	}
	return float64(totalWorkers) / float64(lowCostStores)
}

// PenetrationRate is the tracked brands' share of all cafes, in percent.
// 0 when the dong has no cafes at all.
func (sc *SiteCalculator) PenetrationRate(lowCostStores, cafeCount int) float64 {
	if cafeCount <= 0 {
		return 0
	}
	return float64(lowCostStores) / float64(cafeCount) * 100
}

// PenetrationBand buckets a penetration rate: <=3% under-validated (1),
// <=15% optimal (4), above over-saturated (2).
func (sc *SiteCalculator) PenetrationBand(rate float64) int {
	switch {
	case rate <= penetrationLowerBound:
		return domain.PenetrationUnderValidated
	case rate <= penetrationUpperBound:
		return domain.PenetrationOptimal
	default:
		return domain.PenetrationOverSaturated
	}
}

// PeakSalesRatio is the 06:00-14:00 share of total sales, in percent.
func (sc *SiteCalculator) PeakSalesRatio(peakSales, totalSales int64) float64 {
	if totalSales <= 0 {
		return 0
	}
	return float64(peakSales) / float64(totalSales) * 100
}

// WeekdaySalesRatio is the weekday share of weekday plus weekend sales, in
// percent.
func (sc *SiteCalculator) WeekdaySalesRatio(weekdaySales, weekendSales int64) float64 {
	total := weekdaySales + weekendSales
	if total <= 0 {
		return 0
	}
	return float64(weekdaySales) / float64(total) * 100
}

// ClosureRate is the closed share of all stores at the location, in percent.
func (sc *SiteCalculator) ClosureRate(closedStores, totalStores int) float64 {
	if totalStores <= 0 {
		return 0
	}
	return float64(closedStores) / float64(totalStores) * 100
}

// CompetitionIntensity is cafes per 100 workers. 0 when the dong has no
// workers.
func (sc *SiteCalculator) CompetitionIntensity(cafeCount, totalWorkers int) float64 {
	if totalWorkers <= 0 {
		return 0
	}
	return float64(cafeCount) / float64(totalWorkers) * 100
}

// ApplyScores fills the derived score fields for the whole neighborhood
// universe in place. Normalization is computed over the full slice, then
// each dong is scored independently, so the result is deterministic for a
// given input order. Overlay-supplied metrics (peak/weekday ratios,
// operating days, commercial index) are left untouched; the snapshot build
// merges those afterwards.
func ApplyScores(dongs []*domain.DongStats, brands []string) {
	if len(dongs) == 0 {
		return
	}

	sales := make([]float64, len(dongs))
	workers := make([]float64, len(dongs))
	cafes := make([]float64, len(dongs))
	costs := make([]float64, len(dongs))
	for i, d := range dongs {
		sales[i] = float64(d.MonthlySales)
		workers[i] = float64(d.TotalWorkers)
		cafes[i] = float64(d.CafeCount)
		costs[i] = d.RealEstateCost
	}

	normSales := MinMaxNormalize(sales)
	normWorkers := MinMaxNormalize(workers)
	normCafes := MinMaxNormalize(cafes)
	normCosts := MinMaxNormalize(costs)

	calc := NewSiteCalculator()
	for i, d := range dongs {
		total := 0
		for _, brand := range brands {
			total += d.StoreCount(brand)
		}
		d.TotalBrandCount = total

		d.DemandScore = calc.DemandScore(normSales[i], normWorkers[i])
		d.CompetitionScore = calc.CompetitionScore(normCafes[i])
		d.CostScore = calc.CostScore(normCosts[i])
		d.AttractivenessScore = calc.AttractivenessScore(d.DemandScore, d.CompetitionScore, d.CostScore)

		d.OpportunityScore = calc.OpportunityScore(d.TotalWorkers, total)
		d.PenetrationRate = calc.PenetrationRate(total, d.CafeCount)
		d.PenetrationScore = calc.PenetrationBand(d.PenetrationRate)
		d.CompetitionIntensity = calc.CompetitionIntensity(d.CafeCount, d.TotalWorkers)
	}
}
