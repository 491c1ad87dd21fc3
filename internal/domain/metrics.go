// internal/domain/metrics.go
package domain

import "fmt"

// Metric is a recognized sort/filter key over DongStats. Keys outside this
// enumeration are rejected instead of silently no-op sorting.
type Metric string

const (
	MetricTotalBrandCount      Metric = "total_brand_count"
	MetricAttractivenessScore  Metric = "attractiveness_score"
	MetricDemandScore          Metric = "demand_score"
	MetricCompetitionScore     Metric = "competition_score"
	MetricCostScore            Metric = "cost_score"
	MetricMonthlySales         Metric = "monthly_sales"
	MetricTotalWorkers         Metric = "total_workers"
	MetricCafeCount            Metric = "cafe_count"
	MetricOpportunityScore     Metric = "opportunity_score"
	MetricPenetrationRate      Metric = "penetration_rate"
	MetricPeakSalesRatio       Metric = "peak_sales_ratio"
	MetricWeekdaySalesRatio    Metric = "weekday_sales_ratio"
	MetricAvgOpDays            Metric = "avg_op_days"
	MetricClosureRate          Metric = "closure_rate"
	MetricCompetitionIntensity Metric = "competition_intensity"
	MetricPenetrationScore     Metric = "penetration_score"
	MetricCommercialIndex      Metric = "commercial_index"
)

var dongMetrics = map[Metric]func(*DongStats) (float64, bool){
	MetricTotalBrandCount:     func(d *DongStats) (float64, bool) { return float64(d.TotalBrandCount), true },
	MetricAttractivenessScore: func(d *DongStats) (float64, bool) { return d.AttractivenessScore, true },
	MetricDemandScore:         func(d *DongStats) (float64, bool) { return d.DemandScore, true },
	MetricCompetitionScore:    func(d *DongStats) (float64, bool) { return d.CompetitionScore, true },
	MetricCostScore:           func(d *DongStats) (float64, bool) { return d.CostScore, true },
	MetricMonthlySales:        func(d *DongStats) (float64, bool) { return float64(d.MonthlySales), true },
	MetricTotalWorkers:        func(d *DongStats) (float64, bool) { return float64(d.TotalWorkers), true },
	MetricCafeCount:           func(d *DongStats) (float64, bool) { return float64(d.CafeCount), true },

	// Computed from raw snapshot fields, so always present.
	MetricOpportunityScore:     func(d *DongStats) (float64, bool) { return d.OpportunityScore, true },
	MetricPenetrationRate:      func(d *DongStats) (float64, bool) { return d.PenetrationRate, true },
	MetricPenetrationScore:     func(d *DongStats) (float64, bool) { return float64(d.PenetrationScore), true },
	MetricCompetitionIntensity: func(d *DongStats) (float64, bool) { return d.CompetitionIntensity, true },

	// Overlay-sourced metrics: treated as missing when the detail overlay
	// had no entry, so they sort last instead of interleaving with true
	// zeros.
	MetricPeakSalesRatio:    func(d *DongStats) (float64, bool) { return d.PeakSalesRatio, d.DetailAvailable },
	MetricWeekdaySalesRatio: func(d *DongStats) (float64, bool) { return d.WeekdaySalesRatio, d.DetailAvailable },
	MetricAvgOpDays:         func(d *DongStats) (float64, bool) { return d.AvgOpDays, d.DetailAvailable },
	MetricClosureRate:       func(d *DongStats) (float64, bool) { return d.ClosureRate, d.DetailAvailable },
	MetricCommercialIndex:   func(d *DongStats) (float64, bool) { return float64(d.CommercialIndex), d.DetailAvailable },
}

// ParseMetric validates a raw sort/filter key.
func ParseMetric(key string) (Metric, error) {
	m := Metric(key)
	if _, ok := dongMetrics[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return m, nil
}

// DongValue extracts the metric value from a neighborhood. The second
// return is false when the value is unavailable for this dong.
func (m Metric) DongValue(d *DongStats) (float64, bool) {
	fn, ok := dongMetrics[m]
	if !ok {
		return 0, false
	}
	return fn(d)
}

// Recommendation sort keys are the subset the recommendation view offers.
var recommendMetrics = map[Metric]func(*Recommendation) float64{
	MetricAttractivenessScore: func(r *Recommendation) float64 { return r.AttractivenessScore },
	MetricDemandScore:         func(r *Recommendation) float64 { return r.DemandScore },
	MetricCostScore:           func(r *Recommendation) float64 { return r.CostScore },
}

// ParseRecommendMetric validates a recommendation sort key.
func ParseRecommendMetric(key string) (Metric, error) {
	m := Metric(key)
	if _, ok := recommendMetrics[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return m, nil
}

// RecommendValue extracts the metric value from a recommendation record.
func (m Metric) RecommendValue(r *Recommendation) (float64, bool) {
	fn, ok := recommendMetrics[m]
	if !ok {
		return 0, false
	}
	return fn(r), true
}
