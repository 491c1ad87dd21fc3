// internal/domain/models.go
package domain

// DongStats holds the raw statistics and derived scores for one
// administrative neighborhood (dong). Instances are built once per snapshot
// load and never mutated afterwards.
type DongStats struct {
	Name string `json:"dong_name" db:"dong_name"`
	Code string `json:"dong_code" db:"dong_code"`

	MonthlySales  int64 `json:"monthly_sales" db:"monthly_sales"`
	TotalWorkers  int   `json:"total_workers" db:"total_workers"`
	FemaleWorkers int   `json:"female_workers" db:"female_workers"`
	CafeCount     int   `json:"cafe_count" db:"cafe_count"`

	// StoreCounts maps a tracked low-cost brand name to the number of its
	// stores in this dong. Brands are a subset of all cafes, so the sum is
	// unrelated to CafeCount.
	StoreCounts map[string]int `json:"brands" db:"-"`

	// Monthly sales broken down by customer age bracket, in won.
	Age10 int64 `json:"age_10" db:"age_10"`
	Age20 int64 `json:"age_20" db:"age_20"`
	Age30 int64 `json:"age_30" db:"age_30"`
	Age40 int64 `json:"age_40" db:"age_40"`
	Age50 int64 `json:"age_50" db:"age_50"`
	Age60 int64 `json:"age_60" db:"age_60"`

	RealEstateCost   float64 `json:"real_estate_cost" db:"real_estate_cost"`
	ClosedStoreCount int     `json:"closed_store_count" db:"closed_store_count"`

	// TotalBrandCount is the sum of tracked low-cost brand stores only.
	TotalBrandCount int `json:"total_brand_count" db:"total_brand_count"`

	// Composite scores, all in [0,100]. Computed once at snapshot build.
	DemandScore         float64 `json:"demand_score" db:"demand_score"`
	CompetitionScore    float64 `json:"competition_score" db:"competition_score"`
	CostScore           float64 `json:"cost_score" db:"cost_score"`
	AttractivenessScore float64 `json:"attractiveness_score" db:"attractiveness_score"`

	// Advanced metrics. Sourced from the detailed-analysis overlay when it
	// has an entry for this dong, otherwise computed from the raw fields
	// where possible and 0 where not.
	OpportunityScore     float64 `json:"opportunity_score" db:"opportunity_score"`
	PenetrationRate      float64 `json:"penetration_rate" db:"penetration_rate"`
	PeakSalesRatio       float64 `json:"peak_sales_ratio" db:"peak_sales_ratio"`
	WeekdaySalesRatio    float64 `json:"weekday_sales_ratio" db:"weekday_sales_ratio"`
	AvgOpDays            float64 `json:"avg_op_days" db:"avg_op_days"`
	ClosureRate          float64 `json:"closure_rate" db:"closure_rate"`
	CompetitionIntensity float64 `json:"competition_intensity" db:"competition_intensity"`
	PenetrationScore     int     `json:"penetration_score" db:"penetration_score"`
	CommercialIndex      int     `json:"commercial_index" db:"commercial_index"`

	// DetailAvailable is false when the overlay had no entry for this dong.
	// Advanced metric values then carry the lossy default of 0; consumers
	// that need to tell "no data" from a true zero check this flag.
	DetailAvailable bool `json:"detail_available" db:"detail_available"`
}

// StoreCount returns the store count for a brand, 0 when absent.
func (d *DongStats) StoreCount(brand string) int {
	if d.StoreCounts == nil {
		return 0
	}
	return d.StoreCounts[brand]
}

// AgeSales returns the six age-bracket sales values in bracket order.
func (d *DongStats) AgeSales() [6]int64 {
	return [6]int64{d.Age10, d.Age20, d.Age30, d.Age40, d.Age50, d.Age60}
}

// BrandProfile is the per-brand rollup used for rankings and radar
// comparisons. It is a view over the snapshot, recomputed whenever the
// active brand selection changes.
type BrandProfile struct {
	Name              string  `json:"name"`
	Color             string  `json:"color"`
	TotalStores       int     `json:"total_stores"`
	DongCount         int     `json:"dong_count"`
	AvgMonthlySales   float64 `json:"avg_monthly_sales"`
	MinMonthlySales   int64   `json:"min_monthly_sales"`
	MaxMonthlySales   int64   `json:"max_monthly_sales"`
	AvgAttractiveness float64 `json:"avg_attractiveness"`
}

// Recommendation is one (brand, dong) candidate where the brand has no
// footprint. Neighborhood figures are denormalized for display.
type Recommendation struct {
	Brand               string  `json:"brand"`
	DongName            string  `json:"dong_name"`
	DongCode            string  `json:"dong_code"`
	AttractivenessScore float64 `json:"attractiveness_score"`
	DemandScore         float64 `json:"demand_score"`
	CompetitionScore    float64 `json:"competition_score"`
	CostScore           float64 `json:"cost_score"`
	TotalWorkers        int     `json:"total_workers"`
	CafeCount           int     `json:"cafe_count"`
	MonthlySales        int64   `json:"monthly_sales"`
}

// RecommendationGroup collects the candidate brands for one dong when
// recommendations are produced across multiple brands at once. Brands are
// ordered by each brand's own average attractiveness, descending.
type RecommendationGroup struct {
	DongName            string           `json:"dong_name"`
	DongCode            string           `json:"dong_code"`
	AttractivenessScore float64          `json:"attractiveness_score"`
	Brands              []string         `json:"brands"`
	Records             []Recommendation `json:"records"`
}

// MapPoint is a single store location for the map layer.
type MapPoint struct {
	Brand    string  `json:"brand" db:"brand"`
	Name     string  `json:"name" db:"name"`
	Lat      float64 `json:"lat" db:"lat"`
	Lng      float64 `json:"lng" db:"lng"`
	DongCode string  `json:"dong_code" db:"dong_code"`
	DongName string  `json:"dong_name" db:"dong_name"`
}

// BrandSummary is the precomputed per-brand summary shipped in the snapshot
// (overview cards). BrandProfile supersedes it for filtered views.
type BrandSummary struct {
	TotalStores     int     `json:"total_stores" db:"total_stores"`
	DongCount       int     `json:"dong_count" db:"dong_count"`
	AvgMonthlySales float64 `json:"avg_monthly_sales" db:"avg_monthly_sales"`
	MinMonthlySales int64   `json:"min_monthly_sales" db:"min_monthly_sales"`
	MaxMonthlySales int64   `json:"max_monthly_sales" db:"max_monthly_sales"`
}

// DongFilter narrows the neighborhood list. Zero values mean "no filter".
type DongFilter struct {
	// DongName matches exactly when set.
	DongName string
	// DongNames restricts to a selection set when non-empty.
	DongNames []string
	// Brand keeps only dongs where the brand has at least one store.
	Brand string
}

// RecommendFilter narrows the recommendation universe.
type RecommendFilter struct {
	// Brand selects a single brand's universe; empty means all brands.
	Brand string
	// DongNames restricts to a selection set when non-empty.
	DongNames []string
}

// VitalityCount is one bucket of the commercial-vitality distribution.
type VitalityCount struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
