// internal/domain/buckets.go
package domain

// Penetration band scores. The rate is bucketed into three bands: too few
// low-cost stores to validate demand, the optimal band, and saturation.
const (
	PenetrationUnderValidated = 1
	PenetrationOverSaturated  = 2
	PenetrationOptimal        = 4
)

// Commercial vitality index values. The joint open/close-activity
// classification is computed upstream; this package only labels it.
const (
	VitalityContracting = 1
	VitalityStagnant    = 2
	VitalityExpanding   = 3
	VitalityDynamic     = 4
)

var penetrationLabels = map[int]string{
	PenetrationUnderValidated: "under-validated",
	PenetrationOptimal:        "optimal",
	PenetrationOverSaturated:  "over-saturated",
}

var vitalityLabels = map[int]string{
	VitalityDynamic:     "dynamic",
	VitalityExpanding:   "expanding",
	VitalityStagnant:    "stagnant",
	VitalityContracting: "contracting",
}

// PenetrationLabel returns a human-readable label for a penetration band.
func PenetrationLabel(score int) string {
	if label, ok := penetrationLabels[score]; ok {
		return label
	}

	return "unknown"
}

// VitalityLabel returns a human-readable label for a commercial index value.
func VitalityLabel(index int) string {
	if label, ok := vitalityLabels[index]; ok {
		return label
	}

	return "unknown"
}

// VitalityIndexes lists the four index values in descending activity order.
func VitalityIndexes() []int {
	return []int{VitalityDynamic, VitalityExpanding, VitalityStagnant, VitalityContracting}
}
