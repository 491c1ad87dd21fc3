// internal/analytics/normalize.go
package analytics

// MinMaxNormalize rescales values into [0,1] using the min and max of the
// input. A flat distribution (max == min, including single-element input)
// normalizes to all zeros: it carries no discriminating signal and must not
// divide by zero.
//
// Normalization is applied over the full neighborhood universe, never over a
// filtered subset, so displayed scores stay stable under UI filtering.
func MinMaxNormalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	if len(values) == 0 {
		return normalized
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		return normalized
	}

	span := max - min
	for i, v := range values {
		normalized[i] = (v - min) / span
	}
	return normalized
}
