package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMaxNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect []float64
	}{
		{
			name:   "empty input",
			input:  []float64{},
			expect: []float64{},
		},
		{
			name:   "single value normalizes to zero",
			input:  []float64{42},
			expect: []float64{0},
		},
		{
			name:   "flat distribution normalizes to zeros",
			input:  []float64{7, 7, 7},
			expect: []float64{0, 0, 0},
		},
		{
			name:   "min maps to 0 and max to 1",
			input:  []float64{10, 20, 30},
			expect: []float64{0, 0.5, 1},
		},
		{
			name:   "negative values",
			input:  []float64{-10, 0, 10},
			expect: []float64{0, 0.5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMaxNormalize(tt.input)
			require.Len(t, got, len(tt.expect))
			for i := range tt.expect {
				assert.InDelta(t, tt.expect[i], got[i], 1e-9)
			}
		})
	}
}

func TestMinMaxNormalizeSalesExample(t *testing.T) {
	got := MinMaxNormalize([]float64{100, 500, 1000})

	require.Len(t, got, 3)
	assert.InDelta(t, 0.0, got[0], 1e-9)
	assert.InDelta(t, 0.4444, got[1], 0.0001)
	assert.InDelta(t, 1.0, got[2], 1e-9)
}

func TestMinMaxNormalizeBounds(t *testing.T) {
	got := MinMaxNormalize([]float64{3, 1, 4, 1, 5, 9, 2, 6})

	for i, v := range got {
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 1.0, "index %d", i)
	}
}
