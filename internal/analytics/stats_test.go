package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{7}, 0.25, 7},
		{"exact index", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"interpolated", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"upper quartile", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"below range", []float64{1, 2}, -1, 1},
		{"above range", []float64{1, 2}, 2, 2},
		{"degenerate set", []float64{2, 8, 8, 8, 8, 8}, 0.25, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.sorted, tt.p), 1e-12)
		})
	}
}

func TestQuartiles_DoesNotSortInput(t *testing.T) {
	values := []float64{9, 1, 5, 3}
	q1, q3 := Quartiles(values)

	assert.InDelta(t, 2.5, q1, 1e-12)
	assert.InDelta(t, 6, q3, 1e-12)
	assert.Equal(t, []float64{9, 1, 5, 3}, values)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.InDelta(t, 8, Median([]float64{9, 7, 8}), 1e-12)
	assert.InDelta(t, 7.5, Median([]float64{9, 6, 7, 8}), 1e-12)
}

func TestStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 2.138089935, SampleStdDev(values), 1e-9)
	assert.InDelta(t, 2.0, PopulationStdDev(values), 1e-12)
	assert.Equal(t, 0.0, SampleStdDev([]float64{8}), "single observation")
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, PopulationStdDev(nil))
}

func TestMeanAndSum(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 5, Mean([]float64{2, 4, 9}), 1e-12)
	assert.Equal(t, 0.0, Sum(nil))
	assert.InDelta(t, 15, Sum([]float64{2, 4, 9}), 1e-12)
}
