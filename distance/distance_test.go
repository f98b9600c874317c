package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-12)
		})
	}
}

func TestL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Pythagoras", []float64{0, 0}, []float64{3, 4}, 5},
		{"Identical", []float64{1.5, -2}, []float64{1.5, -2}, 0},
		{"OneDim", []float64{-1}, []float64{2}, 3},
		{"Sqrt27", []float64{1, 2, 3}, []float64{4, 5, 6}, math.Sqrt(27)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := L2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.InDelta(t, got*got, SquaredL2(tt.a, tt.b), 1e-9)
		})
	}
}

func TestProvider(t *testing.T) {
	f, err := Provider(MetricL2)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

	f, err = Provider(MetricSquaredL2)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

	_, err = Provider(Metric(999))
	assert.Error(t, err)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "L2", MetricL2.String())
	assert.Equal(t, "SquaredL2", MetricSquaredL2.String())
	assert.Equal(t, "Unknown(42)", Metric(42).String())
}
