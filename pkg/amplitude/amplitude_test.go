package amplitude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundsDelta = 1e-9

func TestClipConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClipConfig
		wantErr bool
	}{
		{"neither mode", ClipConfig{}, false},
		{"percentile only", ClipConfig{PercentileEnabled: true, Percentile: DefaultPercentile}, false},
		{"stddev only", ClipConfig{StdDevEnabled: true, StdDevK: DefaultStdDevK}, false},
		{"both modes", ClipConfig{PercentileEnabled: true, Percentile: 99, StdDevEnabled: true, StdDevK: 2}, true},
		{"percentile zero", ClipConfig{PercentileEnabled: true, Percentile: 0}, true},
		{"percentile over 100", ClipConfig{PercentileEnabled: true, Percentile: 101}, true},
		{"stddev k zero", ClipConfig{StdDevEnabled: true, StdDevK: 0}, true},
		{"stddev k negative", ClipConfig{StdDevEnabled: true, StdDevK: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClipConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// Both clip modes enabled yields the configuration error for every input,
// including empty sample sets.
func TestComputeBounds_BothModesRejected(t *testing.T) {
	cfg := ClipConfig{PercentileEnabled: true, Percentile: 99, StdDevEnabled: true, StdDevK: 2}

	for _, samples := range [][]float32{nil, {}, {1, 2, 3}} {
		_, err := ComputeBounds(samples, cfg)
		require.ErrorIs(t, err, ErrInvalidClipConfig)
	}
}

func TestComputeBounds_Percentile(t *testing.T) {
	samples := []float32{-10, -5, 0, 5, 10}

	bounds, err := ComputeBounds(samples, ClipConfig{PercentileEnabled: true, Percentile: 100})
	require.NoError(t, err)

	assert.InDelta(t, -10.0, bounds.Min, boundsDelta)
	assert.InDelta(t, 10.0, bounds.Max, boundsDelta)
}

// Percentile clip bound is monotonically non-decreasing in the percentile.
func TestComputeBounds_PercentileMonotonic(t *testing.T) {
	samples := []float32{3, -1, 4, -1, 5, -9, 2, -6, 5, -3, 5, 8, 9, -7, 9}

	prev := -1.0

	for p := 5.0; p <= 100; p += 5 {
		bounds, err := ComputeBounds(samples, ClipConfig{PercentileEnabled: true, Percentile: p})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bounds.Max, prev, "percentile %v", p)
		assert.InDelta(t, -bounds.Max, bounds.Min, boundsDelta, "percentile bounds are symmetric about zero")

		prev = bounds.Max
	}
}

// Standard-deviation bounds are symmetric around the sample mean for any
// positive multiplier.
func TestComputeBounds_StdDevSymmetry(t *testing.T) {
	samples := []float32{10, 12, 14, 16, 18, 20}

	for _, k := range []float64{0.5, 1, 2, 3.5} {
		bounds, err := ComputeBounds(samples, ClipConfig{StdDevEnabled: true, StdDevK: k})
		require.NoError(t, err)

		stats := Summarize(samples)
		assert.InDelta(t, stats.Mean-bounds.Min, bounds.Max-stats.Mean, boundsDelta, "k=%v", k)
		assert.Less(t, bounds.Min, stats.Mean)
		assert.Greater(t, bounds.Max, stats.Mean)
	}
}

func TestComputeBounds_NoClipUsesMinMax(t *testing.T) {
	bounds, err := ComputeBounds([]float32{-3, 7}, ClipConfig{})
	require.NoError(t, err)

	assert.InDelta(t, -3.0, bounds.Min, boundsDelta)
	assert.InDelta(t, 7.0, bounds.Max, boundsDelta)
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]float32{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 2.0, stats.Min, boundsDelta)
	assert.InDelta(t, 9.0, stats.Max, boundsDelta)
	assert.InDelta(t, 5.0, stats.Mean, boundsDelta)
	assert.InDelta(t, 2.0, stats.StdDev, boundsDelta)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

// depth = twt * velocity / 2: at 1500 m/s and 2000 us sampling, sample 1000
// sits at 2 s TWT, which is 1500 m deep.
func TestDepthAxis(t *testing.T) {
	axis := DepthAxis(1001, 2000, 1500)

	require.Len(t, axis, 1001)
	assert.InDelta(t, 0.0, axis[0], boundsDelta)
	assert.InDelta(t, 1500.0, axis[1000], boundsDelta)
}
