// Package amplitude computes display clip bounds and depth axis scales over
// trace sample arrays.
package amplitude

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidClipConfig indicates both clip modes enabled at once, or a
// percentile/multiplier outside its valid range.
var ErrInvalidClipConfig = errors.New("invalid clip configuration")

// Default clip settings, matching long-standing display conventions for
// seismic sections.
const (
	DefaultPercentile = 99.0
	DefaultStdDevK    = 2.0
)

// ClipConfig selects one of two mutually exclusive clipping modes.
type ClipConfig struct {
	PercentileEnabled bool
	Percentile        float64
	StdDevEnabled     bool
	StdDevK           float64
}

// Validate enforces mode exclusivity and parameter ranges. Enabling both
// modes is a configuration error, never a silent precedence choice.
func (c ClipConfig) Validate() error {
	if c.PercentileEnabled && c.StdDevEnabled {
		return fmt.Errorf("%w: percentile and standard-deviation clipping are mutually exclusive", ErrInvalidClipConfig)
	}

	if c.PercentileEnabled && (c.Percentile <= 0 || c.Percentile > 100) {
		return fmt.Errorf("%w: percentile %v outside (0, 100]", ErrInvalidClipConfig, c.Percentile)
	}

	if c.StdDevEnabled && c.StdDevK <= 0 {
		return fmt.Errorf("%w: standard-deviation multiplier %v must be positive", ErrInvalidClipConfig, c.StdDevK)
	}

	return nil
}

// Bounds is a display amplitude range.
type Bounds struct {
	Min float64
	Max float64
}

// Stats summarizes a sample distribution for display consumers.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes min/max/mean/standard deviation over the samples.
func Summarize(samples []float32) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	stats := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0

	for _, s := range samples {
		v := float64(s)
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}

	stats.Mean = sum / float64(len(samples))

	sq := 0.0
	for _, s := range samples {
		d := float64(s) - stats.Mean
		sq += d * d
	}

	stats.StdDev = math.Sqrt(sq / float64(len(samples)))

	return stats
}

// ComputeBounds derives display bounds from the samples per the configured
// clip mode. With neither mode enabled the raw min/max is returned.
func ComputeBounds(samples []float32, cfg ClipConfig) (Bounds, error) {
	if err := cfg.Validate(); err != nil {
		return Bounds{}, err
	}

	stats := Summarize(samples)

	switch {
	case cfg.PercentileEnabled:
		p := percentileAbs(samples, cfg.Percentile)

		return Bounds{Min: -p, Max: p}, nil
	case cfg.StdDevEnabled:
		spread := cfg.StdDevK * stats.StdDev

		return Bounds{Min: stats.Mean - spread, Max: stats.Mean + spread}, nil
	default:
		return Bounds{Min: stats.Min, Max: stats.Max}, nil
	}
}

// percentileAbs returns the value at the given percentile of the
// absolute-amplitude distribution, with linear interpolation between ranks.
func percentileAbs(samples []float32, percentile float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	abs := make([]float64, len(samples))
	for i, s := range samples {
		abs[i] = math.Abs(float64(s))
	}

	sort.Float64s(abs)

	rank := percentile / 100 * float64(len(abs)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))

	if lo == hi {
		return abs[lo]
	}

	frac := rank - float64(lo)

	return abs[lo]*(1-frac) + abs[hi]*frac
}

// DepthAxis converts the two-way-time of each sample index into depth via
// depth = twt * velocity / 2. It scales the vertical axis only; amplitudes
// are never resampled. sampleInterval is in microseconds, velocity in the
// measurement system's length unit per second.
func DepthAxis(sampleCount int, sampleInterval uint16, velocity float64) []float64 {
	axis := make([]float64, sampleCount)
	intervalSec := float64(sampleInterval) / 1e6

	for i := range axis {
		twt := float64(i) * intervalSec
		axis[i] = twt * velocity / 2
	}

	return axis
}
