// SPDX-License-Identifier: EPL-2.0

package slicing

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/ik5/padchop/sample"
)

// TransientConfig tunes onset detection.
type TransientConfig struct {
	// Smoothing is the width of the centered moving average over the
	// amplitude envelope.
	Smoothing time.Duration
	// Lookback is the span of the recent average an onset is compared with.
	Lookback time.Duration
	// MinGap is the shortest distance between two accepted onsets.
	MinGap time.Duration
	// Threshold is how many times louder than the recent average an onset must be.
	Threshold float64
	// Floor is the absolute level below which nothing counts as an onset.
	Floor float64
}

// DefaultTransientConfig is the configuration used by Compute.
func DefaultTransientConfig() TransientConfig {
	return TransientConfig{
		Smoothing: 10 * time.Millisecond,
		Lookback:  50 * time.Millisecond,
		MinGap:    10 * time.Millisecond,
		Threshold: 1.5,
		Floor:     0.001,
	}
}

// DetectTransients returns the onset frames of smp in ascending order.
// Frame 0 is always the first onset. The closing boundary is not included.
func DetectTransients(smp *sample.Sample, cfg TransientConfig) []int {
	if smp == nil || smp.Frames == 0 {
		return nil
	}

	n := smp.Frames
	sr := smp.SampleRate

	window := min(max(durationFrames(sr, cfg.Smoothing), 1), n)
	lookback := max(durationFrames(sr, cfg.Lookback), 1)
	minGap := max(durationFrames(sr, cfg.MinGap), 1)

	smoothed := smoothEnvelope(smp, window)

	// recent[i] - recent[j] is the sum of smoothed[j:i].
	recent := make([]float64, n+1)
	floats.CumSum(recent[1:], smoothed)

	onsets := []int{0}
	last := 0
	for i := lookback; i < n; i++ {
		if i-last < minGap {
			continue
		}

		from := max(i-lookback, 0)
		mean := (recent[i] - recent[from]) / float64(i-from)

		if smoothed[i] > mean*cfg.Threshold && smoothed[i] > cfg.Floor {
			onsets = append(onsets, i)
			last = i
		}
	}

	return onsets
}

// smoothEnvelope returns the moving average of the amplitude envelope over
// [i-window/2, i+window/2], clipped to the buffer.
func smoothEnvelope(smp *sample.Sample, window int) []float64 {
	n := smp.Frames

	env := make([]float64, n)
	if smp.Stereo {
		for i := range env {
			env[i] = (math.Abs(float64(smp.Left[i])) + math.Abs(float64(smp.Right[i]))) * 0.5
		}
	} else {
		for i := range env {
			env[i] = math.Abs(float64(smp.Left[i]))
		}
	}

	cum := make([]float64, n+1)
	floats.CumSum(cum[1:], env)

	half := window / 2
	for i := range env {
		start := max(i-half, 0)
		end := min(i+half+1, n)
		env[i] = (cum[end] - cum[start]) / float64(end-start)
	}

	return env
}

func transientSlices(smp *sample.Sample, maxRegions int, cfg TransientConfig) Slices {
	onsets := DetectTransients(smp, cfg)

	if len(onsets) > maxRegions {
		step := max(len(onsets)/maxRegions, 1)
		kept := onsets[:0]
		for i := 0; i < len(onsets) && len(kept) < maxRegions; i += step {
			kept = append(kept, onsets[i])
		}
		onsets = kept
	}

	if len(onsets) == 0 || onsets[len(onsets)-1] < smp.Frames {
		onsets = append(onsets, smp.Frames)
	}

	regions := make(Slices, 0, len(onsets)-1)
	for i := 0; i+1 < len(onsets); i++ {
		start, end := onsets[i], onsets[i+1]
		if start < end {
			regions = append(regions, Region{Start: start, End: end})
		}
	}

	return wholeIfEmpty(regions, smp.Frames)
}

func durationFrames(sampleRate float64, d time.Duration) int {
	return int(math.Round(sampleRate * d.Seconds()))
}
