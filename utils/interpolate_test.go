// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestLinearInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		y0, y1 float32
		x      float32
		want   float32
	}{
		{name: "at start", y0: 0.2, y1: 0.8, x: 0, want: 0.2},
		{name: "midpoint", y0: 0, y1: 1, x: 0.5, want: 0.5},
		{name: "quarter", y0: 1, y1: 2, x: 0.25, want: 1.25},
		{name: "descending", y0: 1, y1: -1, x: 0.5, want: 0},
		{name: "equal taps", y0: 0.3, y1: 0.3, x: 0.9, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := LinearInterpolate(tt.y0, tt.y1, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("LinearInterpolate(%v, %v, %v) = %v, want %v", tt.y0, tt.y1, tt.x, got, tt.want)
			}
		})
	}
}

func TestInterpolationTaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pos      float64
		frames   int
		i0, i1   int
		wantFrac float32
	}{
		{name: "integer position", pos: 3, frames: 10, i0: 3, i1: 4, wantFrac: 0},
		{name: "fractional position", pos: 2.5, frames: 10, i0: 2, i1: 3, wantFrac: 0.5},
		{name: "last frame clamps second tap", pos: 9.25, frames: 10, i0: 9, i1: 9, wantFrac: 0.25},
		{name: "single frame", pos: 0.75, frames: 1, i0: 0, i1: 0, wantFrac: 0.75},
		{name: "negative position reads frame zero", pos: -0.5, frames: 4, i0: 0, i1: 1, wantFrac: 0.5},
		{name: "past the end clamps", pos: 12, frames: 10, i0: 9, i1: 9, wantFrac: 0},
		{name: "empty buffer", pos: 1, frames: 0, i0: 0, i1: 0, wantFrac: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i0, i1, frac := InterpolationTaps(tt.pos, tt.frames)
			if i0 != tt.i0 || i1 != tt.i1 {
				t.Errorf("InterpolationTaps(%v, %d) taps = (%d, %d), want (%d, %d)",
					tt.pos, tt.frames, i0, i1, tt.i0, tt.i1)
			}
			if math.Abs(float64(frac-tt.wantFrac)) > 1e-6 {
				t.Errorf("InterpolationTaps(%v, %d) frac = %v, want %v", tt.pos, tt.frames, frac, tt.wantFrac)
			}
		})
	}
}

// TestInterpolationTaps_ZeroAllocs verifies no heap allocations
func TestInterpolationTaps_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		i0, i1, frac := InterpolationTaps(1234.56, 88200)
		_ = LinearInterpolate(float32(i0), float32(i1), frac)
	})

	if allocs > 0 {
		t.Errorf("interpolation allocated %v times, want 0", allocs)
	}
}

// BenchmarkLinearInterpolate simulates reading one second of a voice at 44.1kHz
func BenchmarkLinearInterpolate(b *testing.B) {
	data := make([]float32, 44100)
	for i := range data {
		data[i] = float32(math.Sin(float64(i) * 0.01))
	}

	b.ResetTimer()
	b.ReportAllocs()

	var out float32
	for b.Loop() {
		pos := 0.0
		for range len(data) {
			i0, i1, frac := InterpolationTaps(pos, len(data))
			out += LinearInterpolate(data[i0], data[i1], frac)
			pos += 0.918
		}
	}

	_ = out
}
