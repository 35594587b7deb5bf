// SPDX-License-Identifier: EPL-2.0

package slicing_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/ik5/padchop/internal/audiotest"
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

func TestComputeGrid(t *testing.T) {
	t.Parallel()

	twoSeconds := audiotest.ConstantSample(44100, 88200, 0.5)

	tests := []struct {
		name  string
		smp   *sample.Sample
		bpm   float64
		algo  slicing.Algorithm
		max   int
		speed float64
		want  slicing.Slices
	}{
		{
			name: "quarter notes at 120",
			smp:  twoSeconds, bpm: 120, algo: slicing.Quarter, max: 64, speed: 100,
			want: slicing.Slices{{0, 22050}, {22050, 44100}, {44100, 66150}, {66150, 88200}},
		},
		{
			name: "limited to two regions",
			smp:  twoSeconds, bpm: 120, algo: slicing.Quarter, max: 2, speed: 100,
			want: slicing.Slices{{0, 22050}, {22050, 44100}},
		},
		{
			name: "one bar covers the sample",
			smp:  twoSeconds, bpm: 120, algo: slicing.Bars, max: 64, speed: 100,
			want: slicing.Slices{{0, 88200}},
		},
		{
			name: "eighth notes at double speed",
			smp:  twoSeconds, bpm: 120, algo: slicing.Eighth, max: 3, speed: 200,
			want: slicing.Slices{{0, 22050}, {22050, 44100}, {44100, 66150}},
		},
		{
			name: "short tail",
			smp:  audiotest.ConstantSample(44100, 22100, 0.5), bpm: 120, algo: slicing.Quarter, max: 64, speed: 100,
			want: slicing.Slices{{0, 22050}, {22050, 22100}},
		},
		{
			name: "tiny step floors to one frame",
			smp:  audiotest.ConstantSample(100, 3, 0.5), bpm: 240, algo: slicing.Sixteenth, max: 64, speed: 25,
			want: slicing.Slices{{0, 1}, {1, 2}, {2, 3}},
		},
		{
			name: "zero bpm",
			smp:  twoSeconds, bpm: 0, algo: slicing.Quarter, max: 64, speed: 100,
		},
		{
			name: "negative bpm",
			smp:  twoSeconds, bpm: -120, algo: slicing.Sixteenth, max: 64, speed: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slicing.Compute(tt.smp, tt.bpm, tt.algo, tt.max, tt.speed)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	empty := audiotest.ConstantSample(44100, 0, 0)
	full := audiotest.ConstantSample(44100, 44100, 0.5)

	for _, algo := range slicing.Algorithms() {
		if got := slicing.Compute(empty, 120, algo, 64, 100); len(got) != 0 {
			t.Errorf("%v: zero-length sample gave %v", algo, got)
		}
		if got := slicing.Compute(full, 120, algo, 0, 100); len(got) != 0 {
			t.Errorf("%v: maxRegions 0 gave %v", algo, got)
		}
		if got := slicing.Compute(nil, 120, algo, 64, 100); len(got) != 0 {
			t.Errorf("%v: nil sample gave %v", algo, got)
		}
	}
}

func TestComputeGridInvariants(t *testing.T) {
	t.Parallel()

	smp := audiotest.ConstantSample(48000, 48000*7+123, 0.25)
	grid := []slicing.Algorithm{slicing.Quarter, slicing.Eighth, slicing.Sixteenth, slicing.Bars}

	for _, algo := range grid {
		for _, bpm := range []float64{1e-15, 1, 40, 87.5, 120, 173, 240, 999} {
			for _, speed := range []float64{25, 60, 100, 250, 400, 1e20, math.Inf(1), math.NaN()} {
				for _, maxRegions := range []int{1, 7, 64} {
					got := slicing.Compute(smp, bpm, algo, maxRegions, speed)
					checkRegions(t, got, smp.Frames, maxRegions)
					if len(got) == 0 {
						t.Errorf("%v bpm=%v speed=%v: no regions", algo, bpm, speed)
					}
				}
			}
		}
	}
}

func TestFramesPerRegionSpeed(t *testing.T) {
	t.Parallel()

	grid := []slicing.Algorithm{slicing.Quarter, slicing.Eighth, slicing.Sixteenth, slicing.Bars}

	for _, algo := range grid {
		for _, bpm := range []float64{40, 90, 120, 133, 240} {
			for _, rate := range []float64{22050, 44100, 48000, 96000} {
				fast := slicing.FramesPerRegion(rate, bpm, algo, 200)
				normal := slicing.FramesPerRegion(rate, bpm, algo, 100)
				if normal != fast/2 {
					t.Errorf("%v bpm=%v rate=%v: 100%% gives %d frames, 200%% gives %d", algo, bpm, rate, normal, fast)
				}
			}
		}
	}
}

func TestComputeGridHugeStep(t *testing.T) {
	t.Parallel()

	smp := audiotest.ConstantSample(44100, 88200, 0.5)
	want := slicing.Slices{{0, 88200}}

	tests := []struct {
		name  string
		bpm   float64
		speed float64
	}{
		{"tiny bpm", 1e-15, 100},
		{"huge speed", 120, 1e20},
		{"infinite speed", 120, math.Inf(1)},
		{"nan speed", 120, math.NaN()},
	}

	for _, tt := range tests {
		if got := slicing.Compute(smp, tt.bpm, slicing.Bars, 64, tt.speed); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Compute() = %v, want %v", tt.name, got, want)
		}
	}
}

func TestFramesPerRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		algo slicing.Algorithm
		bpm  float64
		want int
	}{
		{slicing.Quarter, 120, 22050},
		{slicing.Eighth, 120, 11025},
		{slicing.Sixteenth, 120, 5512},
		{slicing.Bars, 120, 88200},
		{slicing.Quarter, 0, 0},
		{slicing.Transient, 120, 0},
		{slicing.Bars, 1e-15, math.MaxInt},
		{slicing.Quarter, math.SmallestNonzeroFloat64, math.MaxInt},
	}

	for _, tt := range tests {
		if got := slicing.FramesPerRegion(44100, tt.bpm, tt.algo, 100); got != tt.want {
			t.Errorf("FramesPerRegion(%v, %v) = %d, want %d", tt.algo, tt.bpm, got, tt.want)
		}
	}
}

func TestSlicesBounds(t *testing.T) {
	t.Parallel()

	s := slicing.Slices{{0, 10}, {10, 25}}

	if r, ok := s.Bounds(1); !ok || r != (slicing.Region{Start: 10, End: 25}) || r.Len() != 15 {
		t.Errorf("Bounds(1) = %v, %v", r, ok)
	}
	for _, pad := range []int{-1, 2, 64} {
		if _, ok := s.Bounds(pad); ok {
			t.Errorf("Bounds(%d) reported a region", pad)
		}
	}
}

func checkRegions(t *testing.T, got slicing.Slices, frames, maxRegions int) {
	t.Helper()

	if len(got) > maxRegions {
		t.Errorf("%d regions, limit %d", len(got), maxRegions)
	}

	prevEnd := 0
	for i, r := range got {
		if r.Start < 0 || r.Start >= r.End || r.End > frames {
			t.Errorf("region %d = %v out of [0, %d]", i, r, frames)
		}
		if r.Start < prevEnd {
			t.Errorf("region %d = %v overlaps previous end %d", i, r, prevEnd)
		}
		prevEnd = r.End
	}
}

func BenchmarkComputeGrid(b *testing.B) {
	smp := audiotest.ConstantSample(44100, 44100*30, 0.5)

	b.ReportAllocs()
	for b.Loop() {
		_ = slicing.Compute(smp, 120, slicing.Sixteenth, slicing.MaxRegions, 100)
	}
}
