// SPDX-License-Identifier: EPL-2.0

package slicing_test

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/ik5/padchop/internal/audiotest"
	"github.com/ik5/padchop/slicing"
)

// At 44.1 kHz the smoothing window is 441 frames, so a single-frame hit at h
// first shows up in the smoothed envelope at h-220.
var hits = []int{4410, 13230, 22050, 30870}

func TestDetectTransients(t *testing.T) {
	t.Parallel()

	want := []int{0, 4190, 13010, 21830, 30650}

	mono := audiotest.ImpulseSample(44100, 44100, hits, 1)
	if got := slicing.DetectTransients(mono, slicing.DefaultTransientConfig()); !reflect.DeepEqual(got, want) {
		t.Errorf("mono onsets = %v, want %v", got, want)
	}

	left := audiotest.ImpulseSample(44100, 44100, hits, 1)
	stereo := audiotest.StereoSample(44100, 44100,
		func(i int) float32 { return left.Left[i] },
		func(int) float32 { return 0 },
	)
	if got := slicing.DetectTransients(stereo, slicing.DefaultTransientConfig()); !reflect.DeepEqual(got, want) {
		t.Errorf("stereo onsets = %v, want %v", got, want)
	}
}

func TestComputeTransient(t *testing.T) {
	t.Parallel()

	smp := audiotest.ImpulseSample(44100, 44100, hits, 1)

	tests := []struct {
		name string
		max  int
		want slicing.Slices
	}{
		{
			name: "all onsets",
			max:  64,
			want: slicing.Slices{{0, 4190}, {4190, 13010}, {13010, 21830}, {21830, 30650}, {30650, 44100}},
		},
		{
			name: "downsampled",
			max:  2,
			want: slicing.Slices{{0, 13010}, {13010, 44100}},
		},
		{
			name: "single region",
			max:  1,
			want: slicing.Slices{{0, 44100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// tempo and speed are ignored
			got := slicing.Compute(smp, 0, slicing.Transient, tt.max, 37)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTransientFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames int
		value  float32
	}{
		{name: "silence", frames: 44100, value: 0},
		{name: "steady level", frames: 44100, value: 0.8},
		{name: "shorter than lookback", frames: 1000, value: 0.8},
		{name: "single frame", frames: 1, value: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			smp := audiotest.ConstantSample(44100, tt.frames, tt.value)
			got := slicing.Compute(smp, 120, slicing.Transient, 64, 100)
			want := slicing.Slices{{0, tt.frames}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Compute() = %v, want %v", got, want)
			}
		})
	}
}

func TestTransientMinimumGap(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	smp := audiotest.MonoSample(44100, 44100*2, func(int) float32 {
		if rng.IntN(1500) == 0 {
			return rng.Float32()*2 - 1
		}
		return 0
	})

	cfg := slicing.DefaultTransientConfig()
	onsets := slicing.DetectTransients(smp, cfg)
	if len(onsets) < 2 {
		t.Fatalf("expected several onsets in random clicks, got %v", onsets)
	}

	const minGap = 441
	for i := 1; i < len(onsets); i++ {
		if onsets[i]-onsets[i-1] < minGap {
			t.Errorf("onsets %d and %d are %d frames apart", onsets[i-1], onsets[i], onsets[i]-onsets[i-1])
		}
	}

	for _, maxRegions := range []int{1, 3, 16, 64} {
		checkRegions(t, slicing.Compute(smp, 120, slicing.Transient, maxRegions, 100), smp.Frames, maxRegions)
	}
}

func BenchmarkDetectTransients(b *testing.B) {
	smp := audiotest.SineSample(44100, 44100*10, 220, 0.5)
	cfg := slicing.DefaultTransientConfig()

	b.ReportAllocs()
	for b.Loop() {
		_ = slicing.DetectTransients(smp, cfg)
	}
}
