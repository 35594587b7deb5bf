// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/padchop/sample"
)

// MonoSample builds an in-memory mono sample whose frame i has the value fn(i).
func MonoSample(sampleRate float64, frames int, fn func(frame int) float32) *sample.Sample {
	left := make([]float32, frames)
	for i := range left {
		left[i] = fn(i)
	}

	smp, err := sample.New(left, nil, sampleRate)
	if err != nil {
		panic(err)
	}
	return smp
}

// StereoSample builds an in-memory stereo sample from per-channel generators.
func StereoSample(sampleRate float64, frames int, left, right func(frame int) float32) *sample.Sample {
	l := make([]float32, frames)
	r := make([]float32, frames)
	for i := range frames {
		l[i] = left(i)
		r[i] = right(i)
	}

	smp, err := sample.New(l, r, sampleRate)
	if err != nil {
		panic(err)
	}
	return smp
}

// ConstantSample is a mono sample with every frame set to value.
func ConstantSample(sampleRate float64, frames int, value float32) *sample.Sample {
	return MonoSample(sampleRate, frames, func(int) float32 { return value })
}

// RampSample is a mono sample whose frame i holds float32(i). Handy for checking
// read positions through interpolation.
func RampSample(sampleRate float64, frames int) *sample.Sample {
	return MonoSample(sampleRate, frames, func(i int) float32 { return float32(i) })
}

// ImpulseSample is a silent mono sample with a single-frame spike of amp at
// each of the given frames.
func ImpulseSample(sampleRate float64, frames int, hits []int, amp float32) *sample.Sample {
	left := make([]float32, frames)
	for _, h := range hits {
		if h >= 0 && h < frames {
			left[h] = amp
		}
	}

	smp, err := sample.New(left, nil, sampleRate)
	if err != nil {
		panic(err)
	}
	return smp
}

// SineSample is a mono sine tone at the given frequency and amplitude.
func SineSample(sampleRate float64, frames int, frequency float64, amp float32) *sample.Sample {
	return MonoSample(sampleRate, frames, func(i int) float32 {
		return amp * float32(math.Sin(2*math.Pi*frequency*float64(i)/sampleRate))
	})
}
