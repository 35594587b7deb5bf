// SPDX-License-Identifier: EPL-2.0

package slicing

import (
	"math"

	"github.com/ik5/padchop/sample"
)

// MaxRegions is the largest number of pads a sample can be cut into.
const MaxRegions = 64

const beatsPerBar = 4.0 // 4/4 is assumed

// Region is a [Start, End) span of source frames.
type Region struct {
	Start int
	End   int
}

// Len returns the region length in frames.
func (r Region) Len() int { return r.End - r.Start }

// Slices is an ordered set of non-overlapping regions; index i is pad i.
// A Slices value is replaced wholesale, never edited in place.
type Slices []Region

// Bounds returns the region assigned to pad.
func (s Slices) Bounds(pad int) (Region, bool) {
	if pad < 0 || pad >= len(s) {
		return Region{}, false
	}

	return s[pad], true
}

// Compute cuts smp into at most maxRegions regions.
//
// The tempo grid algorithms use bpm and speedPercent: a region lasts the
// algorithm's note value at bpm, scaled by speedPercent/100 so that a voice
// reading the source faster still covers the same musical span. Transient
// ignores both and follows the onsets in the signal.
func Compute(smp *sample.Sample, bpm float64, algo Algorithm, maxRegions int, speedPercent float64) Slices {
	if maxRegions <= 0 || smp == nil || smp.Frames == 0 {
		return nil
	}

	if algo == Transient {
		return transientSlices(smp, maxRegions, DefaultTransientConfig())
	}

	return gridSlices(smp, bpm, algo, maxRegions, speedPercent)
}

// FramesPerRegion returns the grid step for a tempo algorithm, at least 1.
// It returns 0 when bpm is not positive or algo is not a grid algorithm.
// Steps too large for an int, and NaN, saturate at math.MaxInt.
func FramesPerRegion(sampleRate, bpm float64, algo Algorithm, speedPercent float64) int {
	beats := algo.Beats()
	if bpm <= 0 || beats == 0 {
		return 0
	}

	secondsPerBeat := 60 / bpm
	frames := secondsPerBeat * beats * sampleRate * (speedPercent / 100)

	switch {
	case !(frames < math.MaxInt):
		return math.MaxInt
	case frames < 1:
		return 1
	default:
		return int(frames)
	}
}

func gridSlices(smp *sample.Sample, bpm float64, algo Algorithm, maxRegions int, speedPercent float64) Slices {
	step := FramesPerRegion(smp.SampleRate, bpm, algo, speedPercent)
	if step == 0 {
		return nil
	}

	regions := make(Slices, 0, min(maxRegions, smp.Frames/step+1))
	for start := 0; start < smp.Frames && len(regions) < maxRegions; {
		end := smp.Frames
		if step < smp.Frames-start {
			end = start + step
		}
		regions = append(regions, Region{Start: start, End: end})
		start = end
	}

	return wholeIfEmpty(regions, smp.Frames)
}

func wholeIfEmpty(regions Slices, frames int) Slices {
	if len(regions) == 0 {
		return Slices{{Start: 0, End: frames}}
	}

	return regions
}
