// SPDX-License-Identifier: EPL-2.0

package player

import (
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
	"github.com/ik5/padchop/utils"
)

// MinGain is the quietest a triggered voice can be.
const MinGain = 0.0001

// Voice is the playback state of one pad.
type Voice struct {
	Active bool
	// Pos is the read cursor in source frames.
	Pos float64
	// End is the slice end boundary in source frames.
	End  int
	Gain float32
	// Hold lets the voice run past End while Held.
	Hold bool
	// Gate stops the voice as soon as it is released.
	Gate bool
	Held bool
}

func (v *Voice) trigger(r slicing.Region, velocity float32, hold, gate bool) {
	v.Active = true
	v.Held = true
	v.Pos = float64(r.Start)
	v.End = r.End
	v.Gain = clampGain(velocity)
	v.Hold = hold
	v.Gate = gate
}

func (v *Voice) release() {
	v.Held = false
	if v.Gate || !v.Hold {
		v.Active = false
	}
}

// render reads the current frame of smp and moves the cursor by step.
func (v *Voice) render(smp *sample.Sample, step float64) (l, r float32) {
	i0, i1, frac := utils.InterpolationTaps(v.Pos, smp.Frames)

	l = utils.LinearInterpolate(smp.Left[i0], smp.Left[i1], frac) * v.Gain
	if smp.Stereo {
		r = utils.LinearInterpolate(smp.Right[i0], smp.Right[i1], frac) * v.Gain
	} else {
		r = l
	}

	v.Pos += step

	if v.Pos >= float64(v.End) && (!v.Hold || !v.Held) {
		v.Active = false
	}
	if v.Pos >= float64(smp.Frames) {
		v.Active = false
	}

	return l, r
}

func clampGain(g float32) float32 {
	if !(g >= MinGain) { // also catches NaN
		return MinGain
	}

	return min(g, 1)
}
