// SPDX-License-Identifier: EPL-2.0

package player

import (
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

// MaxVoices is the size of the preallocated voice pool.
const MaxVoices = slicing.MaxRegions

// Player is a pool of voices reading one sample and mixing into a stereo frame.
//
// Player is not safe for concurrent use. It belongs to the audio thread; other
// goroutines reach it through control.State and the engine.
type Player struct {
	voices []Voice

	smp    *sample.Sample
	slices slicing.Slices

	hostRate float64
	ratio    float64 // source rate / host rate
	rate     float64 // speed and pitch factor
	step     float64 // ratio * rate
}

// New returns a Player rendering at hostRate with numVoices idle voices.
// Capacity for MaxVoices is reserved up front so resizing never allocates.
func New(hostRate float64, numVoices int) *Player {
	p := &Player{
		voices:   make([]Voice, 0, MaxVoices),
		hostRate: hostRate,
		rate:     1,
	}
	p.updateStep()
	p.SetNumVoices(numVoices)

	return p
}

// SetSampleRate changes the output rate. Voices in flight pick up the new
// step on the next frame.
func (p *Player) SetSampleRate(hostRate float64) {
	if hostRate <= 0 {
		return
	}

	p.hostRate = hostRate
	p.updateStep()
}

// SetSample replaces the sample. Active voices keep playing against it.
func (p *Player) SetSample(smp *sample.Sample) {
	p.smp = smp
	p.updateStep()
}

// Sample returns the loaded sample, nil when none is loaded.
func (p *Player) Sample() *sample.Sample { return p.smp }

// SetSlices replaces the slice set without touching the voices.
func (p *Player) SetSlices(slices slicing.Slices) {
	p.slices = slices
}

// SetPlaybackRate scales how fast every voice moves through the sample.
// Non-positive factors are ignored.
func (p *Player) SetPlaybackRate(factor float64) {
	if !(factor > 0) || factor == p.rate {
		return
	}

	p.rate = factor
	p.updateStep()
}

// SetNumVoices resizes the pool to n voices, clamped to [0, MaxVoices].
// Voices below min(old, n) keep their state; new slots start idle.
func (p *Player) SetNumVoices(n int) {
	n = max(0, min(n, MaxVoices))

	old := len(p.voices)
	p.voices = p.voices[:n]
	for i := old; i < n; i++ {
		p.voices[i] = Voice{}
	}
}

// VoiceCount returns the pool size.
func (p *Player) VoiceCount() int { return len(p.voices) }

// Voice returns a copy of the voice for pad.
func (p *Player) Voice(pad int) (Voice, bool) {
	if pad < 0 || pad >= len(p.voices) {
		return Voice{}, false
	}

	return p.voices[pad], true
}

// Active reports whether the voice for pad is sounding.
func (p *Player) Active(pad int) bool {
	return pad >= 0 && pad < len(p.voices) && p.voices[pad].Active
}

// NoteOn starts the voice for pad at the beginning of its slice.
// A pad with no slice or no voice is ignored.
func (p *Player) NoteOn(pad int, velocity float32, hold, gate bool) {
	r, ok := p.slices.Bounds(pad)
	if !ok || pad >= len(p.voices) {
		return
	}

	p.voices[pad].trigger(r, velocity, hold, gate)
}

// NoteOff releases the voice for pad.
func (p *Player) NoteOff(pad int) {
	if pad < 0 || pad >= len(p.voices) {
		return
	}

	p.voices[pad].release()
}

// Process renders one output frame. Voices are summed without clipping.
func (p *Player) Process() (l, r float32) {
	if p.smp == nil || p.smp.Frames == 0 {
		return 0, 0
	}

	for i := range p.voices {
		v := &p.voices[i]
		if !v.Active {
			continue
		}

		vl, vr := v.render(p.smp, p.step)
		l += vl
		r += vr
	}

	return l, r
}

// ProcessBlock renders min(len(left), len(right)) frames.
func (p *Player) ProcessBlock(left, right []float32) {
	n := min(len(left), len(right))
	for i := range n {
		left[i], right[i] = p.Process()
	}
}

// Reset silences every voice. The sample and slices stay loaded.
func (p *Player) Reset() {
	for i := range p.voices {
		p.voices[i] = Voice{}
	}
}

func (p *Player) updateStep() {
	p.ratio = 1
	if p.smp != nil && p.hostRate > 0 {
		p.ratio = p.smp.SampleRate / p.hostRate
	}

	p.step = p.ratio * p.rate
}
