// SPDX-License-Identifier: EPL-2.0

package params

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/padchop/slicing"
)

const (
	DefaultStartingNote = 36
	MaxStartingNote     = 119
	DefaultBPM          = 120.0
	DefaultSpeed        = 100.0
	DefaultAlgorithm    = slicing.Quarter
)

var (
	BPMRange   = SymmetricalSkewed(40, 240, DefaultBPM, 0.5, 1)
	SpeedRange = Linear(25, 400, 0)
	PitchRange = Linear(-24, 24, 0)
)

// Params holds the instrument controls.
//
// Every getter is a single atomic load so the audio thread can read
// parameters without locking. Setters clamp into range.
type Params struct {
	startingNote atomic.Int32
	bpm          atomic.Uint64 // float64 bits
	algorithm    atomic.Int32
	hold         atomic.Bool
	gate         atomic.Bool
	speed        atomic.Uint64 // float64 bits, percent
	pitch        atomic.Uint64 // float64 bits, semitones
	samplePath   atomic.Pointer[string]
}

// New returns Params with every control at its default.
func New() *Params {
	p := &Params{}
	p.startingNote.Store(DefaultStartingNote)
	p.SetBPM(DefaultBPM)
	p.algorithm.Store(int32(DefaultAlgorithm))
	p.hold.Store(true)
	p.gate.Store(true)
	p.SetSpeed(DefaultSpeed)
	p.SetPitch(0)

	return p
}

// StartingNote is the MIDI note mapped to pad 0.
func (p *Params) StartingNote() int { return int(p.startingNote.Load()) }

func (p *Params) SetStartingNote(note int) {
	p.startingNote.Store(int32(max(0, min(note, MaxStartingNote))))
}

func (p *Params) BPM() float64 { return loadFloat(&p.bpm) }

func (p *Params) SetBPM(bpm float64) { storeFloat(&p.bpm, BPMRange.Clamp(bpm)) }

func (p *Params) Algorithm() slicing.Algorithm { return slicing.Algorithm(p.algorithm.Load()) }

func (p *Params) SetAlgorithm(algo slicing.Algorithm) error {
	if !algo.Valid() {
		return fmt.Errorf("%w: %d", slicing.ErrUnknownAlgorithm, int(algo))
	}

	p.algorithm.Store(int32(algo))
	return nil
}

// Hold lets a held voice play past the end of its slice.
func (p *Params) Hold() bool { return p.hold.Load() }

func (p *Params) SetHold(v bool) { p.hold.Store(v) }

// Gate stops a voice as soon as its pad is released.
func (p *Params) Gate() bool { return p.gate.Load() }

func (p *Params) SetGate(v bool) { p.gate.Store(v) }

// Speed is the playback speed in percent.
func (p *Params) Speed() float64 { return loadFloat(&p.speed) }

func (p *Params) SetSpeed(percent float64) { storeFloat(&p.speed, SpeedRange.Clamp(percent)) }

// Pitch is the pitch shift in semitones.
func (p *Params) Pitch() float64 { return loadFloat(&p.pitch) }

func (p *Params) SetPitch(semitones float64) { storeFloat(&p.pitch, PitchRange.Clamp(semitones)) }

// PlaybackRate is the factor voices advance by on top of the sample rate
// ratio. Pitch is applied by reading faster or slower.
func (p *Params) PlaybackRate() float64 {
	return p.Speed() / 100 * math.Exp2(p.Pitch()/12)
}

// SamplePath is the last sample requested for loading, "" when none.
func (p *Params) SamplePath() string {
	if s := p.samplePath.Load(); s != nil {
		return *s
	}

	return ""
}

func (p *Params) SetSamplePath(path string) { p.samplePath.Store(&path) }

func loadFloat(v *atomic.Uint64) float64 { return math.Float64frombits(v.Load()) }

func storeFloat(v *atomic.Uint64, f float64) { v.Store(math.Float64bits(f)) }
