// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/player"
	"github.com/ik5/padchop/slicing"
)

const (
	// DefaultPads is the pad count before any sample is loaded.
	DefaultPads = 16
	// NoteQueueSize bounds the note events waiting for the next block.
	NoteQueueSize = 256
)

// NoteEvent is a note on or off from a keyboard-like source.
type NoteEvent struct {
	On       bool
	Note     int
	Velocity float32 // 0..1
}

// Reslicer recomputes the slices of the current sample off the audio thread.
// Reslice must not block.
type Reslicer interface {
	Reslice()
}

type Config struct {
	Shared   *control.State
	Params   *params.Params
	Reslicer Reslicer

	SampleRate  float64
	DefaultPads int
}

// Instrument is the audio-thread side of the sampler. It adopts whatever the
// loader published, applies note and pad events, and renders the voices.
//
// Process, Reset and SetSampleRate belong to the audio thread. SendNote may be
// called from any goroutine.
type Instrument struct {
	shared   *control.State
	params   *params.Params
	reslicer Reslicer
	player   *player.Player

	seen  control.Seen
	notes chan NoteEvent

	pads     int
	nSlices  int
	pending  []control.PadEvent
	sounding []bool
	dirty    bool // sounding not yet published

	lastBPM   float64
	lastAlgo  slicing.Algorithm
	lastSpeed float64
}

func New(cfg Config) (*Instrument, error) {
	if cfg.Shared == nil || cfg.Params == nil {
		return nil, ErrMissingState
	}

	pads := cfg.DefaultPads
	if pads <= 0 {
		pads = DefaultPads
	}
	pads = min(pads, player.MaxVoices)

	in := &Instrument{
		shared:    cfg.Shared,
		params:    cfg.Params,
		reslicer:  cfg.Reslicer,
		player:    player.New(cfg.SampleRate, pads),
		notes:     make(chan NoteEvent, NoteQueueSize),
		pads:      pads,
		pending:   make([]control.PadEvent, 0, control.MaxPendingEvents),
		sounding:  make([]bool, pads, player.MaxVoices),
		lastBPM:   cfg.Params.BPM(),
		lastAlgo:  cfg.Params.Algorithm(),
		lastSpeed: cfg.Params.Speed(),
	}

	return in, nil
}

// SendNote queues a note for the next block. It reports false when the queue
// is full and the note was dropped.
func (in *Instrument) SendNote(ev NoteEvent) bool {
	select {
	case in.notes <- ev:
		return true
	default:
		return false
	}
}

// PadCount is the number of playable pads.
func (in *Instrument) PadCount() int { return in.pads }

// SetSampleRate changes the output rate.
func (in *Instrument) SetSampleRate(rate float64) {
	in.player.SetSampleRate(rate)
}

// Reset silences every voice and clears the pad feedback.
func (in *Instrument) Reset() {
	in.player.Reset()
	clear(in.sounding)
	in.dirty = true
	in.publishVisuals()
}

// Process renders one block into left and right.
//
// Shared state is reconciled before any frame is rendered, so a new sample or
// slice set takes effect at a block boundary. When the shared lock is busy
// the block plays with what the instrument already has and the exchange is
// retried on the next block.
func (in *Instrument) Process(left, right []float32) {
	in.reconcile()
	in.player.SetPlaybackRate(in.params.PlaybackRate())

	events, uiReslice, _ := in.shared.TryTakePending(in.pending)
	in.pending = events[:0]

	in.checkReslice(uiReslice)
	in.drainNotes()
	in.applyPadEvents(events)

	in.player.ProcessBlock(left, right)

	in.updateVisuals()
}

func (in *Instrument) reconcile() {
	u, ok := in.shared.TryReconcile(&in.seen)
	if !ok {
		return
	}

	if u.SampleChanged {
		in.player.SetSample(u.Sample)
	}
	if u.SlicesChanged {
		in.player.SetSlices(u.Slices)
		in.nSlices = len(u.Slices)
	}

	switch {
	case in.nSlices > 0:
		in.setPadCount(in.nSlices)
	case u.HasSample:
		in.setPadCount(0)
	}
}

func (in *Instrument) setPadCount(n int) {
	n = min(n, player.MaxVoices)
	if n == in.pads && in.player.VoiceCount() == n {
		return
	}

	in.player.SetNumVoices(n)
	in.pads = n

	old := len(in.sounding)
	in.sounding = in.sounding[:n]
	if n > old {
		clear(in.sounding[old:])
	}
	in.dirty = true
}

func (in *Instrument) checkReslice(requested bool) {
	bpm := in.params.BPM()
	algo := in.params.Algorithm()
	speed := in.params.Speed()

	changed := bpm != in.lastBPM || algo != in.lastAlgo || speed != in.lastSpeed
	in.lastBPM, in.lastAlgo, in.lastSpeed = bpm, algo, speed

	if (changed || requested) && in.reslicer != nil {
		in.reslicer.Reslice()
	}
}

func (in *Instrument) drainNotes() {
	start := in.params.StartingNote()
	hold := in.params.Hold()
	gate := in.params.Gate()

	for {
		select {
		case ev := <-in.notes:
			pad := ev.Note - start
			if pad < 0 || pad >= in.pads {
				continue
			}
			if ev.On {
				in.player.NoteOn(pad, ev.Velocity, hold, gate)
			} else {
				in.player.NoteOff(pad)
			}
		default:
			return
		}
	}
}

func (in *Instrument) applyPadEvents(events []control.PadEvent) {
	if len(events) == 0 {
		return
	}

	hold := in.params.Hold()
	gate := in.params.Gate()

	for _, ev := range events {
		if ev.Pad < 0 || ev.Pad >= in.pads {
			continue
		}

		switch ev.Kind {
		case control.PadOn:
			in.player.NoteOn(ev.Pad, max(0, min(ev.Velocity, 1)), hold, gate)
		case control.PadOff:
			in.player.NoteOff(ev.Pad)
		}
	}
}

func (in *Instrument) updateVisuals() {
	for pad := range in.sounding {
		if active := in.player.Active(pad); active != in.sounding[pad] {
			in.sounding[pad] = active
			in.dirty = true
		}
	}

	in.publishVisuals()
}

func (in *Instrument) publishVisuals() {
	if in.dirty && in.shared.TrySetPadVisuals(in.sounding) {
		in.dirty = false
	}
}
