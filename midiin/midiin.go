// SPDX-License-Identifier: EPL-2.0

package midiin

import (
	"fmt"
	"log/slog"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/ik5/padchop/engine"
)

// NoteSink receives translated notes. engine.Instrument is one.
type NoteSink interface {
	SendNote(ev engine.NoteEvent) bool
}

// Translate converts a note on or note off message. A note on with velocity 0
// is a note off. Every other message reports false.
func Translate(msg midi.Message) (engine.NoteEvent, bool) {
	var ch, key, vel uint8

	if msg.GetNoteStart(&ch, &key, &vel) {
		return engine.NoteEvent{On: true, Note: int(key), Velocity: float32(vel) / 127}, true
	}
	if msg.GetNoteEnd(&ch, &key) {
		return engine.NoteEvent{Note: int(key)}, true
	}

	return engine.NoteEvent{}, false
}

// FindInput returns the first input of drv whose name contains name, ignoring
// case. An empty name picks the first input.
func FindInput(drv drivers.Driver, name string) (drivers.In, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI inputs: %w", err)
	}

	for _, in := range ins {
		if name == "" || strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNoInput, name)
}

// Listen forwards the notes arriving on in to sink until stop is called.
// The port is opened if needed.
func Listen(in drivers.In, sink NoteSink, log *slog.Logger) (stop func(), err error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("device", in.String())

	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return nil, fmt.Errorf("opening MIDI input %s: %w", in, err)
		}
	}

	stop, err = midi.ListenTo(in, func(msg midi.Message, _ int32) {
		dispatch(sink, log, msg)
	}, midi.HandleError(func(err error) {
		log.Warn("MIDI listener error", "err", err)
	}))
	if err != nil {
		return nil, fmt.Errorf("listening on MIDI input %s: %w", in, err)
	}

	log.Info("MIDI input connected")
	return stop, nil
}

func dispatch(sink NoteSink, log *slog.Logger, msg midi.Message) {
	ev, ok := Translate(msg)
	if !ok {
		return
	}

	if !sink.SendNote(ev) {
		log.Warn("note dropped, queue full", "note", ev.Note, "on", ev.On)
	}
}
