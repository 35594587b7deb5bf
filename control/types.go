// SPDX-License-Identifier: EPL-2.0

package control

import (
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

type PadEventKind uint8

const (
	PadOn PadEventKind = iota
	PadOff
)

func (k PadEventKind) String() string {
	if k == PadOff {
		return "off"
	}
	return "on"
}

// PadEvent is a trigger or release addressed by pad index, as sent by a
// control surface that does not speak MIDI.
type PadEvent struct {
	Kind     PadEventKind
	Pad      int
	Velocity float32 // ignored for PadOff
}

// Seen holds the generations a consumer has already adopted.
// The zero value has seen nothing.
type Seen struct {
	SampleGen uint64
	SlicesGen uint64
}

// Update is the result of TryReconcile.
type Update struct {
	// HasSample reports whether any sample is loaded.
	HasSample bool

	SampleChanged bool
	Sample        *sample.Sample

	SlicesChanged bool
	Slices        slicing.Slices
}

// Status describes the loaded sample and the loader for display.
type Status struct {
	Path    string
	Loading bool
	Err     string

	SampleGen uint64
	SlicesGen uint64

	Frames     int
	SampleRate float64
	Stereo     bool
	Pads       int
}

type Snapshot struct {
	Status

	Sample *sample.Sample
	Slices slicing.Slices
}
