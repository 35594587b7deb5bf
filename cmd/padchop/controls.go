// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/preset"
	"github.com/ik5/padchop/slicing"
)

// controls are the instrument flags shared by every command.
type controls struct {
	debug  bool
	preset string

	bpm   float64
	algo  string
	speed float64
	pitch float64
	note  int
	hold  bool
	gate  bool
}

func newFlagSet(name string, stderr io.Writer, c *controls) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&c.debug, "debug", false, "enable debug logging (adds source location)")
	fs.StringVar(&c.preset, "preset", "", "load controls and sample path from a preset file")
	fs.Float64Var(&c.bpm, "bpm", params.DefaultBPM, "tempo used by the grid algorithms")
	fs.StringVar(&c.algo, "algo", params.DefaultAlgorithm.String(), "slice algorithm: 1/4, 1/8, 1/16, bars or transient")
	fs.Float64Var(&c.speed, "speed", params.DefaultSpeed, "playback speed in percent, 25 to 400")
	fs.Float64Var(&c.pitch, "pitch", 0, "pitch shift in semitones, -24 to 24")
	fs.IntVar(&c.note, "note", params.DefaultStartingNote, "MIDI note of the first pad")
	fs.BoolVar(&c.hold, "hold", true, "keep playing past the slice end while a pad is held")
	fs.BoolVar(&c.gate, "gate", true, "stop a pad when it is released")

	return fs
}

// apply loads the preset, if any, into p and then applies every flag given
// on the command line on top of it. It returns the preset's sample path.
func (c *controls) apply(fs *flag.FlagSet, p *params.Params) (string, error) {
	var path string

	if c.preset != "" {
		f, err := os.Open(c.preset)
		if err != nil {
			return "", fmt.Errorf("opening preset: %w", err)
		}
		defer f.Close()

		pr, err := preset.Decode(f)
		if err != nil {
			return "", fmt.Errorf("reading preset %s: %w", c.preset, err)
		}
		if err := pr.Apply(p); err != nil {
			return "", err
		}
		path = pr.SamplePath
	}

	var err error
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if c.preset == "" || set["algo"] {
		var algo slicing.Algorithm
		if algo, err = slicing.ParseAlgorithm(c.algo); err != nil {
			return "", err
		}
		if err = p.SetAlgorithm(algo); err != nil {
			return "", err
		}
	}

	apply := func(name string, fn func()) {
		if c.preset == "" || set[name] {
			fn()
		}
	}
	apply("bpm", func() { p.SetBPM(c.bpm) })
	apply("speed", func() { p.SetSpeed(c.speed) })
	apply("pitch", func() { p.SetPitch(c.pitch) })
	apply("note", func() { p.SetStartingNote(c.note) })
	apply("hold", func() { p.SetHold(c.hold) })
	apply("gate", func() { p.SetGate(c.gate) })

	return path, nil
}

// samplePath picks the positional file argument over the preset's path.
func samplePath(fs *flag.FlagSet, fromPreset string) (string, error) {
	switch {
	case fs.NArg() > 1:
		return "", fmt.Errorf("%w: expected one file, got %d", errUsage, fs.NArg())
	case fs.NArg() == 1:
		return fs.Arg(0), nil
	case fromPreset != "":
		return fromPreset, nil
	default:
		fs.Usage()
		return "", fmt.Errorf("%w: no sample file given", errUsage)
	}
}

func savePreset(path string, pr preset.Preset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preset: %w", err)
	}

	if err := pr.Encode(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
