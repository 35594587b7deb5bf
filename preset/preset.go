// SPDX-License-Identifier: EPL-2.0

package preset

import (
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/slicing"
)

// Version is the only preset layout this package reads and writes.
const Version = 1

// Preset is the saved form of the instrument controls and the sample they
// were used with.
type Preset struct {
	Version      int     `json:"version"`
	SamplePath   string  `json:"sample_path,omitempty"`
	StartingNote int     `json:"starting_note"`
	BPM          float64 `json:"bpm"`
	Algorithm    string  `json:"slice_algo"`
	Hold         bool    `json:"hold_continue"`
	Gate         bool    `json:"gate_on_release"`
	NumPads      int     `json:"num_pads"`
	Speed        float64 `json:"speed_percent"`
	Pitch        float64 `json:"pitch_semitones"`
}

// Default returns a preset with every control at its default.
func Default() Preset {
	return Capture(params.New(), nil)
}

// Capture records the current params. When state is not nil the loaded
// sample path and pad count come from it.
func Capture(p *params.Params, state *control.State) Preset {
	pr := Preset{
		Version:      Version,
		SamplePath:   p.SamplePath(),
		StartingNote: p.StartingNote(),
		BPM:          p.BPM(),
		Algorithm:    p.Algorithm().String(),
		Hold:         p.Hold(),
		Gate:         p.Gate(),
		NumPads:      0,
		Speed:        p.Speed(),
		Pitch:        p.Pitch(),
	}

	if state != nil {
		st := state.Status()
		if st.Path != "" {
			pr.SamplePath = st.Path
		}
		pr.NumPads = st.Pads
	}

	return pr
}

// Validate checks the version and that every field is in range.
func (pr Preset) Validate() error {
	if pr.Version != Version {
		return errors.Wrapf(ErrUnsupportedVersion, "version %d", pr.Version)
	}

	if _, err := slicing.ParseAlgorithm(pr.Algorithm); err != nil {
		return errors.Wrapf(ErrInvalidPreset, "slice_algo %q", pr.Algorithm)
	}
	if pr.StartingNote < 0 || pr.StartingNote > params.MaxStartingNote {
		return errors.Wrapf(ErrInvalidPreset, "starting_note %d outside [0, %d]", pr.StartingNote, params.MaxStartingNote)
	}
	if pr.NumPads < 0 || pr.NumPads > slicing.MaxRegions {
		return errors.Wrapf(ErrInvalidPreset, "num_pads %d outside [0, %d]", pr.NumPads, slicing.MaxRegions)
	}

	checks := []struct {
		name  string
		value float64
		r     params.Range
	}{
		{"bpm", pr.BPM, params.BPMRange},
		{"speed_percent", pr.Speed, params.SpeedRange},
		{"pitch_semitones", pr.Pitch, params.PitchRange},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.r.Min || c.value > c.r.Max {
			return errors.Wrapf(ErrInvalidPreset, "%s %v outside [%v, %v]", c.name, c.value, c.r.Min, c.r.Max)
		}
	}

	return nil
}

// Apply validates pr and copies it into p. Nothing is changed when pr is
// invalid. Loading the sample is left to the caller.
func (pr Preset) Apply(p *params.Params) error {
	if err := pr.Validate(); err != nil {
		return err
	}

	algo, _ := slicing.ParseAlgorithm(pr.Algorithm)
	if err := p.SetAlgorithm(algo); err != nil {
		return errors.WithStack(err)
	}

	p.SetStartingNote(pr.StartingNote)
	p.SetBPM(pr.BPM)
	p.SetHold(pr.Hold)
	p.SetGate(pr.Gate)
	p.SetSpeed(pr.Speed)
	p.SetPitch(pr.Pitch)
	if pr.SamplePath != "" {
		p.SetSamplePath(pr.SamplePath)
	}

	return nil
}

// Encode writes pr as indented JSON.
func (pr Preset) Encode(w io.Writer) error {
	if err := pr.Validate(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pr); err != nil {
		return errors.Wrap(err, "writing preset")
	}

	return nil
}

// Decode reads and validates a preset. Speed and pitch may be omitted and
// keep their defaults. The algorithm may be stored as a label or an
// identifier name; the result always carries the label.
func Decode(r io.Reader) (Preset, error) {
	pr := Default()
	pr.Version = 0

	if err := json.NewDecoder(r).Decode(&pr); err != nil {
		return Preset{}, errors.Wrapf(ErrInvalidPreset, "reading preset: %v", err)
	}
	if err := pr.Validate(); err != nil {
		return Preset{}, err
	}

	algo, _ := slicing.ParseAlgorithm(pr.Algorithm)
	pr.Algorithm = algo.String()

	return pr, nil
}
