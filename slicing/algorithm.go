// SPDX-License-Identifier: EPL-2.0

package slicing

import (
	"fmt"
	"strings"
)

// Algorithm selects how a sample is cut into regions.
type Algorithm int

const (
	Quarter Algorithm = iota
	Eighth
	Sixteenth
	Bars
	Transient
)

var algorithmLabels = [...]string{
	Quarter:   "1/4",
	Eighth:    "1/8",
	Sixteenth: "1/16",
	Bars:      "Bars",
	Transient: "Transient",
}

// algorithmNames are the identifier spellings older presets store.
var algorithmNames = [...]string{
	Quarter:   "Quarter",
	Eighth:    "Eighth",
	Sixteenth: "Sixteenth",
	Bars:      "Bars",
	Transient: "Transient",
}

// Algorithms lists every algorithm in selector order.
func Algorithms() []Algorithm {
	return []Algorithm{Quarter, Eighth, Sixteenth, Bars, Transient}
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}

	return algorithmLabels[a]
}

func (a Algorithm) Valid() bool {
	return a >= Quarter && a <= Transient
}

// Beats returns the region length in beats for the tempo grid algorithms,
// and 0 for Transient.
func (a Algorithm) Beats() float64 {
	switch a {
	case Quarter:
		return 1
	case Eighth:
		return 0.5
	case Sixteenth:
		return 0.25
	case Bars:
		return beatsPerBar
	default:
		return 0
	}
}

// ParseAlgorithm accepts a label ("1/16", "bars") or an identifier name
// ("Sixteenth") case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)
	for i := range algorithmLabels {
		if strings.EqualFold(algorithmLabels[i], s) || strings.EqualFold(algorithmNames[i], s) {
			return Algorithm(i), nil
		}
	}

	return Quarter, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}

	return []byte(algorithmLabels[a]), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
