// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/slicing"
)

// padKeys maps keyboard rows onto pads, left to right and top to bottom.
const padKeys = "1234567890qwertyuiopasdfghjklzxcvbnm"

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

func padForKey(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	for i := range len(padKeys) {
		if padKeys[i] == b {
			return i, true
		}
	}

	return 0, false
}

// keyboard turns raw key presses into pad toggles and control changes. A
// terminal reports no key releases, so each press flips its pad.
type keyboard struct {
	shared *control.State
	params *params.Params
	on     [slicing.MaxRegions]bool
}

// press handles one key and reports whether it asked to quit.
func (k *keyboard) press(b byte) bool {
	switch b {
	case keyCtrlC, keyEscape:
		return true
	case ' ':
		k.releaseAll()
	case '-':
		k.params.SetBPM(k.params.BPM() - 1)
		logger.Info("tempo changed", "bpm", k.params.BPM())
	case '=', '+':
		k.params.SetBPM(k.params.BPM() + 1)
		logger.Info("tempo changed", "bpm", k.params.BPM())
	case ',':
		k.stepAlgorithm(-1)
	case '.':
		k.stepAlgorithm(1)
	default:
		if pad, ok := padForKey(b); ok {
			k.toggle(pad)
		}
	}

	return false
}

func (k *keyboard) toggle(pad int) {
	kind := control.PadOn
	if k.on[pad] {
		kind = control.PadOff
	}

	if !k.shared.EnqueuePadEvent(control.PadEvent{Kind: kind, Pad: pad, Velocity: 1}) {
		logger.Warn("pad event dropped", "pad", pad)
		return
	}
	k.on[pad] = !k.on[pad]
	logger.Debug("pad toggled", "pad", pad, "kind", kind)
}

func (k *keyboard) releaseAll() {
	for pad, on := range k.on {
		if on && k.shared.EnqueuePadEvent(control.PadEvent{Kind: control.PadOff, Pad: pad}) {
			k.on[pad] = false
		}
	}
}

func (k *keyboard) stepAlgorithm(dir int) {
	algos := slicing.Algorithms()
	next := (int(k.params.Algorithm()) + dir + len(algos)) % len(algos)

	if err := k.params.SetAlgorithm(algos[next]); err != nil {
		logger.Warn("algorithm not changed", "err", err)
		return
	}
	logger.Info("algorithm changed", "algo", algos[next])
}
