// SPDX-License-Identifier: EPL-2.0

//go:build headless

package main

import (
	"errors"
	"io"
)

var errPlaybackUnavailable = errors.New("live playback is unavailable in headless builds")

func runPlay(_ []string, _, _ io.Writer) error {
	return errPlaybackUnavailable
}
