// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"errors"
	"fmt"
)

var (
	ErrNoChannels      = errors.New("audio has no channels")
	ErrTooManyChannels = errors.New("only mono or stereo audio is supported")
	ErrIncompleteFrame = errors.New("interleaved data ends with an incomplete frame")
	ErrChannelMismatch = errors.New("left and right channels differ in length")
	ErrInvalidRate     = errors.New("sample rate must be positive")
)

// DecodeError reports a file that could not be turned into a Sample.
type DecodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("decoding %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
