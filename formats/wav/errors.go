// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedWavFormat = errors.New("unsupported WAV encoding, only integer PCM is supported")
	ErrInvalidChannels      = errors.New("sample count is not a whole number of frames")
)
