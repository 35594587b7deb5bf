// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/padchop/audio"
	"github.com/ik5/padchop/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode reads the RIFF headers from r and returns a source over the
// integer PCM data. Readers that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedWavFormat, dec.WavAudioFormat)
	}

	src, err := pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return src, nil
}
