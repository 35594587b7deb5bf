// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/padchop/audio"
	"github.com/ik5/padchop/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	return newSource(dec, int(dec.BitDepth))
}

// newSource wraps any go-audio style reader. AIFF stores every depth as
// signed big-endian integers, which go-audio already sign-extends.
func newSource(dec pcm.Reader, bitDepth int) (audio.Source, error) {
	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	src, err := pcm.NewSource(dec, format.SampleRate, format.NumChannels, bitDepth, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return src, nil
}
