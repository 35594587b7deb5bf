// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/padchop/audio"
	"github.com/jfreymuth/oggvorbis"
)

const bufSize = 4096

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufSize - bufSize%s.channels }

// ReadSamples decodes straight into dst. oggvorbis counts values, not
// frames, and always returns a multiple of the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("decoding vorbis packet: %w", err)
	}
	if n == 0 && err == io.EOF {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading ogg vorbis headers: %w", err)
	}

	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidStream, dec.Channels())
	}

	return &source{dec: dec, channels: dec.Channels()}, nil
}
