// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

const defaultBufSize = 4096

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts the integer samples of a Reader to float32 in [-1, 1].
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	offset     int // subtracted before scaling, for unsigned samples
	intBuf     *goaudio.IntBuffer
}

// NewSource wraps dec. Samples of bitDepth 8 are treated as unsigned when
// unsigned8 is set, as WAV stores them; every other depth is signed.
func NewSource(dec Reader, sampleRate, channels, bitDepth int, unsigned8 bool) (*Source, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidLayout, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidLayout, sampleRate)
	}

	s := &Source{dec: dec, sampleRate: sampleRate, channels: channels}

	switch bitDepth {
	case 8:
		s.scale = 1.0 / 128
		if unsigned8 {
			s.offset = 128
		}
	case 16:
		s.scale = 1.0 / 32768
	case 24:
		s.scale = 1.0 / 8388608
	case 32:
		s.scale = 1.0 / 2147483648
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}

	return defaultBufSize - defaultBufSize%s.channels
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading PCM: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	return n, err
}

// ReadSeeker returns r itself when it can seek, which the go-audio decoders
// need, and otherwise buffers it in memory.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
