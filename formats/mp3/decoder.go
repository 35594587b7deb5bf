// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/padchop/audio"
)

const (
	channels      = 2 // go-mp3 always decodes to stereo
	bytesPerFrame = channels * 2
	bufFrames     = 2048
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf) < frames*bytesPerFrame {
		s.buf = make([]byte, frames*bytesPerFrame)
	}
	buf := s.buf[:frames*bytesPerFrame]

	// go-mp3 may return less than a frame per call, so fill the whole
	// buffer and drop a truncated trailing frame.
	n, err := io.ReadFull(s.dec, buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		s.eof = true
	default:
		return 0, fmt.Errorf("decoding mp3 frame: %w", err)
	}

	samples := n / bytesPerFrame * channels
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(buf[2*i:]))) / 32768
	}

	if samples == 0 && s.eof {
		return 0, io.EOF
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 header: %w", err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, bufFrames*bytesPerFrame),
	}
}
