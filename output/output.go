// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep/v2"
)

// DefaultBlockFrames is the block size used when a non-positive size is given.
const DefaultBlockFrames = 256

const bytesPerFrame = 8 // two float32 channels

// Renderer fills one block of stereo output. engine.Instrument is one.
type Renderer interface {
	Process(left, right []float32)
}

// Stream pulls blocks from a Renderer and serves them as interleaved
// stereo float32 little-endian bytes, the layout oto.FormatFloat32LE expects.
//
// A Stream never ends and never fails. It is meant to be read by one
// goroutine, the audio device's.
type Stream struct {
	r     Renderer
	left  []float32
	right []float32
	buf   []byte
	off   int
}

func NewStream(r Renderer, blockFrames int) *Stream {
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	buf := make([]byte, blockFrames*bytesPerFrame)
	return &Stream{
		r:     r,
		left:  make([]float32, blockFrames),
		right: make([]float32, blockFrames),
		buf:   buf,
		off:   len(buf),
	}
}

// Read fills p completely, rendering as many blocks as needed.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.off == len(s.buf) {
			s.render()
		}

		c := copy(p[n:], s.buf[s.off:])
		n += c
		s.off += c
	}

	return n, nil
}

func (s *Stream) render() {
	s.r.Process(s.left, s.right)

	for i := range s.left {
		o := i * bytesPerFrame
		binary.LittleEndian.PutUint32(s.buf[o:], math.Float32bits(s.left[i]))
		binary.LittleEndian.PutUint32(s.buf[o+4:], math.Float32bits(s.right[i]))
	}
	s.off = 0
}

// Streamer adapts a Renderer to a beep.Streamer. It never drains; bound it
// with beep.Take.
type Streamer struct {
	r     Renderer
	left  []float32
	right []float32
	pos   int
}

var _ beep.Streamer = (*Streamer)(nil)

func NewStreamer(r Renderer, blockFrames int) *Streamer {
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	return &Streamer{
		r:     r,
		left:  make([]float32, blockFrames),
		right: make([]float32, blockFrames),
		pos:   blockFrames,
	}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos == len(s.left) {
			s.r.Process(s.left, s.right)
			s.pos = 0
		}

		samples[i][0] = float64(s.left[s.pos])
		samples[i][1] = float64(s.right[s.pos])
		s.pos++
	}

	return len(samples), true
}

func (s *Streamer) Err() error { return nil }
