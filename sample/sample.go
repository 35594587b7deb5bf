// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/padchop/audio"
)

// Sample is a fully decoded recording held in memory.
//
// A Sample is never modified after construction. The slicer, the player voices
// and the shared control state all hold the same pointer; loading a new file
// replaces the pointer instead of patching the buffers.
type Sample struct {
	Left       []float32 // mono uses Left only
	Right      []float32 // empty if mono
	SampleRate float64
	Frames     int
	Stereo     bool
}

// New builds a Sample from separate channel buffers. Pass a nil right for mono.
func New(left, right []float32, sampleRate float64) (*Sample, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}

	if len(right) > 0 && len(right) != len(left) {
		return nil, ErrChannelMismatch
	}

	return &Sample{
		Left:       left,
		Right:      right,
		SampleRate: sampleRate,
		Frames:     len(left),
		Stereo:     len(right) > 0,
	}, nil
}

// FromInterleaved splits interleaved data with the given channel count.
func FromInterleaved(data []float32, channels int, sampleRate float64) (*Sample, error) {
	switch channels {
	case 1:
		left := make([]float32, len(data))
		copy(left, data)
		return New(left, nil, sampleRate)

	case 2:
		if len(data)%2 != 0 {
			return nil, ErrIncompleteFrame
		}

		frames := len(data) / 2
		left := make([]float32, frames)
		right := make([]float32, frames)
		for f := range frames {
			idx := f << 1
			left[f] = data[idx]
			right[f] = data[idx+1]
		}
		return New(left, right, sampleRate)

	case 0:
		return nil, ErrNoChannels

	default:
		return nil, fmt.Errorf("%w: got %d channels", ErrTooManyChannels, channels)
	}
}

// Collect drains src into a Sample and closes it.
func Collect(src audio.Source) (*Sample, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	if channels > 2 {
		return nil, fmt.Errorf("%w: got %d channels", ErrTooManyChannels, channels)
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	buf := make([]float32, bufSize)
	var interleaved []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// A source that makes no progress without reporting EOF is finished.
			break
		}
	}

	return FromInterleaved(interleaved, channels, float64(src.SampleRate()))
}

// Channels returns 2 for stereo samples and 1 otherwise.
func (s *Sample) Channels() int {
	if s.Stereo {
		return 2
	}

	return 1
}

// Duration of the sample at its native rate.
func (s *Sample) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(s.Frames) / s.SampleRate * float64(time.Second))
}
