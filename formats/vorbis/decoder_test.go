// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Like the
// real reader it returns whole frames, counted in values.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	maxFrames  int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	frames := min(len(buf), len(m.samples)-m.offset) / m.channels
	if m.maxFrames > 0 {
		frames = min(frames, m.maxFrames)
	}

	n := copy(buf, m.samples[m.offset:m.offset+frames*m.channels])
	m.offset += n

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not OGG data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	src, err := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 6})
	if err != nil {
		t.Fatal(err)
	}
	if src.SampleRate() != 48000 || src.Channels() != 6 {
		t.Errorf("got %d Hz %d ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize()%6 != 0 {
		t.Errorf("BufSize() = %d is not frame aligned", src.BufSize())
	}

	if _, err := newSource(&mockOggVorbisReader{channels: 0}); !errors.Is(err, ErrInvalidStream) {
		t.Errorf("newSource() error = %v, want %v", err, ErrInvalidStream)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		channels  int
		maxFrames int
		dstLen    int
		samples   []float32
	}{
		{name: "mono", channels: 1, dstLen: 4, samples: []float32{0.1, 0.2, 0.3, 0.4, 0.5}},
		{name: "stereo", channels: 2, dstLen: 4, samples: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}},
		{name: "odd buffer", channels: 2, dstLen: 5, samples: []float32{1, 2, 3, 4, 5, 6}},
		{name: "short packets", channels: 3, maxFrames: 1, dstLen: 9, samples: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newSource(&mockOggVorbisReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    tt.samples,
				maxFrames:  tt.maxFrames,
			})
			if err != nil {
				t.Fatal(err)
			}

			var got []float32
			dst := make([]float32, tt.dstLen)
			for {
				n, err := src.ReadSamples(dst)
				if n%tt.channels != 0 {
					t.Fatalf("read %d values, not a whole frame", n)
				}
				got = append(got, dst[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatal(err)
				}
			}

			if len(got) != len(tt.samples) {
				t.Fatalf("read %d values, want %d", len(got), len(tt.samples))
			}
			for i := range got {
				if got[i] != tt.samples[i] {
					t.Errorf("value %d = %v, want %v", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_Edges(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&mockOggVorbisReader{channels: 2, samples: []float32{1, 2}})
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("sub-frame read = %d, %v, want 0, nil", n, err)
	}

	boom := errors.New("corrupt page")
	src, _ = newSource(&mockOggVorbisReader{channels: 2, err: boom})
	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	m := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: make([]float32, 1<<16)}
	src, _ := newSource(m)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := src.ReadSamples(dst); err == io.EOF {
			m.offset = 0
		}
	}
}
