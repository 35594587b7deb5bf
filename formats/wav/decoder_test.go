// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/padchop/audio"
)

func encode(t *testing.T, sampleRate, channels int, samples []int16) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, sampleRate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	return buf.Bytes()
}

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 5)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		samples  []int16
	}{
		{name: "mono", rate: 8000, channels: 1, samples: []int16{0, 16384, -16384, 32767, -32768}},
		{name: "stereo", rate: 44100, channels: 2, samples: []int16{100, -100, 8192, -8192, 0, 0, 32767, -32768}},
		{name: "empty", rate: 48000, channels: 2, samples: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(encode(t, tt.rate, tt.channels, tt.samples)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			if src.SampleRate() != tt.rate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.rate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}

			got := readAll(t, src)
			if len(got) != len(tt.samples) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(tt.samples))
			}
			for i, s := range tt.samples {
				if want := float32(s) / 32768; got[i] != want {
					t.Errorf("sample %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := encode(t, 22050, 1, []int16{1000, 2000, 3000})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data[:20]), bytes.NewReader(data[20:])))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := readAll(t, src); len(got) != 3 {
		t.Errorf("decoded %d samples, want 3", len(got))
	}
}

func TestDecoder_Unsigned8Bit(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := writeHeader(buf, formatPCM, 8000, 1, 8, 4); err != nil {
		t.Fatal(err)
	}
	buf.Write([]byte{128, 192, 0, 255})

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []float32{0, 0.5, -1, 127.0 / 128}
	got := readAll(t, src)
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	header := func(format uint16, bits int) []byte {
		buf := new(bytes.Buffer)
		if err := writeHeader(buf, format, 44100, 1, bits, 8); err != nil {
			t.Fatal(err)
		}
		buf.Write(make([]byte, 8))
		return buf.Bytes()
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "garbage", data: []byte("NOT A WAV FILE DATA"), wantErr: ErrNotWavFile},
		{name: "truncated", data: []byte("RIF"), wantErr: ErrNotWavFile},
		{name: "empty", data: nil, wantErr: ErrNotWavFile},
		{name: "ieee float", data: header(3, 32), wantErr: ErrUnsupportedWavFormat},
		{name: "12-bit", data: header(formatPCM, 12), wantErr: ErrUnsupportedWavLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkDecoder(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i)
	}
	data := new(bytes.Buffer)
	if err := WriteWAV16(data, 44100, 2, samples); err != nil {
		b.Fatal(err)
	}
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data.Bytes()))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
