// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits with any channel count and sample rate. Float and
// compressed encodings are rejected with ErrUnsupportedWavFormat.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Samples come back interleaved as float32 in [-1, 1]. 8-bit WAV data is
// unsigned and is centered on zero while decoding.
//
// WriteWAV16 writes interleaved int16 samples as a canonical 44-byte header
// followed by the data chunk:
//
//	err := wav.WriteWAV16(out, 44100, 2, samples)
package wav
