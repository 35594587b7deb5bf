// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer 3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the returned audio.Source reports
// two channels even for mono files. Samples are interleaved float32 in
// [-1, 1].
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
