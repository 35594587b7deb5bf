// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 or 32 bits is supported with any channel count.
// The returned audio.Source yields interleaved float32 samples in [-1, 1].
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another format
//	}
//
// go-audio needs to seek, so readers without Seek are read fully into
// memory before decoding starts.
package aiff
