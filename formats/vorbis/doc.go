// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float natively, so samples pass through unchanged and
// keep the stream's channel count. Reads always return whole frames.
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
