// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by the format decoders.
//
// # Sources
//
// A decoder turns a byte stream into a Source. ReadSamples fills dst with
// interleaved float32 samples in [-1, 1] and returns io.EOF once the stream is
// exhausted; BufSize hints at a read size that avoids short reads. The sample
// package drains a Source into the immutable buffer that the slicer and the
// player share.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, format, ok := registry.Lookup("/samples/break.WAV")
//
// Keys are case-insensitive and may be given with or without the leading dot.
// The root padchop package provides a registry with every bundled decoder.
package audio
