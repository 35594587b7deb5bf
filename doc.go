// SPDX-License-Identifier: EPL-2.0

// Package padchop is a sample-chopping instrument: it slices a loaded sample
// into regions and maps the regions onto a row of pads that can be played
// from MIDI, the keyboard or code.
//
// The pieces live in their own packages:
//   - slicing splits a sample on a tempo grid or at detected transients
//   - player renders up to 64 voices, one per pad
//   - control holds the state shared between the loader, the UI and audio
//   - loader decodes and slices files on background workers
//   - engine pulls everything together once per audio block
//   - output adapts the engine to oto and beep
//
// This package wires the bundled decoders together:
//
//	reg := padchop.NewRegistry()
//	smp, err := padchop.DecodeFile(reg, "break.wav")
//	if err != nil {
//	    var derr *sample.DecodeError
//	    if errors.As(err, &derr) {
//	        log.Printf("cannot load %s", derr.Path)
//	    }
//	}
//
// # Supported Formats
//
// The registry maps file extensions to decoders:
//   - wav, wave: integer PCM via formats/wav
//   - mp3 via formats/mp3
//   - ogg, oga: Vorbis via formats/vorbis
//   - aif, aiff via formats/aiff
//
// Files with any other extension are tried as WAV and then as MP3.
// Samples with more than two channels are rejected.
package padchop
