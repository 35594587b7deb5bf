// SPDX-License-Identifier: EPL-2.0

// Package preset saves and restores the instrument controls as a versioned
// JSON record.
//
//	{
//	  "version": 1,
//	  "sample_path": "/samples/amen.wav",
//	  "starting_note": 36,
//	  "bpm": 136,
//	  "slice_algo": "1/16",
//	  "hold_continue": true,
//	  "gate_on_release": false,
//	  "num_pads": 16,
//	  "speed_percent": 100,
//	  "pitch_semitones": 0
//	}
//
// A preset that fails validation never touches the params.
package preset
