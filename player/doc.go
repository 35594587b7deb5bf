// SPDX-License-Identifier: EPL-2.0

// Package player renders pad voices from a decoded sample.
//
// Each voice keeps a fractional cursor into the sample and advances by the
// ratio between the sample rate and the output rate, scaled by the playback
// rate factor. Reads use linear interpolation. All voices are mixed into one
// stereo frame per call to Process.
package player
