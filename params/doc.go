// SPDX-License-Identifier: EPL-2.0

// Package params holds the instrument's control parameters: starting note,
// tempo, slice algorithm, hold and gate behaviour, speed and pitch.
//
// Parameters are shared between the control surface, the loader and the audio
// thread, and are read without locks.
package params
