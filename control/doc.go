// SPDX-License-Identifier: EPL-2.0

// Package control carries state between the control surface, the background
// loader and the audio thread.
//
// Every shared field lives in one State guarded by a reader/writer lock. The
// sample and the slice set each carry a generation counter that only moves
// forward, so the audio thread can tell whether anything changed with one
// integer comparison. The audio thread only ever uses the non-blocking Try*
// methods.
package control
