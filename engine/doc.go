// SPDX-License-Identifier: EPL-2.0

// Package engine ties the voice pool to the shared control state.
//
// Once per block the Instrument adopts any newly published sample or slice
// set before rendering. Queued MIDI notes and UI pad events are applied in
// the order they arrived, and the pads that are sounding are reported back
// for display.
package engine
