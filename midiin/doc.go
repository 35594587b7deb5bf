// SPDX-License-Identifier: EPL-2.0

// Package midiin feeds MIDI note messages from a gomidi input port into the
// instrument's note queue.
package midiin
