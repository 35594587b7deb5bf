// SPDX-License-Identifier: EPL-2.0

// Package output connects a block renderer to audio sinks: an io.Reader of
// float32 frames for oto players, and a beep.Streamer for beep pipelines.
package output
