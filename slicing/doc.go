// SPDX-License-Identifier: EPL-2.0

// Package slicing cuts a decoded sample into pad regions.
//
// The tempo grid algorithms (1/4, 1/8, 1/16, Bars) walk the sample in steps
// derived from the tempo and the playback speed. Transient follows amplitude
// onsets in the signal and ignores both.
package slicing
