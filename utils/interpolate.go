// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate blends y0 and y1.
// x is the fractional position between y0 and y1 (0 <= x < 1).
func LinearInterpolate(y0, y1, x float32) float32 {
	return y0 + (y1-y0)*x
}

// InterpolationTaps splits a fractional read position into the two frame indices
// used for linear interpolation and the fraction between them.
// The second tap is clamped to frames-1, it never wraps or reads past the end.
// Negative positions read frame 0.
func InterpolationTaps(pos float64, frames int) (i0, i1 int, frac float32) {
	if frames <= 0 {
		return 0, 0, 0
	}

	idx := int(pos)
	if float64(idx) > pos {
		idx-- // floor for negative positions
	}
	frac = float32(pos - float64(idx))

	i0 = max(idx, 0)
	i0 = min(i0, frames-1)
	i1 = min(i0+1, frames-1)

	return i0, i1, frac
}
