// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// InterleaveInt16 converts two channel buffers to interleaved 16-bit PCM,
// appending to dst. Only min(len(left), len(right)) frames are written.
func InterleaveInt16(dst []int16, left, right []float32) []int16 {
	frames := min(len(left), len(right))
	for i := range frames {
		dst = append(dst, Float32ToInt16(left[i]), Float32ToInt16(right[i]))
	}

	return dst
}
