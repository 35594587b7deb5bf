// SPDX-License-Identifier: EPL-2.0

package params

import "math"

// Range maps a plain parameter value to a normalized [0, 1] position.
//
// Values on either side of Center are skewed independently by Factor, so
// Center always sits at 0.5. A Factor of 1 with Center halfway between Min
// and Max is a linear range.
type Range struct {
	Min, Max float64
	Center   float64
	Factor   float64
	// Step snaps plain values; 0 disables snapping.
	Step float64
}

// Linear returns an unskewed range.
func Linear(lo, hi, step float64) Range {
	return Range{Min: lo, Max: hi, Center: (lo + hi) / 2, Factor: 1, Step: step}
}

// SymmetricalSkewed returns a range centred on center. A factor below 1
// gives more of the control's travel to values near center.
func SymmetricalSkewed(lo, hi, center, factor, step float64) Range {
	return Range{Min: lo, Max: hi, Center: center, Factor: factor, Step: step}
}

// Clamp snaps v to the step grid and limits it to [Min, Max].
// NaN yields Center.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Center
	}
	if r.Step > 0 {
		v = math.Round(v/r.Step) * r.Step
	}

	return math.Max(r.Min, math.Min(v, r.Max))
}

// Normalize converts a plain value to its [0, 1] position.
func (r Range) Normalize(plain float64) float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}

	p := (math.Max(r.Min, math.Min(plain, r.Max)) - r.Min) / span
	c := (r.Center - r.Min) / span

	if p > c {
		scaled := (p - c) / (1 - c)
		return math.Pow(scaled, r.Factor)*0.5 + 0.5
	}

	inverted := (c - p) / c
	return (1 - math.Pow(inverted, r.Factor)) * 0.5
}

// Unnormalize converts a [0, 1] position back to a plain value.
// The result is not snapped; pass it through Clamp for that.
func (r Range) Unnormalize(normalized float64) float64 {
	n := math.Max(0, math.Min(normalized, 1))
	span := r.Max - r.Min
	c := (r.Center - r.Min) / span

	var p float64
	if n > 0.5 {
		scaled := (n - 0.5) * 2
		p = math.Pow(scaled, 1/r.Factor)*(1-c) + c
	} else {
		inverted := (0.5 - n) * 2
		p = (1 - math.Pow(inverted, 1/r.Factor)) * c
	}

	return p*span + r.Min
}
