// Package bounds implements the open/closed bound arithmetic shared by
// every dimension of the exclusion index: charge is compared exactly,
// while mass, rt, ook0 and intensity are half-open ranges with a null
// minimum resolving to negative infinity and a null maximum resolving to
// positive infinity.
package bounds

import "math"

// ResolveMin maps a nil minimum bound to negative infinity.
func ResolveMin(v *float64) float64 {
	if v == nil {
		return math.Inf(-1)
	}
	return *v
}

// ResolveMax maps a nil maximum bound to positive infinity.
func ResolveMax(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

// Envelops reports whether the outer bound pair fully contains the inner
// bound pair: the outer minimum must be at or below the inner minimum,
// and the outer maximum must be at or above the inner maximum.
func Envelops(outerMin, outerMax, innerMin, innerMax *float64) bool {
	return ResolveMin(outerMin) <= ResolveMin(innerMin) && ResolveMax(outerMax) >= ResolveMax(innerMax)
}

// ContainsHalfOpen reports whether v falls in [min, max): min is
// inclusive, max is exclusive, after null substitution.
func ContainsHalfOpen(min, max *float64, v float64) bool {
	return ResolveMin(min) <= v && v < ResolveMax(max)
}
