package exclusion

import "github.com/pgarrett-scripps/exclusionms/internal/bounds"

func boundsOrdered(min, max *float64) bool {
	return bounds.ResolveMin(min) <= bounds.ResolveMax(max)
}

func envelops(outerMin, outerMax, innerMin, innerMax *float64) bool {
	return bounds.Envelops(outerMin, outerMax, innerMin, innerMax)
}

func containsHalfOpen(min, max *float64, v float64) bool {
	return bounds.ContainsHalfOpen(min, max, v)
}

// chargeCompatibleEnveloped implements Interval.IsEnvelopedBy's charge
// rule: a narrower (or equal) charge constraint is enveloped by a
// broader one, never the reverse.
func chargeCompatibleEnveloped(self, other *int) bool {
	switch {
	case self != nil && other != nil:
		return *self == *other
	case self != nil && other == nil:
		return true
	case self == nil && other != nil:
		return false
	default:
		return true
	}
}
