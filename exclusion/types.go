// Package exclusion implements the in-memory multidimensional exclusion
// index used to drive mass-spectrometry acquisition control: a set of
// labelled intervals over charge, mass, retention time, reduced mobility
// (ook0) and intensity, queried by point and by interval.
package exclusion

import (
	"github.com/google/uuid"

	"github.com/pgarrett-scripps/exclusionms/exclusion/exerr"
)

// Handle is the opaque, unique identifier assigned to a stored interval
// at insertion time. It unifies the separate UUID/handle pair tracked by
// one revision of the original source into a single identifier.
type Handle string

// NewHandle generates a fresh, globally unique Handle.
func NewHandle() Handle {
	return Handle(uuid.New().String())
}

// Polarity governs how a matching interval votes in Status.
type Polarity int

const (
	// Exclude is the default polarity: a matching interval marks a point
	// as excluded unless overridden by a mixed result.
	Exclude Polarity = iota
	// Include marks a point as included for acquisition.
	Include
)

func (p Polarity) String() string {
	if p == Include {
		return "INCLUDE"
	}
	return "EXCLUDE"
}

// Status is the verdict query: whether a probe point is excluded,
// included, both (mixed polarities agree it's covered but disagree on
// polarity) or untouched by any stored interval.
type Status int

const (
	StatusNone Status = iota
	StatusExcluded
	StatusIncluded
	StatusMixed
)

func (s Status) String() string {
	switch s {
	case StatusExcluded:
		return "EXCLUDED"
	case StatusIncluded:
		return "INCLUDED"
	case StatusMixed:
		return "MIXED"
	default:
		return "NONE"
	}
}

// Interval is a labelled, closed-open region of the 5-dimensional
// attribute space plus a polarity and an opaque payload. Label is
// required on every stored interval (I1); Handle is assigned by Add and
// is immutable and unique for the interval's entire lifetime (I3).
//
// min is inclusive, max is exclusive for every continuous dimension —
// this asymmetry is a contract, not an accident (see internal/bounds).
type Interval struct {
	Label    string   `json:"label" msgpack:"label"`
	Handle   Handle   `json:"handle" msgpack:"handle"`
	Charge   *int     `json:"charge" msgpack:"charge"`
	MinMass  *float64 `json:"min_mass" msgpack:"min_mass"`
	MaxMass  *float64 `json:"max_mass" msgpack:"max_mass"`
	MinRT    *float64 `json:"min_rt" msgpack:"min_rt"`
	MaxRT    *float64 `json:"max_rt" msgpack:"max_rt"`
	MinOOK0  *float64 `json:"min_ook0" msgpack:"min_ook0"`
	MaxOOK0  *float64 `json:"max_ook0" msgpack:"max_ook0"`
	MinInten *float64 `json:"min_intensity" msgpack:"min_intensity"`
	MaxInten *float64 `json:"max_intensity" msgpack:"max_intensity"`
	Polarity Polarity `json:"polarity" msgpack:"polarity"`
	Payload  any      `json:"data,omitempty" msgpack:"data,omitempty"`
}

// Point is a probe coordinate; any field left nil acts as a wildcard
// that matches any value on that dimension.
type Point struct {
	Charge    *int     `json:"charge"`
	Mass      *float64 `json:"mass"`
	RT        *float64 `json:"rt"`
	OOK0      *float64 `json:"ook0"`
	Intensity *float64 `json:"intensity"`
}

// Tolerance expands a Point into a bounding Interval. Mass tolerance is
// parts-per-million, RT/OOK0 tolerance is an absolute offset, intensity
// tolerance is multiplicative. Charge is copied onto the produced
// interval only when Charge is true.
type Tolerance struct {
	Charge    bool
	Mass      *float64
	RT        *float64
	OOK0      *float64
	Intensity *float64
}

func ptr(v float64) *float64 { return &v }

// massBounds computes the ppm-tolerant [min,max) around mass, or
// (nil,nil) if either the point coordinate or the tolerance is absent or
// zero.
func (t Tolerance) massBounds(mass *float64) (*float64, *float64) {
	if t.Mass == nil || *t.Mass == 0 || mass == nil || *mass == 0 {
		return nil, nil
	}
	delta := *mass * *t.Mass / 1_000_000
	return ptr(*mass - delta), ptr(*mass + delta)
}

func (t Tolerance) absoluteBounds(tol, v *float64) (*float64, *float64) {
	if tol == nil || *tol == 0 || v == nil || *v == 0 {
		return nil, nil
	}
	return ptr(*v - *tol), ptr(*v + *tol)
}

func (t Tolerance) multiplicativeBounds(tol, v *float64) (*float64, *float64) {
	if tol == nil || *tol == 0 || v == nil || *v == 0 {
		return nil, nil
	}
	delta := *v * *tol
	return ptr(*v - delta), ptr(*v + delta)
}

// Expand constructs an Interval enveloping point, using the tolerance's
// per-dimension rules. The resulting interval still requires a label
// before it can be stored via Add.
func Expand(point Point, tol Tolerance) Interval {
	var charge *int
	if tol.Charge {
		charge = point.Charge
	}

	minMass, maxMass := tol.massBounds(point.Mass)
	minRT, maxRT := tol.absoluteBounds(tol.RT, point.RT)
	minOOK0, maxOOK0 := tol.absoluteBounds(tol.OOK0, point.OOK0)
	minInten, maxInten := tol.multiplicativeBounds(tol.Intensity, point.Intensity)

	return Interval{
		Charge:   charge,
		MinMass:  minMass,
		MaxMass:  maxMass,
		MinRT:    minRT,
		MaxRT:    maxRT,
		MinOOK0:  minOOK0,
		MaxOOK0:  maxOOK0,
		MinInten: minInten,
		MaxInten: maxInten,
	}
}

// IsValid reports whether every dimension's resolved min is at most its
// resolved max (I2). Charge has no ordering to validate.
func (iv Interval) IsValid() bool {
	return boundsOrdered(iv.MinMass, iv.MaxMass) &&
		boundsOrdered(iv.MinRT, iv.MaxRT) &&
		boundsOrdered(iv.MinOOK0, iv.MaxOOK0) &&
		boundsOrdered(iv.MinInten, iv.MaxInten)
}

// IsEnvelopedBy reports whether iv is fully contained within other
// across charge and every continuous dimension.
func (iv Interval) IsEnvelopedBy(other Interval) bool {
	if !chargeCompatibleEnveloped(iv.Charge, other.Charge) {
		return false
	}
	return envelops(other.MinMass, other.MaxMass, iv.MinMass, iv.MaxMass) &&
		envelops(other.MinRT, other.MaxRT, iv.MinRT, iv.MaxRT) &&
		envelops(other.MinOOK0, other.MaxOOK0, iv.MinOOK0, iv.MaxOOK0) &&
		envelops(other.MinInten, other.MaxInten, iv.MinInten, iv.MaxInten)
}

// IsBoundedBy reports whether point falls inside interval: charge must
// match exactly when both are set, and every non-wildcard continuous
// coordinate must fall in its half-open bound.
func (p Point) IsBoundedBy(iv Interval) bool {
	if p.Charge != nil && iv.Charge != nil && *p.Charge != *iv.Charge {
		return false
	}
	if p.Mass != nil && !containsHalfOpen(iv.MinMass, iv.MaxMass, *p.Mass) {
		return false
	}
	if p.RT != nil && !containsHalfOpen(iv.MinRT, iv.MaxRT, *p.RT) {
		return false
	}
	if p.OOK0 != nil && !containsHalfOpen(iv.MinOOK0, iv.MaxOOK0, *p.OOK0) {
		return false
	}
	if p.Intensity != nil && !containsHalfOpen(iv.MinInten, iv.MaxInten, *p.Intensity) {
		return false
	}
	return true
}

// validate is the sentinel-error-producing counterpart to IsValid, used
// by Add.
func (iv Interval) validate() error {
	if iv.Label == "" {
		return exerr.ErrInvalidInterval
	}
	if !iv.IsValid() {
		return exerr.ErrInvalidInterval
	}
	return nil
}
