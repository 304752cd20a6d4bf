package exclusion

import "testing"

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestIntervalIsValid(t *testing.T) {
	valid := Interval{Label: "x", MinMass: fp(1000), MaxMass: fp(1001)}
	if !valid.IsValid() {
		t.Error("expected valid interval")
	}

	invalid := Interval{Label: "x", MinMass: fp(1001), MaxMass: fp(1000)}
	if invalid.IsValid() {
		t.Error("expected invalid interval (min > max)")
	}

	wildcard := Interval{Label: "x"}
	if !wildcard.IsValid() {
		t.Error("wildcard interval (-inf, +inf) should be valid")
	}
}

func TestIntervalValidateRejectsNilLabel(t *testing.T) {
	iv := Interval{MinMass: fp(1), MaxMass: fp(2)}
	if err := iv.validate(); err == nil {
		t.Error("expected error for empty label")
	}
}

func TestIsEnvelopedByCharge(t *testing.T) {
	broad := Interval{Charge: nil}
	narrow := Interval{Charge: ip(2)}

	if !narrow.IsEnvelopedBy(broad) {
		t.Error("a charge-specific interval should be enveloped by a wildcard-charge interval")
	}
	if broad.IsEnvelopedBy(narrow) {
		t.Error("a wildcard-charge interval should not be enveloped by a charge-specific one")
	}

	mismatched := Interval{Charge: ip(3)}
	if mismatched.IsEnvelopedBy(narrow) {
		t.Error("mismatched charges should not envelope")
	}
}

func TestIsEnvelopedByMassBounds(t *testing.T) {
	outer := Interval{MinMass: fp(999), MaxMass: fp(1002)}
	inner := Interval{MinMass: fp(1000), MaxMass: fp(1001)}
	if !inner.IsEnvelopedBy(outer) {
		t.Error("inner range should be enveloped by the wider outer range")
	}
	if outer.IsEnvelopedBy(inner) {
		t.Error("outer range should not be enveloped by the narrower inner range")
	}
}

func TestPointIsBoundedByHalfOpen(t *testing.T) {
	iv := Interval{Label: "PEPTIDE", Charge: ip(1), MinMass: fp(1000), MaxMass: fp(1001)}

	atMin := Point{Charge: ip(1), Mass: fp(1000)}
	if !atMin.IsBoundedBy(iv) {
		t.Error("point at exactly min_mass should be bounded (inclusive lower bound)")
	}

	atMax := Point{Charge: ip(1), Mass: fp(1001)}
	if atMax.IsBoundedBy(iv) {
		t.Error("point at exactly max_mass should not be bounded (exclusive upper bound)")
	}

	wrongCharge := Point{Charge: ip(2), Mass: fp(1000.5)}
	if wrongCharge.IsBoundedBy(iv) {
		t.Error("mismatched charge should not be bounded")
	}

	wildcard := Point{}
	if !wildcard.IsBoundedBy(iv) {
		t.Error("an all-wildcard point should be bounded by any interval")
	}
}

func TestExpandMassPPM(t *testing.T) {
	tol := Tolerance{Mass: fp(10)}
	p := Point{Mass: fp(1_000_000)}

	iv := Expand(p, tol)
	if iv.MinMass == nil || iv.MaxMass == nil {
		t.Fatal("expected mass bounds to be set")
	}
	if *iv.MinMass != 999990 {
		t.Errorf("min_mass = %v, want 999990", *iv.MinMass)
	}
	if *iv.MaxMass != 1000010 {
		t.Errorf("max_mass = %v, want 1000010", *iv.MaxMass)
	}
}

func TestExpandAbsoluteAndMultiplicative(t *testing.T) {
	tol := Tolerance{RT: fp(5), OOK0: fp(0.1), Intensity: fp(0.2)}
	p := Point{RT: fp(100), OOK0: fp(1.0), Intensity: fp(1000)}

	iv := Expand(p, tol)
	if *iv.MinRT != 95 || *iv.MaxRT != 105 {
		t.Errorf("rt bounds = [%v, %v), want [95, 105)", *iv.MinRT, *iv.MaxRT)
	}
	if *iv.MinOOK0 != 0.9 || *iv.MaxOOK0 != 1.1 {
		t.Errorf("ook0 bounds = [%v, %v), want [0.9, 1.1)", *iv.MinOOK0, *iv.MaxOOK0)
	}
	if *iv.MinInten != 800 || *iv.MaxInten != 1200 {
		t.Errorf("intensity bounds = [%v, %v), want [800, 1200)", *iv.MinInten, *iv.MaxInten)
	}
}

func TestExpandMissingToleranceLeavesBoundNull(t *testing.T) {
	tol := Tolerance{}
	p := Point{Mass: fp(1000), RT: fp(10)}
	iv := Expand(p, tol)
	if iv.MinMass != nil || iv.MaxMass != nil {
		t.Error("absent mass tolerance should leave mass bound null")
	}
	if iv.MinRT != nil || iv.MaxRT != nil {
		t.Error("absent rt tolerance should leave rt bound null")
	}
}

func TestExpandChargeCopyFlag(t *testing.T) {
	p := Point{Charge: ip(2)}

	withCharge := Expand(p, Tolerance{Charge: true})
	if withCharge.Charge == nil || *withCharge.Charge != 2 {
		t.Error("exact_charge=true should copy the point's charge")
	}

	withoutCharge := Expand(p, Tolerance{Charge: false})
	if withoutCharge.Charge != nil {
		t.Error("exact_charge=false should leave charge nil")
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusNone:     "NONE",
		StatusExcluded: "EXCLUDED",
		StatusIncluded: "INCLUDED",
		StatusMixed:    "MIXED",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
