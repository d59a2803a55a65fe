package optics

import "testing"

func TestSubstanceByKey(t *testing.T) {
	s, ok := SubstanceByKey("sucrose")
	if !ok {
		t.Fatal("sucrose not found")
	}
	if s.SpecificRotation != 66.5 {
		t.Errorf("sucrose rotation = %v, want 66.5", s.SpecificRotation)
	}

	if _, ok := SubstanceByKey("salt"); ok {
		t.Error("unknown substance should not resolve")
	}
}

func TestOpticalRotation(t *testing.T) {
	// α = [α]·l·c: 1 dm of 0.1 g/mL sucrose rotates 6.65°.
	if got := OpticalRotation(66.5, 1, 0.1); !approxEqual(got, 6.65, 1e-9) {
		t.Errorf("sucrose rotation = %v, want 6.65", got)
	}

	// Levorotatory substances rotate the other way.
	fructose, _ := SubstanceByKey("fructose")
	if got := OpticalRotation(fructose.SpecificRotation, 2, 0.05); got >= 0 {
		t.Errorf("fructose rotation = %v, want negative", got)
	}

	// Zero concentration means no rotation regardless of substance.
	if got := OpticalRotation(66.5, 1, 0); got != 0 {
		t.Errorf("zero concentration rotated %v", got)
	}
}

func TestRotationMatchesRotatorElement(t *testing.T) {
	// The polarimeter demo cross-checks the scalar formula against the
	// Mueller rotator: horizontal light through an α rotator then an
	// analyzer at α transmits fully.
	alpha := OpticalRotation(52.7, 1, 0.2) // glucose, 10.54°
	out := LinearPolarizer(alpha).Compose(Rotator(alpha)).Apply(LinearHorizontal(1))
	if !approxEqual(out.S0, 1, 1e-9) {
		t.Errorf("analyzer aligned with rotated plane transmits %v, want 1", out.S0)
	}
}
