package optics

import (
	"math"
	"testing"
)

func TestSnellsLaw(t *testing.T) {
	// Air to glass at 30°: sin θ2 = sin 30° / 1.5.
	theta2, ok := SnellsLaw(30, 1.0, 1.5)
	if !ok {
		t.Fatal("unexpected total internal reflection")
	}
	want := math.Asin(0.5/1.5) * 180 / math.Pi
	if !approxEqual(theta2, want, 1e-9) {
		t.Errorf("SnellsLaw(30°, 1, 1.5) = %v, want %v", theta2, want)
	}

	// Normal incidence passes straight through.
	theta2, ok = SnellsLaw(0, 1.0, 1.5)
	if !ok || theta2 != 0 {
		t.Errorf("normal incidence: got (%v, %v)", theta2, ok)
	}

	// Glass to air past the critical angle.
	if _, ok := SnellsLaw(60, 1.5, 1.0); ok {
		t.Error("expected total internal reflection at 60° glass-to-air")
	}
}

func TestFresnelNormalIncidence(t *testing.T) {
	fc := Fresnel(0, 1.0, 1.5)

	// At normal incidence s and p coincide: R = ((n1-n2)/(n1+n2))² = 0.04.
	if !approxEqual(fc.ReflectanceS, 0.04, 1e-9) {
		t.Errorf("ReflectanceS = %v, want 0.04", fc.ReflectanceS)
	}
	if !approxEqual(fc.ReflectanceP, 0.04, 1e-9) {
		t.Errorf("ReflectanceP = %v, want 0.04", fc.ReflectanceP)
	}
}

func TestFresnelEnergyConservation(t *testing.T) {
	for _, theta := range []float64{0, 15, 30, 45, 56, 75, 89} {
		fc := Fresnel(theta, 1.0, 1.5)
		if fc.TotalInternalReflection {
			t.Fatalf("air to glass cannot totally reflect at %v°", theta)
		}
		if sum := fc.ReflectanceS + fc.TransmittanceS; !approxEqual(sum, 1, 1e-9) {
			t.Errorf("theta=%v°: Rs+Ts = %v, want 1", theta, sum)
		}
		if sum := fc.ReflectanceP + fc.TransmittanceP; !approxEqual(sum, 1, 1e-9) {
			t.Errorf("theta=%v°: Rp+Tp = %v, want 1", theta, sum)
		}
	}
}

func TestBrewsterAngle(t *testing.T) {
	brewster := BrewsterAngle(1.0, 1.5)
	want := math.Atan(1.5) * 180 / math.Pi // ~56.31°
	if !approxEqual(brewster, want, 1e-9) {
		t.Fatalf("BrewsterAngle(1, 1.5) = %v, want %v", brewster, want)
	}

	// The p reflection vanishes at Brewster's angle; s does not.
	fc := Fresnel(brewster, 1.0, 1.5)
	if !approxEqual(fc.ReflectanceP, 0, 1e-12) {
		t.Errorf("ReflectanceP at Brewster = %v, want 0", fc.ReflectanceP)
	}
	if fc.ReflectanceS < 0.1 {
		t.Errorf("ReflectanceS at Brewster = %v, expected well above 0", fc.ReflectanceS)
	}
}

func TestCriticalAngle(t *testing.T) {
	crit, ok := CriticalAngle(1.5, 1.0)
	if !ok {
		t.Fatal("glass to air should have a critical angle")
	}
	want := math.Asin(1.0/1.5) * 180 / math.Pi // ~41.8°
	if !approxEqual(crit, want, 1e-9) {
		t.Errorf("CriticalAngle(1.5, 1) = %v, want %v", crit, want)
	}

	if _, ok := CriticalAngle(1.0, 1.5); ok {
		t.Error("air to glass should have no critical angle")
	}

	// Beyond the critical angle everything reflects.
	fc := Fresnel(crit+1, 1.5, 1.0)
	if !fc.TotalInternalReflection {
		t.Error("expected total internal reflection beyond critical angle")
	}
	if fc.ReflectanceS != 1 || fc.ReflectanceP != 1 {
		t.Errorf("TIR reflectances = (%v, %v), want (1, 1)", fc.ReflectanceS, fc.ReflectanceP)
	}
}
