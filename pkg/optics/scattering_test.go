package optics

import (
	"math"
	"testing"
)

func TestRayleighIntensityWavelengthDependence(t *testing.T) {
	// Blue scatters far more strongly than red: (450/λ)⁴.
	blue := RayleighIntensity(450, 90)
	red := RayleighIntensity(650, 90)
	wantRatio := math.Pow(650.0/450.0, 4)
	if ratio := blue / red; !approxEqual(ratio, wantRatio, 1e-9) {
		t.Errorf("blue/red = %v, want %v", ratio, wantRatio)
	}

	// At the reference wavelength and 90° the phase factor is exactly 1.
	if got := RayleighIntensity(450, 90); !approxEqual(got, 1, 1e-12) {
		t.Errorf("RayleighIntensity(450, 90°) = %v, want 1", got)
	}
}

func TestRayleighPhaseSymmetry(t *testing.T) {
	// Forward and backward scattering are equal; 90° is the minimum.
	fwd := RayleighPhase(0)
	back := RayleighPhase(math.Pi)
	side := RayleighPhase(math.Pi / 2)

	if !approxEqual(fwd, back, tol) {
		t.Errorf("forward %v != backward %v", fwd, back)
	}
	if !approxEqual(fwd, 2, tol) {
		t.Errorf("forward phase = %v, want 2", fwd)
	}
	if !approxEqual(side, 1, tol) {
		t.Errorf("90° phase = %v, want 1", side)
	}
}

func TestMieSizeParameter(t *testing.T) {
	if got := MieSizeParameter(100, 628.318); !approxEqual(got, 1, 1e-4) {
		t.Errorf("x = %v, want ~1", got)
	}
	if got := MieSizeParameter(1, 0); got != 0 {
		t.Errorf("zero wavelength: x = %v, want 0", got)
	}
}

func TestMiePhaseForwardDominance(t *testing.T) {
	// Large particles scatter strongly forward.
	for _, x := range []float64{5, 20, 100} {
		fwd := MiePhaseApprox(0, x)
		back := MiePhaseApprox(math.Pi, x)
		if fwd <= back {
			t.Errorf("x=%v: forward %v not dominant over backward %v", x, fwd, back)
		}
	}
}

func TestMiePhaseSmallParticleIsNearIsotropic(t *testing.T) {
	// As x -> 0 the asymmetry parameter goes to 0 and the lobe flattens.
	fwd := MiePhaseApprox(0, 0.01)
	back := MiePhaseApprox(math.Pi, 0.01)
	if ratio := fwd / back; ratio > 1.1 {
		t.Errorf("x=0.01: forward/backward = %v, expected near 1", ratio)
	}
}
