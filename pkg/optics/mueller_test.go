package optics

import (
	"math"
	"testing"
)

func TestIdentityLeavesBeamUnchanged(t *testing.T) {
	s := Stokes{S0: 1, S1: 0.3, S2: -0.2, S3: 0.1}
	got := Identity().Apply(s)
	if !stokesApproxEqual(got, s, tol) {
		t.Errorf("Identity.Apply = %v, want %v", got, s)
	}
}

func TestLinearPolarizerOnUnpolarized(t *testing.T) {
	// An ideal polarizer passes half of unpolarized light, fully polarized.
	out := LinearPolarizer(0).Apply(Unpolarized(1))
	if !approxEqual(out.S0, 0.5, tol) {
		t.Errorf("S0 = %v, want 0.5", out.S0)
	}
	if dop := out.DegreeOfPolarization(); !approxEqual(dop, 1, tol) {
		t.Errorf("DOP = %v, want 1", dop)
	}
}

func TestCrossedPolarizersExtinguish(t *testing.T) {
	crossed := LinearPolarizer(90).Compose(LinearPolarizer(0))
	out := crossed.Apply(Unpolarized(1))
	if !approxEqual(out.S0, 0, 1e-12) {
		t.Errorf("crossed polarizers transmit %v, want 0", out.S0)
	}
}

func TestThreePolarizerParadox(t *testing.T) {
	// Inserting a 45° polarizer between crossed polarizers restores
	// transmission: 0.5 · cos²45 · cos²45 = 0.125.
	stack := LinearPolarizer(90).Compose(LinearPolarizer(45)).Compose(LinearPolarizer(0))
	out := stack.Apply(Unpolarized(1))
	if !approxEqual(out.S0, 0.125, 1e-12) {
		t.Errorf("three-polarizer transmission = %v, want 0.125", out.S0)
	}
}

func TestPolarizerSequenceMatchesMalus(t *testing.T) {
	// Horizontal light through an analyzer at θ reproduces Malus's law.
	for _, theta := range []float64{0, 20, 45, 70, 90} {
		out := LinearPolarizer(theta).Apply(LinearHorizontal(1))
		want := MalusLaw(theta, 1)
		if !approxEqual(out.S0, want, 1e-12) {
			t.Errorf("theta=%v°: S0 = %v, Malus = %v", theta, out.S0, want)
		}
	}
}

func TestQuarterWavePlateMakesCircular(t *testing.T) {
	// Linear at 45° to the fast axis becomes circular.
	out := QuarterWavePlate(0).Apply(Stokes{S0: 1, S2: 1})
	if !approxEqual(math.Abs(out.S3), 1, tol) {
		t.Errorf("S3 = %v, want ±1", out.S3)
	}
	if !approxEqual(out.S1, 0, tol) || !approxEqual(out.S2, 0, tol) {
		t.Errorf("residual linear components: %v", out)
	}
}

func TestHalfWavePlateRotatesLinear(t *testing.T) {
	// A half-wave plate at 45° flips horizontal to vertical.
	out := HalfWavePlate(45).Apply(LinearHorizontal(1))
	if !approxEqual(out.S1, -1, tol) {
		t.Errorf("S1 = %v, want -1", out.S1)
	}
}

func TestRotatorPreservesIntensityAndDOP(t *testing.T) {
	in := LinearHorizontal(1)
	out := Rotator(30).Apply(in)
	if !approxEqual(out.S0, 1, tol) {
		t.Errorf("S0 = %v, want 1", out.S0)
	}
	if dop := out.DegreeOfPolarization(); !approxEqual(dop, 1, tol) {
		t.Errorf("DOP = %v, want 1", dop)
	}
	// 30° rotation moves S1 to cos(60°) = 0.5.
	if !approxEqual(out.S1, 0.5, tol) {
		t.Errorf("S1 = %v, want 0.5", out.S1)
	}
}

func TestRotateConjugation(t *testing.T) {
	// Rotating a polarizer by θ equals constructing it at θ.
	rotated := LinearPolarizer(0).Rotate(30)
	direct := LinearPolarizer(30)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approxEqual(rotated.At(i, j), direct.At(i, j), 1e-12) {
				t.Fatalf("element (%d,%d): rotated %v, direct %v", i, j, rotated.At(i, j), direct.At(i, j))
			}
		}
	}
}

func TestDepolarizer(t *testing.T) {
	out := Depolarizer(1).Apply(LinearHorizontal(1))
	if dop := out.DegreeOfPolarization(); !approxEqual(dop, 0, tol) {
		t.Errorf("full depolarizer left DOP = %v", dop)
	}

	out = Depolarizer(0).Apply(LinearHorizontal(1))
	if dop := out.DegreeOfPolarization(); !approxEqual(dop, 1, tol) {
		t.Errorf("zero depolarizer changed DOP to %v", dop)
	}
}

func TestPolarimetricMetrics(t *testing.T) {
	pol := LinearPolarizer(0)
	if d := pol.Diattenuation(); !approxEqual(d, 1, tol) {
		t.Errorf("polarizer diattenuation = %v, want 1", d)
	}
	if p := pol.Polarizance(); !approxEqual(p, 1, tol) {
		t.Errorf("polarizer polarizance = %v, want 1", p)
	}

	id := Identity()
	if d := id.Diattenuation(); d != 0 {
		t.Errorf("identity diattenuation = %v, want 0", d)
	}
	if idx := id.DepolarizationIndex(); !approxEqual(idx, 1, tol) {
		t.Errorf("identity depolarization index = %v, want 1", idx)
	}
	if idx := Depolarizer(1).DepolarizationIndex(); !approxEqual(idx, 0, tol) {
		t.Errorf("ideal depolarizer index = %v, want 0", idx)
	}
}

func stokesApproxEqual(a, b Stokes, eps float64) bool {
	return approxEqual(a.S0, b.S0, eps) &&
		approxEqual(a.S1, b.S1, eps) &&
		approxEqual(a.S2, b.S2, eps) &&
		approxEqual(a.S3, b.S3, eps)
}
