// Package optics implements the numeric engines behind the interactive
// demos: Stokes vectors and Mueller matrices, Fresnel reflection, Malus's
// law and birefringence, scattering models, and optical rotation. The UI
// layer renders; this package only computes.
package optics

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Stokes is a Stokes vector (S0, S1, S2, S3) describing a polarization
// state: total intensity, horizontal/vertical preference, +45/-45
// preference, and circular preference.
type Stokes struct {
	S0, S1, S2, S3 float64
}

// Unpolarized returns an unpolarized beam of the given intensity.
func Unpolarized(intensity float64) Stokes {
	return Stokes{S0: intensity}
}

// LinearHorizontal returns a fully polarized horizontal beam.
func LinearHorizontal(intensity float64) Stokes {
	return Stokes{S0: intensity, S1: intensity}
}

// StokesFromJones converts a Jones vector (Ex, Ey) to Stokes parameters:
//
//	S0 = |Ex|² + |Ey|²
//	S1 = |Ex|² - |Ey|²
//	S2 = 2·Re(Ex·Ey*)
//	S3 = 2·Im(Ex·Ey*)
func StokesFromJones(ex, ey complex128) Stokes {
	return Stokes{
		S0: abs2(ex) + abs2(ey),
		S1: abs2(ex) - abs2(ey),
		S2: 2 * real(ex*cmplx.Conj(ey)),
		S3: 2 * imag(ex*cmplx.Conj(ey)),
	}
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// StokesFromIntensities constructs a Stokes vector from the six classical
// analyzer measurements: horizontal, vertical, +45°, -45°, right circular,
// left circular. S0 is averaged over the three measurement pairs.
func StokesFromIntensities(iH, iV, i45, iM45, iR, iL float64) Stokes {
	return Stokes{
		S0: (iH + iV + i45 + iM45 + iR + iL) / 3,
		S1: iH - iV,
		S2: i45 - iM45,
		S3: iR - iL,
	}
}

// Validate checks the physical realizability constraint
// S0² >= S1² + S2² + S3² and non-negative intensity.
func (s Stokes) Validate() error {
	if s.S0 < 0 {
		return fmt.Errorf("stokes S0 (%v) cannot be negative", s.S0)
	}
	polarized := s.S1*s.S1 + s.S2*s.S2 + s.S3*s.S3
	if polarized > s.S0*s.S0*(1+1e-9) {
		return fmt.Errorf("stokes vector is not physical: S1²+S2²+S3² (%v) exceeds S0² (%v)",
			polarized, s.S0*s.S0)
	}
	return nil
}

// DegreeOfPolarization returns √(S1²+S2²+S3²)/S0: 0 for fully unpolarized
// light, 1 for fully polarized. Zero-intensity beams report 0.
func (s Stokes) DegreeOfPolarization() float64 {
	if s.S0 == 0 {
		return 0
	}
	return math.Sqrt(s.S1*s.S1+s.S2*s.S2+s.S3*s.S3) / s.S0
}

// Poincare returns the normalized Poincaré-sphere coordinates
// (S1/S0, S2/S0, S3/S0). Zero-intensity beams map to the origin.
func (s Stokes) Poincare() (x, y, z float64) {
	if s.S0 == 0 {
		return 0, 0, 0
	}
	return s.S1 / s.S0, s.S2 / s.S0, s.S3 / s.S0
}

// EllipseHandedness classifies the rotation sense of the polarization
// ellipse.
type EllipseHandedness string

const (
	HandednessLinear EllipseHandedness = "linear"
	HandednessRight  EllipseHandedness = "right"
	HandednessLeft   EllipseHandedness = "left"
)

// Ellipse describes the polarization ellipse of the polarized part of a
// beam: semi-axes, orientation ψ and ellipticity χ in degrees, and
// handedness.
type Ellipse struct {
	SemiMajor   float64
	SemiMinor   float64
	PsiDeg      float64
	ChiDeg      float64
	Handedness  EllipseHandedness
	Determinate bool // false for unpolarized light, where the ellipse is undefined
}

// EllipseParameters derives the polarization ellipse. Orientation is
// ψ = ½·atan2(S2, S1); ellipticity is χ = ½·asin(S3/(DOP·S0)).
func (s Stokes) EllipseParameters() Ellipse {
	dop := s.DegreeOfPolarization()
	if s.S0 == 0 || dop == 0 {
		return Ellipse{}
	}

	psi := 0.5 * math.Atan2(s.S2, s.S1)

	sin2chi := s.S3 / (dop * s.S0)
	sin2chi = math.Max(-1, math.Min(1, sin2chi))
	chi := 0.5 * math.Asin(sin2chi)

	a := math.Cos(chi)
	b := math.Abs(math.Sin(chi))

	hand := HandednessLinear
	switch {
	case s.S3 > 1e-12:
		hand = HandednessRight
	case s.S3 < -1e-12:
		hand = HandednessLeft
	}

	return Ellipse{
		SemiMajor:   a,
		SemiMinor:   b,
		PsiDeg:      psi * 180 / math.Pi,
		ChiDeg:      chi * 180 / math.Pi,
		Handedness:  hand,
		Determinate: true,
	}
}

// Decompose splits a beam into its fully polarized and fully unpolarized
// parts: S = S_pol + S_unpol with S_pol carrying DOP·S0 intensity.
func (s Stokes) Decompose() (polarized, unpolarized Stokes) {
	dop := s.DegreeOfPolarization()
	polarized = Stokes{S0: dop * s.S0, S1: s.S1, S2: s.S2, S3: s.S3}
	unpolarized = Stokes{S0: (1 - dop) * s.S0}
	return polarized, unpolarized
}

// Add returns the incoherent superposition of two beams.
func (s Stokes) Add(other Stokes) Stokes {
	return Stokes{
		S0: s.S0 + other.S0,
		S1: s.S1 + other.S1,
		S2: s.S2 + other.S2,
		S3: s.S3 + other.S3,
	}
}

// Scale returns the beam attenuated or amplified by a scalar factor.
func (s Stokes) Scale(k float64) Stokes {
	return Stokes{S0: k * s.S0, S1: k * s.S1, S2: k * s.S2, S3: k * s.S3}
}

// String formats the vector for logs and the demo info panel.
func (s Stokes) String() string {
	return fmt.Sprintf("Stokes(S0=%.3f, S1=%.3f, S2=%.3f, S3=%.3f)", s.S0, s.S1, s.S2, s.S3)
}
