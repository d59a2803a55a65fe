package optics

import "math"

// RayleighIntensity returns the relative Rayleigh scattering intensity for
// the given wavelength (nm) and scattering angle (degrees), normalized to
// 450 nm: (450/λ)⁴·(1 + cos²θ). This is why the sky is blue and why skylight
// at 90° from the sun is strongly polarized.
func RayleighIntensity(wavelengthNM, thetaDeg float64) float64 {
	theta := thetaDeg * math.Pi / 180
	lambdaFactor := math.Pow(450/wavelengthNM, 4)
	return lambdaFactor * (1 + math.Cos(theta)*math.Cos(theta))
}

// RayleighPhase returns the Rayleigh phase function (1 + cos²θ) for a
// scattering angle in radians.
func RayleighPhase(theta float64) float64 {
	c := math.Cos(theta)
	return 1 + c*c
}

// MieSizeParameter returns x = 2πr/λ for a particle radius and wavelength
// in the same unit.
func MieSizeParameter(radius, wavelength float64) float64 {
	if wavelength == 0 {
		return 0
	}
	return 2 * math.Pi * radius / wavelength
}

// MiePhaseApprox approximates the Mie scattering phase function with a
// Henyey-Greenstein lobe whose asymmetry parameter grows with the size
// parameter x, plus a ripple term for intermediate sizes. theta is the
// scattering angle in radians. Full Mie series evaluation is deliberately
// out of scope; the demo only needs the qualitative forward-scattering
// behavior.
func MiePhaseApprox(theta, x float64) float64 {
	g := 1 - 2/(x+2)
	c := math.Cos(theta)

	num := 1 - g*g
	den := math.Pow(1+g*g-2*g*c, 1.5)
	p := num / den

	if x > 1 && x < 50 {
		p *= 1 + 0.3*math.Cos(x*theta)*math.Exp(-theta/math.Pi)
	}
	return p
}
