package optics

import "math"

// MalusLaw returns the intensity transmitted through an analyzer at angle
// theta (degrees) to the incident polarization: I = I0·cos²θ.
func MalusLaw(thetaDeg, i0 float64) float64 {
	c := math.Cos(thetaDeg * math.Pi / 180)
	return i0 * c * c
}

// BirefringenceSplit decomposes linearly polarized light entering a
// birefringent crystal into ordinary and extraordinary ray intensities.
// theta is the angle (degrees) between the input polarization and the optic
// axis; Io = I0·cos²θ and Ie = I0·sin²θ, so Io + Ie = I0.
func BirefringenceSplit(thetaDeg, i0 float64) (io, ie float64) {
	theta := thetaDeg * math.Pi / 180
	c := math.Cos(theta)
	s := math.Sin(theta)
	return i0 * c * c, i0 * s * s
}

// CalciteDeltaN is the birefringence Δn = |ne - no| of calcite, the crystal
// the demo ships with.
const CalciteDeltaN = 0.172

// PhaseRetardationDeg returns the o/e phase retardation Δφ = 2π·Δn·d/λ
// accumulated through a crystal, folded into [0, 360) degrees. Thickness is
// in millimetres, wavelength in nanometres.
func PhaseRetardationDeg(thicknessMM, wavelengthNM, deltaN float64) float64 {
	if wavelengthNM == 0 {
		return 0
	}
	thicknessM := thicknessMM * 1e-3
	wavelengthM := wavelengthNM * 1e-9
	phase := (2 * math.Pi / wavelengthM) * deltaN * thicknessM
	deg := math.Mod(phase*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
