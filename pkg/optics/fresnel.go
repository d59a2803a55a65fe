package optics

import "math"

// FresnelCoefficients holds amplitude and intensity coefficients for
// reflection and refraction at a dielectric interface, for the s
// (perpendicular) and p (parallel) polarizations.
type FresnelCoefficients struct {
	Rs, Rp float64 // amplitude reflection
	Ts, Tp float64 // amplitude transmission

	ReflectanceS, ReflectanceP     float64
	TransmittanceS, TransmittanceP float64

	RefractionDeg           float64
	TotalInternalReflection bool
}

// SnellsLaw returns the refraction angle (degrees) for an incidence angle
// theta1 (degrees) at an n1 -> n2 interface. The second return is false
// under total internal reflection.
func SnellsLaw(theta1Deg, n1, n2 float64) (float64, bool) {
	sinTheta2 := (n1 / n2) * math.Sin(theta1Deg*math.Pi/180)
	if sinTheta2 > 1 {
		return 0, false
	}
	return math.Asin(sinTheta2) * 180 / math.Pi, true
}

// Fresnel computes the reflection and transmission coefficients at an
// n1 -> n2 interface for incidence angle theta1 (degrees). Under total
// internal reflection all light reflects. Energy conservation
// (R + T = 1 per polarization) holds to floating-point precision.
func Fresnel(theta1Deg, n1, n2 float64) FresnelCoefficients {
	theta1 := theta1Deg * math.Pi / 180
	cos1 := math.Cos(theta1)
	sin1 := math.Sin(theta1)

	sin2 := (n1 / n2) * sin1
	if sin2 > 1 {
		return FresnelCoefficients{
			Rs: 1, Rp: 1,
			ReflectanceS: 1, ReflectanceP: 1,
			RefractionDeg:           90,
			TotalInternalReflection: true,
		}
	}

	cos2 := math.Sqrt(1 - sin2*sin2)

	rs := (n1*cos1 - n2*cos2) / (n1*cos1 + n2*cos2)
	ts := (2 * n1 * cos1) / (n1*cos1 + n2*cos2)
	rp := (n2*cos1 - n1*cos2) / (n2*cos1 + n1*cos2)
	tp := (2 * n1 * cos1) / (n2*cos1 + n1*cos2)

	angleFactor := (n2 * cos2) / (n1 * cos1)

	return FresnelCoefficients{
		Rs: rs, Rp: rp, Ts: ts, Tp: tp,
		ReflectanceS:   rs * rs,
		ReflectanceP:   rp * rp,
		TransmittanceS: angleFactor * ts * ts,
		TransmittanceP: angleFactor * tp * tp,
		RefractionDeg:  math.Asin(sin2) * 180 / math.Pi,
	}
}

// BrewsterAngle returns the incidence angle (degrees) at which the p
// reflection vanishes: arctan(n2/n1).
func BrewsterAngle(n1, n2 float64) float64 {
	return math.Atan(n2/n1) * 180 / math.Pi
}

// CriticalAngle returns the total-internal-reflection threshold (degrees).
// It exists only when going from the denser medium (n1 > n2); the second
// return is false otherwise.
func CriticalAngle(n1, n2 float64) (float64, bool) {
	if n1 <= n2 {
		return 0, false
	}
	return math.Asin(n2/n1) * 180 / math.Pi, true
}
