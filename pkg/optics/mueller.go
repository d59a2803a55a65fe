package optics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mueller is a 4x4 Mueller matrix describing how an optical element
// transforms Stokes vectors.
type Mueller struct {
	m *mat.Dense
}

// Identity returns the identity element (free-space propagation).
func Identity() Mueller {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Mueller{m: m}
}

// NewMueller builds a matrix from 16 row-major values.
func NewMueller(values [16]float64) Mueller {
	return Mueller{m: mat.NewDense(4, 4, values[:])}
}

// At returns element (i, j).
func (mm Mueller) At(i, j int) float64 {
	return mm.m.At(i, j)
}

// LinearPolarizer returns an ideal linear polarizer with its transmission
// axis at the given angle (degrees). Normalized so an unpolarized beam
// transmits half its intensity.
func LinearPolarizer(angleDeg float64) Mueller {
	theta := angleDeg * math.Pi / 180
	c := math.Cos(2 * theta)
	s := math.Sin(2 * theta)
	return NewMueller([16]float64{
		0.5, 0.5 * c, 0.5 * s, 0,
		0.5 * c, 0.5 * c * c, 0.5 * s * c, 0,
		0.5 * s, 0.5 * s * c, 0.5 * s * s, 0,
		0, 0, 0, 0,
	})
}

// QuarterWavePlate returns a quarter-wave plate with its fast axis at the
// given angle (degrees). Converts linear to circular polarization and back.
func QuarterWavePlate(fastAxisDeg float64) Mueller {
	return Retarder(90, fastAxisDeg)
}

// HalfWavePlate returns a half-wave plate with its fast axis at the given
// angle (degrees). Rotates linear polarization by twice the axis angle.
func HalfWavePlate(fastAxisDeg float64) Mueller {
	return Retarder(180, fastAxisDeg)
}

// Rotator returns an optical rotator (chiral medium) that rotates the plane
// of polarization by the given angle without attenuation.
func Rotator(angleDeg float64) Mueller {
	theta := angleDeg * math.Pi / 180
	c := math.Cos(2 * theta)
	s := math.Sin(2 * theta)
	return NewMueller([16]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// Retarder returns a general linear retarder with the given phase
// retardance (degrees) and fast-axis angle (degrees).
func Retarder(retardanceDeg, fastAxisDeg float64) Mueller {
	delta := retardanceDeg * math.Pi / 180
	theta := fastAxisDeg * math.Pi / 180

	cd := math.Cos(delta)
	sd := math.Sin(delta)
	c2 := math.Cos(2 * theta)
	s2 := math.Sin(2 * theta)

	return NewMueller([16]float64{
		1, 0, 0, 0,
		0, c2*c2 + s2*s2*cd, c2 * s2 * (1 - cd), -s2 * sd,
		0, c2 * s2 * (1 - cd), s2*s2 + c2*c2*cd, c2 * sd,
		0, s2 * sd, -c2 * sd, cd,
	})
}

// Depolarizer returns an ideal partial depolarizer: d = 0 leaves the beam
// untouched, d = 1 fully depolarizes it.
func Depolarizer(d float64) Mueller {
	k := 1 - d
	return NewMueller([16]float64{
		1, 0, 0, 0,
		0, k, 0, 0,
		0, 0, k, 0,
		0, 0, 0, k,
	})
}

// rotationMatrix is the Mueller-space frame rotation used to conjugate
// elements to arbitrary orientations: R(θ) · M · R(-θ).
func rotationMatrix(angleDeg float64) *mat.Dense {
	theta := angleDeg * math.Pi / 180
	c := math.Cos(2 * theta)
	s := math.Sin(2 * theta)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// Rotate returns the element reoriented by the given angle (degrees).
func (mm Mueller) Rotate(angleDeg float64) Mueller {
	r := rotationMatrix(angleDeg)
	rInv := rotationMatrix(-angleDeg)

	var tmp, out mat.Dense
	tmp.Mul(mm.m, rInv)
	out.Mul(r, &tmp)
	return Mueller{m: &out}
}

// Compose returns the element equivalent to passing through mm after other
// (matrix product mm · other, applied right to left like the light path).
func (mm Mueller) Compose(other Mueller) Mueller {
	var out mat.Dense
	out.Mul(mm.m, other.m)
	return Mueller{m: &out}
}

// Apply transforms a Stokes vector through the element.
func (mm Mueller) Apply(s Stokes) Stokes {
	in := mat.NewVecDense(4, []float64{s.S0, s.S1, s.S2, s.S3})
	var out mat.VecDense
	out.MulVec(mm.m, in)
	return Stokes{
		S0: out.AtVec(0),
		S1: out.AtVec(1),
		S2: out.AtVec(2),
		S3: out.AtVec(3),
	}
}

// Diattenuation measures how strongly transmission depends on the input
// polarization: √(M01²+M02²+M03²)/M00.
func (mm Mueller) Diattenuation() float64 {
	m00 := mm.m.At(0, 0)
	if m00 == 0 {
		return 0
	}
	d := math.Sqrt(mm.m.At(0, 1)*mm.m.At(0, 1) +
		mm.m.At(0, 2)*mm.m.At(0, 2) +
		mm.m.At(0, 3)*mm.m.At(0, 3))
	return d / m00
}

// Polarizance measures the degree of polarization the element imparts to
// unpolarized input: √(M10²+M20²+M30²)/M00.
func (mm Mueller) Polarizance() float64 {
	m00 := mm.m.At(0, 0)
	if m00 == 0 {
		return 0
	}
	p := math.Sqrt(mm.m.At(1, 0)*mm.m.At(1, 0) +
		mm.m.At(2, 0)*mm.m.At(2, 0) +
		mm.m.At(3, 0)*mm.m.At(3, 0))
	return p / m00
}

// DepolarizationIndex is 1 for non-depolarizing elements and approaches 0
// for an ideal depolarizer: √(Σmij² - m00²) / (√3·m00).
func (mm Mueller) DepolarizationIndex() float64 {
	m00 := mm.m.At(0, 0)
	if m00 == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v := mm.m.At(i, j)
			sum += v * v
		}
	}
	idx := math.Sqrt(math.Max(0, sum-m00*m00)) / (math.Sqrt(3) * m00)
	return math.Min(1, idx)
}
