package optics

// Substance is an optically active material with a specific rotation in
// degrees·mL/(g·dm) at the sodium D line.
type Substance struct {
	Key              string
	Name             string
	SpecificRotation float64
}

// Substances lists the materials the optical rotation demo offers.
// Fructose is levorotatory, hence the negative value.
var Substances = []Substance{
	{Key: "sucrose", Name: "Sucrose", SpecificRotation: 66.5},
	{Key: "fructose", Name: "Fructose", SpecificRotation: -92.4},
	{Key: "glucose", Name: "Glucose", SpecificRotation: 52.7},
	{Key: "lactose", Name: "Lactose", SpecificRotation: 52.3},
}

// SubstanceByKey returns the substance registered under key.
func SubstanceByKey(key string) (Substance, bool) {
	for _, s := range Substances {
		if s.Key == key {
			return s, true
		}
	}
	return Substance{}, false
}

// OpticalRotation returns the rotation angle α = [α]·l·c in degrees for a
// path length l (dm) and concentration c (g/mL).
func OpticalRotation(specificRotation, pathLengthDM, concentration float64) float64 {
	return specificRotation * pathLengthDM * concentration
}
