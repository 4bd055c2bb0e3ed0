package sgp4

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// MeanElements is a set of SGP4 mean orbital elements at an epoch.
// Angles are radians, mean motion is in radians per minute and BStar is in
// inverse Earth radii.
type MeanElements struct {
	Epoch        Epoch
	Eccentricity float64
	Inclination  unit.Angle
	RAAN         unit.Angle // Right ascension of the ascending node
	ArgPerigee   unit.Angle
	MeanAnomaly  unit.Angle
	MeanMotion   float64
	BStar        float64
}

// NewMeanElements builds and validates a set of mean elements.
func NewMeanElements(epoch Epoch, ecc float64, incl, raan, argp, m unit.Angle, n, bstar float64) (MeanElements, error) {
	el := MeanElements{
		Epoch:        epoch,
		Eccentricity: ecc,
		Inclination:  incl,
		RAAN:         raan,
		ArgPerigee:   argp,
		MeanAnomaly:  m,
		MeanMotion:   n,
		BStar:        bstar,
	}
	if err := el.Validate(); err != nil {
		return MeanElements{}, err
	}
	return el, nil
}

// MeanMotionFromRevPerDay converts revolutions per day to radians per minute.
func MeanMotionFromRevPerDay(revs float64) float64 {
	return revs * twoPi / minutesPerDay
}

// Validate checks the ranges the theory accepts.
func (el MeanElements) Validate() error {
	if el.Eccentricity < 0.0 || el.Eccentricity > 0.999 {
		return newError(ParameterOutOfRange, 0, el.Eccentricity, "eccentricity outside [0, 0.999]")
	}
	if el.Inclination < 0.0 || el.Inclination.Rad() > math.Pi {
		return newError(ParameterOutOfRange, 0, el.Inclination.Rad(), "inclination outside [0, pi]")
	}
	if !(el.MeanMotion > 0.0) {
		return newError(ParameterOutOfRange, 0, el.MeanMotion, "mean motion must be positive")
	}
	return nil
}

func (el MeanElements) String() string {
	return fmt.Sprintf("epoch=%s e=%.7f i=%.4f° raan=%.4f° argp=%.4f° M=%.4f° n=%.8f rad/min B*=%.4e",
		el.Epoch, el.Eccentricity, el.Inclination.Deg(), el.RAAN.Deg(), el.ArgPerigee.Deg(),
		el.MeanAnomaly.Deg(), el.MeanMotion, el.BStar)
}

// RecoveredElements holds the Brouwer mean motion and semi-major axis
// recovered from the catalog (Kozai) mean motion.
type RecoveredElements struct {
	SemiMajorAxis   float64 // Earth radii
	MeanMotion      float64 // rad/min
	PerigeeAltitude float64 // km above the equatorial radius
	Period          float64 // minutes
}

// Recover removes the J2 bias built into the catalog mean motion.
func Recover(el MeanElements) RecoveredElements {
	a1 := math.Pow(xke/el.MeanMotion, twoThirds)
	cosio := el.Inclination.Cos()
	theta2 := cosio * cosio
	x3thm1 := 3.0*theta2 - 1.0
	eosq := el.Eccentricity * el.Eccentricity
	betao2 := 1.0 - eosq
	betao := math.Sqrt(betao2)

	temp := (1.5 * ck2) * x3thm1 / (betao * betao2)
	del1 := temp / (a1 * a1)
	a0 := a1 * (1.0 - del1*(1.0/3.0+del1*(1.0+del1*134.0/81.0)))
	del0 := temp / (a0 * a0)

	rec := RecoveredElements{
		MeanMotion:    el.MeanMotion / (1.0 + del0),
		SemiMajorAxis: a0 / (1.0 - del0),
	}
	rec.PerigeeAltitude = (rec.SemiMajorAxis*(1.0-el.Eccentricity) - ae) * xkmper
	rec.Period = twoPi / rec.MeanMotion
	return rec
}
