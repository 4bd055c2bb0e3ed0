package sgp4

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CartesianState is an inertial (TEME) position and velocity.
type CartesianState struct {
	Epoch    Epoch
	Position r3.Vec // meters
	Velocity r3.Vec // meters per second
}

// Radius returns the distance from the Earth's center in meters.
func (cs CartesianState) Radius() float64 { return r3.Norm(cs.Position) }

// Speed returns the inertial speed in meters per second.
func (cs CartesianState) Speed() float64 { return r3.Norm(cs.Velocity) }

// Altitude returns the height above the equatorial radius in meters.
func (cs CartesianState) Altitude() float64 { return cs.Radius() - xkmper*1000.0 }

func (cs CartesianState) String() string {
	return fmt.Sprintf("%s r=(%.3f, %.3f, %.3f) m v=(%.6f, %.6f, %.6f) m/s", cs.Epoch,
		cs.Position.X, cs.Position.Y, cs.Position.Z, cs.Velocity.X, cs.Velocity.Y, cs.Velocity.Z)
}

// perturbedOrbit is the orbit after secular, drag and long period updates,
// ready for the Kepler solve and the short period corrections.
type perturbedOrbit struct {
	e     float64 // eccentricity
	a     float64 // semi-major axis (earth radii)
	omega float64 // argument of perigee
	xl    float64 // mean longitude
	xnode float64 // right ascension of the ascending node
	xinc  float64 // inclination
	shape shapeFactors
}

// state solves the orbit and rotates the short period corrected position and
// velocity into the inertial frame.
func (o perturbedOrbit) state(epoch Epoch, tsince float64) (CartesianState, error) {
	sf := &o.shape
	e, a := o.e, o.a
	beta2 := 1.0 - e*e
	xn := xke / math.Pow(a, 1.5)

	// Long period periodics
	axn := e * math.Cos(o.omega)
	temp11 := 1.0 / (a * beta2)
	xll := temp11 * sf.xlcof * axn
	aynl := temp11 * sf.aycof
	xlt := o.xl + xll
	ayn := e*math.Sin(o.omega) + aynl

	capu := math.Mod(xlt-o.xnode, twoPi)
	k, err := solveKepler(tsince, capu, axn, ayn)
	if err != nil {
		return CartesianState{}, err
	}
	elsq := axn*axn + ayn*ayn

	// Short period preliminary quantities
	temp21 := 1.0 - elsq
	pl := a * temp21
	if pl < 0.0 {
		return CartesianState{}, newError(ShortPeriodPredictionError, tsince, pl, "semi-latus rectum negative")
	}
	r := a * (1.0 - k.ecose)
	temp31 := 1.0 / r
	rdot := xke * math.Sqrt(a) * k.esine * temp31
	rfdot := xke * math.Sqrt(pl) * temp31
	temp32 := a * temp31
	betal := math.Sqrt(temp21)
	temp33 := 1.0 / (1.0 + betal)
	cosu := temp32 * (k.cosepw - axn + ayn*k.esine*temp33)
	sinu := temp32 * (k.sinepw - ayn - axn*k.esine*temp33)
	u := math.Atan2(sinu, cosu)
	sin2u := 2.0 * sinu * cosu
	cos2u := 2.0*cosu*cosu - 1.0

	// Short period perturbations
	temp41 := 1.0 / pl
	temp42 := ck2 * temp41
	temp43 := temp42 * temp41
	rk := r*(1.0-1.5*temp43*betal*sf.x3thm1) + 0.5*temp42*sf.x1mth2*cos2u
	uk := u - 0.25*temp43*sf.x7thm1*sin2u
	xnodek := o.xnode + 1.5*temp43*sf.cosio*sin2u
	xinck := o.xinc + 1.5*temp43*sf.cosio*sf.sinio*cos2u
	rdotk := rdot - xn*temp42*sf.x1mth2*sin2u
	rfdotk := rfdot + xn*temp42*(sf.x1mth2*cos2u+1.5*sf.x3thm1)

	// Orientation vectors
	sinuk, cosuk := math.Sincos(uk)
	sinik, cosik := math.Sincos(xinck)
	sinnok, cosnok := math.Sincos(xnodek)
	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	uvec := r3.Vec{X: xmx*sinuk + cosnok*cosuk, Y: xmy*sinuk + sinnok*cosuk, Z: sinik * sinuk}
	vvec := r3.Vec{X: xmx*cosuk - cosnok*sinuk, Y: xmy*cosuk - sinnok*sinuk, Z: sinik * cosuk}

	if rk < 1.0 {
		return CartesianState{}, newError(ObjectDecayed, tsince, rk, "orbital radius below the Earth's surface (earth radii)")
	}

	const kmToM = 1000.0
	return CartesianState{
		Epoch:    epoch.AddMinutes(tsince),
		Position: r3.Scale(rk*xkmper*kmToM, uvec),
		Velocity: r3.Scale(xkmper/60.0*kmToM, r3.Add(r3.Scale(rdotk, uvec), r3.Scale(rfdotk, vvec))),
	}, nil
}
