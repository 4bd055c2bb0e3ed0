package sgp4

import (
	"math"

	"github.com/soniakeys/unit"
)

// cubic holds polynomial coefficients in ascending order of power.
type cubic [4]float64

func (c cubic) eval(x float64) float64 {
	return c[0] + (c[1]+(c[2]+c[3]*x)*x)*x
}

// eccBand selects a polynomial for eccentricities up to limit. When open is
// set the limit itself belongs to the next band.
type eccBand struct {
	limit float64
	open  bool
	poly  cubic
}

// eccTable is an ordered list of bands; the last band catches everything.
type eccTable []eccBand

func (t eccTable) eval(e float64) float64 {
	for _, b := range t {
		if e < b.limit || (!b.open && e == b.limit) {
			return b.poly.eval(e)
		}
	}
	return t[len(t)-1].poly.eval(e)
}

var inf = math.Inf(1)

// Eccentricity functions of the half-day resonance terms.
var (
	g211Table = eccTable{
		{0.65, false, cubic{3.616, -13.247, 16.290, 0.0}},
		{inf, false, cubic{-72.099, 331.819, -508.738, 266.724}},
	}
	g310Table = eccTable{
		{0.65, false, cubic{-19.302, 117.390, -228.419, 156.591}},
		{inf, false, cubic{-346.844, 1582.851, -2415.925, 1246.113}},
	}
	g322Table = eccTable{
		{0.65, false, cubic{-18.9068, 109.7927, -214.6334, 146.5816}},
		{inf, false, cubic{-342.585, 1554.908, -2366.899, 1215.972}},
	}
	g410Table = eccTable{
		{0.65, false, cubic{-41.122, 242.694, -471.094, 313.953}},
		{inf, false, cubic{-1052.797, 4758.686, -7193.992, 3651.957}},
	}
	g422Table = eccTable{
		{0.65, false, cubic{-146.407, 841.880, -1629.014, 1083.435}},
		{inf, false, cubic{-3581.69, 16178.11, -24462.77, 12422.52}},
	}
	g520Table = eccTable{
		{0.65, false, cubic{-532.114, 3017.977, -5740.032, 3708.276}},
		{0.715, false, cubic{1464.74, -4664.75, 3763.64, 0.0}},
		{inf, false, cubic{-5149.66, 29936.92, -54087.36, 31324.56}},
	}
	g533Table = eccTable{
		{0.7, true, cubic{-919.2277, 4988.61, -9064.77, 5542.21}},
		{inf, false, cubic{-37995.78, 161616.52, -229838.2, 109377.94}},
	}
	g521Table = eccTable{
		{0.7, true, cubic{-822.71072, 4568.6173, -8491.4146, 5337.524}},
		{inf, false, cubic{-51752.104, 218913.95, -309468.16, 146349.42}},
	}
	g532Table = eccTable{
		{0.7, true, cubic{-853.666, 4690.25, -8624.77, 5341.4}},
		{inf, false, cubic{-40023.88, 170470.89, -242699.48, 115605.82}},
	}
)

// initHalfDay computes the amplitudes of the 12 hour geopotential resonance.
func (ds *deepSpaceConstants) initHalfDay(g orbitGeometry, xnodp, aqnv float64) {
	e := g.ecc
	g201 := -0.306 - (e-0.64)*0.440
	g211 := g211Table.eval(e)
	g310 := g310Table.eval(e)
	g322 := g322Table.eval(e)
	g410 := g410Table.eval(e)
	g422 := g422Table.eval(e)
	g520 := g520Table.eval(e)
	g533 := g533Table.eval(e)
	g521 := g521Table.eval(e)
	g532 := g532Table.eval(e)

	sinio, cosio := g.sinio, g.cosio
	theta2 := cosio * cosio
	sini2 := sinio * sinio
	f220 := 0.75 * (1.0 + 2.0*cosio + theta2)
	f221 := 1.5 * sini2
	f321 := 1.875 * sinio * (1.0 - 2.0*cosio - 3.0*theta2)
	f322 := -1.875 * sinio * (1.0 + 2.0*cosio - 3.0*theta2)
	f441 := 35.0 * sini2 * f220
	f442 := 39.3750 * sini2 * sini2
	f522 := 9.84375 * sinio * (sini2*(1.0-2.0*cosio-5.0*theta2) +
		0.33333333*(-2.0+4.0*cosio+6.0*theta2))
	f523 := sinio * (4.92187512*sini2*(-2.0-4.0*cosio+10.0*theta2) +
		6.56250012*(1.0+2.0*cosio-3.0*theta2))
	f542 := 29.53125 * sinio * (2.0 - 8.0*cosio + theta2*(-12.0+8.0*cosio+10.0*theta2))
	f543 := 29.53125 * sinio * (-2.0 - 8.0*cosio + theta2*(12.0+8.0*cosio-10.0*theta2))

	temp1 := 3.0 * xnodp * xnodp * aqnv * aqnv
	temp := temp1 * root22
	ds.d2201 = temp * f220 * g201
	ds.d2211 = temp * f221 * g211

	temp1 *= aqnv
	temp = temp1 * root32
	ds.d3210 = temp * f321 * g310
	ds.d3222 = temp * f322 * g322

	temp1 *= aqnv
	temp = 2.0 * temp1 * root44
	ds.d4410 = temp * f441 * g410
	ds.d4422 = temp * f442 * g422

	temp1 *= aqnv
	temp = temp1 * root52
	ds.d5220 = temp * f522 * g520
	ds.d5232 = temp * f523 * g532

	temp = 2.0 * temp1 * root54
	ds.d5421 = temp * f542 * g521
	ds.d5433 = temp * f543 * g533
}

// IntegratorState is the continuation point of the resonance integrator:
// the mean longitude Xli and mean motion Xni reached at Atime minutes from
// epoch. Atime is always a whole multiple of the 720 minute step.
type IntegratorState struct {
	Atime float64
	Xli   float64
	Xni   float64
}

// IntegratorMode controls how a propagator reuses integrator state between
// calls.
type IntegratorMode int

const (
	// Deterministic restarts the integrator from the epoch on every call.
	Deterministic IntegratorMode = iota
	// Cached keeps the last full step inside the propagator and resumes
	// from it when the next request lies further out on the same side of
	// the epoch. A cached propagator must not be shared between goroutines.
	Cached
)

func (m IntegratorMode) String() string {
	if m == Cached {
		return "cached"
	}
	return "deterministic"
}

// needsReset applies the restart rules of the integrator for a request at
// tsince.
func (st *IntegratorState) needsReset(tsince float64) bool {
	return math.Abs(tsince) < step || tsince*st.Atime <= 0.0 || math.Abs(tsince) < math.Abs(st.Atime)
}

// rates evaluates the resonance sums at the current state.
func (ds *deepSpaceConstants) rates(st *IntegratorState, argp, omgdot float64) (xndot, xnddt, xldot float64) {
	xli := st.Xli
	if ds.resonance == SynchronousResonance {
		xndot = ds.del1*math.Sin(xli-fasx2) +
			ds.del2*math.Sin(2.0*(xli-fasx4)) +
			ds.del3*math.Sin(3.0*(xli-fasx6))
		xnddt = ds.del1*math.Cos(xli-fasx2) +
			2.0*ds.del2*math.Cos(2.0*(xli-fasx4)) +
			3.0*ds.del3*math.Cos(3.0*(xli-fasx6))
	} else {
		xomi := argp + omgdot*st.Atime
		x2omi := xomi + xomi
		x2li := xli + xli
		xndot = ds.d2201*math.Sin(x2omi+xli-g22) +
			ds.d2211*math.Sin(xli-g22) +
			ds.d3210*math.Sin(xomi+xli-g32) +
			ds.d3222*math.Sin(-xomi+xli-g32) +
			ds.d4410*math.Sin(x2omi+x2li-g44) +
			ds.d4422*math.Sin(x2li-g44) +
			ds.d5220*math.Sin(xomi+xli-g52) +
			ds.d5232*math.Sin(-xomi+xli-g52) +
			ds.d5421*math.Sin(xomi+x2li-g54) +
			ds.d5433*math.Sin(-xomi+x2li-g54)
		xnddt = ds.d2201*math.Cos(x2omi+xli-g22) +
			ds.d2211*math.Cos(xli-g22) +
			ds.d3210*math.Cos(xomi+xli-g32) +
			ds.d3222*math.Cos(-xomi+xli-g32) +
			ds.d5220*math.Cos(xomi+xli-g52) +
			ds.d5232*math.Cos(-xomi+xli-g52) +
			2.0*(ds.d4410*math.Cos(x2omi+x2li-g44)+
				ds.d4422*math.Cos(x2li-g44)+
				ds.d5421*math.Cos(xomi+x2li-g54)+
				ds.d5433*math.Cos(-xomi+x2li-g54))
	}
	xldot = st.Xni + ds.xfact
	xnddt *= xldot
	return xndot, xnddt, xldot
}

// integrate advances st in 720 minute steps towards tsince and returns the
// mean motion and mean longitude extrapolated to tsince. st is left at the
// last full step.
func (ds *deepSpaceConstants) integrate(st *IntegratorState, tsince, argp, omgdot float64) (xn, xl float64) {
	if st.needsReset(tsince) {
		*st = ds.seed
	}
	for {
		xndot, xnddt, xldot := ds.rates(st, argp, omgdot)
		ft := tsince - st.Atime
		if math.Abs(ft) < step {
			xn = st.Xni + xndot*ft + xnddt*ft*ft*0.5
			xl = st.Xli + xldot*ft + xndot*ft*ft*0.5
			return xn, xl
		}
		delt := step
		if ft < 0.0 {
			delt = -step
		}
		st.Xli += xldot*delt + xndot*step2
		st.Xni += xndot*delt + xnddt*step2
		st.Atime += delt
	}
}

// secular applies the lunisolar secular drift and, for resonant orbits, the
// resonance integrator. st may be nil when the orbit is not resonant.
func (ds *deepSpaceConstants) secular(st *IntegratorState, tsince float64, v *meanState, argp, omgdot float64) {
	v.xll += ds.ssl * tsince
	v.omgasm += ds.ssg * tsince
	v.xnodes += ds.ssh * tsince
	v.em += ds.sse * tsince
	v.xinc += ds.ssi * tsince

	if ds.resonance == ResonanceNone {
		return
	}

	xn, xl := ds.integrate(st, tsince, argp, omgdot)
	v.xn = xn
	theta := unit.Angle(ds.gsto + tsince*thdt).Mod1().Rad()
	if ds.resonance == SynchronousResonance {
		v.xll = xl + theta - v.xnodes - v.omgasm
	} else {
		v.xll = xl + 2.0*(theta-v.xnodes)
	}
}
