package sgp4

import (
	"math"

	"github.com/soniakeys/unit"
)

// Resonance classifies a deep-space orbit by its commensurability with the
// Earth's rotation.
type Resonance int

const (
	ResonanceNone        Resonance = iota
	SynchronousResonance           // ~24 hour period
	HalfDayResonance               // ~12 hour period with e >= 0.5
)

func (r Resonance) String() string {
	switch r {
	case SynchronousResonance:
		return "synchronous"
	case HalfDayResonance:
		return "half-day"
	default:
		return "none"
	}
}

// classifyResonance decides the resonance shape from the recovered mean
// motion (rad/min) and the eccentricity.
func classifyResonance(n, ecc float64) Resonance {
	switch {
	case n > 0.0034906585 && n < 0.0052359877:
		return SynchronousResonance
	case n >= 8.26e-3 && n <= 9.24e-3 && ecc >= 0.5:
		return HalfDayResonance
	default:
		return ResonanceNone
	}
}

// perturber describes the geometry of the Sun or the Moon relative to the
// orbit plane at epoch.
type perturber struct {
	zcosg, zsing float64
	zcosi, zsini float64
	zcosh, zsinh float64
	cc, zn, ze   float64
}

// lunisolarTerms are the secular rates and periodic amplitudes caused by a
// single perturbing body.
type lunisolarTerms struct {
	se, si, sl, sgh, sh float64

	e2, e3        float64
	i2, i3        float64
	l2, l3, l4    float64
	gh2, gh3, gh4 float64
	h2, h3        float64
}

// deepSpaceConstants are computed once per element set on the deep-space
// path.
type deepSpaceConstants struct {
	gsto       float64 // Greenwich sidereal time at epoch
	zmos, zmol float64 // solar and lunar mean anomalies at epoch

	// Summed secular rates.
	sse, ssi, ssl, ssg, ssh float64

	sun, moon lunisolarTerms

	resonance Resonance
	// Synchronous amplitudes.
	del1, del2, del3 float64
	// Half-day amplitudes.
	d2201, d2211, d3210, d3222, d4410, d4422, d5220, d5232, d5421, d5433 float64

	xlamo float64 // mean longitude phase at epoch
	xfact float64
	seed  IntegratorState
}

// orbitGeometry carries the element trigonometry shared by both passes of
// the lunisolar derivation.
type orbitGeometry struct {
	ecc, eosq, betao, betao2 float64
	sinio, cosio             float64
	sing, cosg               float64
	xnoi                     float64
}

func newDeepSpaceConstants(el MeanElements, rec RecoveredElements, c *commonConstants, epoch Epoch) *deepSpaceConstants {
	ds := &deepSpaceConstants{gsto: epoch.GreenwichSiderealTime().Rad()}

	ecc := el.Eccentricity
	eosq := ecc * ecc
	betao2 := 1.0 - eosq
	geo := orbitGeometry{
		ecc:    ecc,
		eosq:   eosq,
		betao:  math.Sqrt(betao2),
		betao2: betao2,
		sinio:  c.sinio,
		cosio:  c.cosio,
		xnoi:   1.0 / rec.MeanMotion,
	}
	geo.sing, geo.cosg = el.ArgPerigee.Sincos()
	sinq, cosq := el.RAAN.Sincos()

	// The ephemeris polynomials are referenced to 1900 Jan 0.5.
	jday := epoch.J2000Days() + daysJ1900ToJ2000

	xnodce := unit.Angle(4.5236020 - 9.2422029e-4*jday).Mod1().Rad()
	stem, ctem := math.Sincos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1.0 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1.0 - zsinhl*zsinhl)
	cl := 4.7199672 + 0.22997150*jday
	gam := 5.8351514 + 0.0019443680*jday
	ds.zmol = unit.Angle(cl - gam).Mod1().Rad()
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = gam + math.Atan2(zx, zy) - xnodce
	zsingl, zcosgl := math.Sincos(zx)
	ds.zmos = unit.Angle(6.2565837 + 0.017201977*jday).Mod1().Rad()

	sun := perturber{
		zcosg: zcosgs, zsing: zsings,
		zcosi: zcosis, zsini: zsinis,
		zcosh: cosq, zsinh: sinq,
		cc: c1ss, zn: zns, ze: zes,
	}
	moon := perturber{
		zcosg: zcosgl, zsing: zsingl,
		zcosi: zcosil, zsini: zsinil,
		zcosh: zcoshl*cosq + zsinhl*sinq,
		zsinh: sinq*zcoshl - cosq*zsinhl,
		cc:    c1l, zn: znl, ze: zel,
	}

	nodeDefined := el.Inclination.Rad() >= 5.2359877e-2 && el.Inclination.Rad() <= math.Pi-5.2359877e-2
	ds.sun = geo.lunisolar(sun, nodeDefined)
	ds.moon = geo.lunisolar(moon, nodeDefined)

	ds.sse = ds.sun.se + ds.moon.se
	ds.ssi = ds.sun.si + ds.moon.si
	ds.ssl = ds.sun.sl + ds.moon.sl
	ds.ssh = ds.sun.sh + ds.moon.sh
	ds.ssg = ds.sun.sgh - c.cosio*ds.sun.sh + ds.moon.sgh - c.cosio*ds.moon.sh

	ds.resonance = classifyResonance(rec.MeanMotion, ecc)
	if ds.resonance == ResonanceNone {
		return ds
	}

	xnodp := rec.MeanMotion
	aqnv := 1.0 / rec.SemiMajorAxis
	var bfact float64
	if ds.resonance == SynchronousResonance {
		g200 := 1.0 + eosq*(-2.5+0.8125*eosq)
		g310 := 1.0 + 2.0*eosq
		g300 := 1.0 + eosq*(-6.0+6.60937*eosq)
		f220 := 0.75 * (1.0 + c.cosio) * (1.0 + c.cosio)
		f311 := 0.9375*c.sinio*c.sinio*(1.0+3.0*c.cosio) - 0.75*(1.0+c.cosio)
		f330 := 1.0 + c.cosio
		f330 = 1.875 * f330 * f330 * f330
		del1 := 3.0 * xnodp * xnodp * aqnv * aqnv
		ds.del2 = 2.0 * del1 * f220 * g200 * q22
		ds.del3 = 3.0 * del1 * f330 * g300 * q33 * aqnv
		ds.del1 = del1 * f311 * g310 * q31 * aqnv

		ds.xlamo = (el.MeanAnomaly + el.RAAN + el.ArgPerigee - unit.Angle(ds.gsto)).Mod1().Rad()
		xpidot := c.omgdot + c.xnodot
		bfact = c.xmdot + xpidot - thdt + ds.ssl + ds.ssg + ds.ssh
	} else {
		ds.initHalfDay(geo, xnodp, aqnv)
		ds.xlamo = (el.MeanAnomaly + 2*el.RAAN - 2*unit.Angle(ds.gsto)).Mod1().Rad()
		bfact = c.xmdot + 2.0*c.xnodot - 2.0*thdt + ds.ssl + 2.0*ds.ssh
	}

	ds.xfact = bfact - xnodp
	ds.seed = IntegratorState{Atime: 0, Xni: xnodp, Xli: ds.xlamo}
	return ds
}

// lunisolar runs the closed-form perturbation derivation for one body.
func (g orbitGeometry) lunisolar(b perturber, nodeDefined bool) lunisolarTerms {
	a1 := b.zcosg*b.zcosh + b.zsing*b.zcosi*b.zsinh
	a3 := -b.zsing*b.zcosh + b.zcosg*b.zcosi*b.zsinh
	a7 := -b.zcosg*b.zsinh + b.zsing*b.zcosi*b.zcosh
	a8 := b.zsing * b.zsini
	a9 := b.zsing*b.zsinh + b.zcosg*b.zcosi*b.zcosh
	a10 := b.zcosg * b.zsini
	a2 := g.cosio*a7 + g.sinio*a8
	a4 := g.cosio*a9 + g.sinio*a10
	a5 := -g.sinio*a7 + g.cosio*a8
	a6 := -g.sinio*a9 + g.cosio*a10

	x1 := a1*g.cosg + a2*g.sing
	x2 := a3*g.cosg + a4*g.sing
	x3 := -a1*g.sing + a2*g.cosg
	x4 := -a3*g.sing + a4*g.cosg
	x5 := a5 * g.sing
	x6 := a6 * g.sing
	x7 := a5 * g.cosg
	x8 := a6 * g.cosg

	eosq := g.eosq
	z31 := 12.0*x1*x1 - 3.0*x3*x3
	z32 := 24.0*x1*x2 - 6.0*x3*x4
	z33 := 12.0*x2*x2 - 3.0*x4*x4
	z1 := 3.0*(a1*a1+a2*a2) + z31*eosq
	z2 := 6.0*(a1*a3+a2*a4) + z32*eosq
	z3 := 3.0*(a3*a3+a4*a4) + z33*eosq
	z11 := -6.0*a1*a5 + eosq*(-24.0*x1*x7-6.0*x3*x5)
	z12 := -6.0*(a1*a6+a3*a5) + eosq*(-24.0*(x2*x7+x1*x8)-6.0*(x3*x6+x4*x5))
	z13 := -6.0*a3*a6 + eosq*(-24.0*x2*x8-6.0*x4*x6)
	z21 := 6.0*a2*a5 + eosq*(24.0*x1*x5-6.0*x3*x7)
	z22 := 6.0*(a4*a5+a2*a6) + eosq*(24.0*(x2*x5+x1*x6)-6.0*(x4*x7+x3*x8))
	z23 := 6.0*a4*a6 + eosq*(24.0*x2*x6-6.0*x4*x8)
	z1 = z1 + z1 + g.betao2*z31
	z2 = z2 + z2 + g.betao2*z32
	z3 = z3 + z3 + g.betao2*z33

	s3 := b.cc * g.xnoi
	s2 := -0.5 * s3 / g.betao
	s4 := s3 * g.betao
	s1 := -15.0 * g.ecc * s4
	s5 := x1*x3 + x2*x4
	s6 := x2*x3 + x1*x4
	s7 := x2*x4 - x1*x3

	var t lunisolarTerms
	t.se = s1 * b.zn * s5
	t.si = s2 * b.zn * (z11 + z13)
	t.sl = -b.zn * s3 * (z1 + z3 - 14.0 - 6.0*eosq)
	t.sgh = s4 * b.zn * (z31 + z33 - 6.0)
	if nodeDefined {
		t.sh = -b.zn * s2 * (z21 + z23) / g.sinio
	}

	t.e2 = 2.0 * s1 * s6
	t.e3 = 2.0 * s1 * s7
	t.i2 = 2.0 * s2 * z12
	t.i3 = 2.0 * s2 * (z13 - z11)
	t.l2 = -2.0 * s3 * z2
	t.l3 = -2.0 * s3 * (z3 - z1)
	t.l4 = -2.0 * s3 * (-21.0 - 9.0*eosq) * b.ze
	t.gh2 = 2.0 * s4 * z32
	t.gh3 = 2.0 * s4 * (z33 - z31)
	t.gh4 = -18.0 * s4 * b.ze
	t.h2 = -2.0 * s2 * z22
	t.h3 = -2.0 * s2 * (z23 - z21)
	return t
}
