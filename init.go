package sgp4

import "math"

// Model is the perturbation theory a propagator runs.
type Model int

const (
	NearEarth Model = iota // SGP4, period below 225 minutes
	DeepSpace              // SDP4, period of 225 minutes or more
)

func (m Model) String() string {
	if m == DeepSpace {
		return "deep-space"
	}
	return "near-earth"
}

func selectModel(period float64) Model {
	if period >= deepSpacePeriod {
		return DeepSpace
	}
	return NearEarth
}

// isSimpleDrag reports whether the perigee is low enough that the quartic
// drag terms are dropped.
func isSimpleDrag(perigeeKm float64) bool {
	return perigeeKm < simpleDragPerigee
}

// densityParameters returns the atmospheric density parameter s4 (Earth
// radii) and qoms24 for a perigee altitude in km.
func densityParameters(perigeeKm float64) (s4, qoms24 float64) {
	if perigeeKm >= densityBandHigh {
		return s, qoms2t
	}
	s4km := perigeeKm - 78.0
	if perigeeKm < densityBandLow {
		s4km = 20.0
	}
	qoms24 = math.Pow((120.0-s4km)*ae/xkmper, 4.0)
	return s4km/xkmper + ae, qoms24
}

// shapeFactors are the inclination dependent coefficients of the short and
// long period terms.
type shapeFactors struct {
	sinio, cosio           float64
	x3thm1, x1mth2, x7thm1 float64
	xlcof, aycof           float64
}

func newShapeFactors(incl float64) shapeFactors {
	var f shapeFactors
	f.sinio, f.cosio = math.Sincos(incl)
	theta2 := f.cosio * f.cosio
	f.x3thm1 = 3.0*theta2 - 1.0
	f.x1mth2 = 1.0 - theta2
	f.x7thm1 = 7.0*theta2 - 1.0

	// Near 180° the denominator vanishes.
	den := 1.0 + f.cosio
	if math.Abs(den) <= polarSingularGuard {
		den = polarSingularGuard
	}
	f.xlcof = 0.125 * a3ovk2 * f.sinio * (3.0 + 5.0*f.cosio) / den
	f.aycof = 0.25 * a3ovk2 * f.sinio
	return f
}

// commonConstants are shared by both theories.
type commonConstants struct {
	shapeFactors
	eta    float64
	c1, c4 float64
	t2cof  float64
	xnodcf float64
	xmdot  float64 // mean anomaly rate
	omgdot float64 // argument of perigee rate
	xnodot float64 // node rate
}

// nearSpaceConstants are the extra drag terms of the near-earth theory.
type nearSpaceConstants struct {
	c5, omgcof, xmcof   float64
	delmo, sinmo        float64
	d2, d3, d4          float64
	t3cof, t4cof, t5cof float64
}

// initialize computes the per element set coefficients and selects the
// theory. It does not touch the deep-space terms.
func (p *Propagator) initialize() error {
	el := p.elements
	if err := el.Validate(); err != nil {
		return err
	}
	rec := p.recovered
	ecc := el.Eccentricity
	aodp := rec.SemiMajorAxis
	xnodp := rec.MeanMotion

	c := &p.common
	c.shapeFactors = newShapeFactors(el.Inclination.Rad())

	theta2 := c.cosio * c.cosio
	eosq := ecc * ecc
	betao2 := 1.0 - eosq
	betao := math.Sqrt(betao2)

	p.model = selectModel(rec.Period)
	p.simpleDrag = p.model == NearEarth && isSimpleDrag(rec.PerigeeAltitude)

	s4, qoms24 := densityParameters(rec.PerigeeAltitude)

	pinvsq := 1.0 / (aodp * aodp * betao2 * betao2)
	tsi := 1.0 / (aodp - s4)
	c.eta = aodp * ecc * tsi
	etasq := c.eta * c.eta
	eeta := ecc * c.eta
	psisq := math.Abs(1.0 - etasq)
	coef := qoms24 * math.Pow(tsi, 4.0)
	coef1 := coef / math.Pow(psisq, 3.5)

	c2 := coef1 * xnodp * (aodp*(1.0+1.5*etasq+eeta*(4.0+etasq)) +
		0.75*ck2*tsi/psisq*c.x3thm1*(8.0+3.0*etasq*(8.0+etasq)))
	c.c1 = el.BStar * c2
	c.c4 = 2.0 * xnodp * coef1 * aodp * betao2 *
		(c.eta*(2.0+0.5*etasq) + ecc*(0.5+2.0*etasq) -
			2.0*ck2*tsi/(aodp*psisq)*
				(-3.0*c.x3thm1*(1.0-2.0*eeta+etasq*(1.5-0.5*eeta))+
					0.75*c.x1mth2*(2.0*etasq-eeta*(1.0+etasq))*math.Cos(2.0*el.ArgPerigee.Rad())))

	theta4 := theta2 * theta2
	temp1 := 3.0 * ck2 * pinvsq * xnodp
	temp2 := temp1 * ck2 * pinvsq
	temp3 := 1.25 * ck4 * pinvsq * pinvsq * xnodp

	c.xmdot = xnodp + 0.5*temp1*betao*c.x3thm1 +
		0.0625*temp2*betao*(13.0-78.0*theta2+137.0*theta4)

	x1m5th := 1.0 - 5.0*theta2
	c.omgdot = -0.5*temp1*x1m5th +
		0.0625*temp2*(7.0-114.0*theta2+395.0*theta4) +
		temp3*(3.0-36.0*theta2+49.0*theta4)

	xhdot1 := -temp1 * c.cosio
	c.xnodot = xhdot1 + (0.5*temp2*(4.0-19.0*theta2)+
		2.0*temp3*(3.0-7.0*theta2))*c.cosio
	c.xnodcf = 3.5 * betao2 * xhdot1 * c.c1
	c.t2cof = 1.5 * c.c1

	if p.model == DeepSpace {
		p.deep = newDeepSpaceConstants(el, rec, c, el.Epoch)
		return nil
	}

	n := &p.near
	var c3 float64
	if ecc > 1.0e-4 {
		c3 = coef * tsi * a3ovk2 * xnodp * ae * c.sinio / ecc
	}
	n.c5 = 2.0 * coef1 * aodp * betao2 * (1.0 + 2.75*(etasq+eeta) + eeta*etasq)
	n.omgcof = el.BStar * c3 * el.ArgPerigee.Cos()
	if ecc > 1.0e-4 {
		n.xmcof = -twoThirds * coef * el.BStar * ae / eeta
	}
	n.delmo = math.Pow(1.0+c.eta*el.MeanAnomaly.Cos(), 3.0)
	n.sinmo = el.MeanAnomaly.Sin()

	if !p.simpleDrag {
		c1sq := c.c1 * c.c1
		n.d2 = 4.0 * aodp * tsi * c1sq
		temp := n.d2 * tsi * c.c1 / 3.0
		n.d3 = (17.0*aodp + s4) * temp
		n.d4 = 0.5 * temp * aodp * tsi * (221.0*aodp + 31.0*s4) * c.c1
		n.t3cof = n.d2 + 2.0*c1sq
		n.t4cof = 0.25 * (3.0*n.d3 + c.c1*(12.0*n.d2+10.0*c1sq))
		n.t5cof = 0.2 * (3.0*n.d4 + 12.0*c.c1*n.d3 + 6.0*n.d2*n.d2 +
			15.0*c1sq*(2.0*n.d2+c1sq))
	}
	return nil
}
