package sgp4

import (
	"math"

	"github.com/soniakeys/unit"
)

// meanState is the set of mean elements the deep-space corrections update
// in place during one propagation.
type meanState struct {
	xll    float64 // mean anomaly
	omgasm float64 // argument of perigee
	xnodes float64 // right ascension of the ascending node
	em     float64 // eccentricity
	xinc   float64 // inclination
	xn     float64 // mean motion
}

// bodyPhase returns the periodic series factors for a body with mean
// anomaly zm and eccentricity ze.
func bodyPhase(zm, ze float64) (f2, f3, sinzf float64) {
	zf := zm + 2.0*ze*math.Sin(zm)
	sinzf, coszf := math.Sincos(zf)
	f2 = 0.5*sinzf*sinzf - 0.25
	f3 = -0.5 * sinzf * coszf
	return f2, f3, sinzf
}

// periodics applies the solar and lunar periodic corrections at tsince.
func (ds *deepSpaceConstants) periodics(tsince float64, v *meanState) {
	f2, f3, sinzf := bodyPhase(ds.zmos+zns*tsince, zes)
	sun := &ds.sun
	ses := sun.e2*f2 + sun.e3*f3
	sis := sun.i2*f2 + sun.i3*f3
	sls := sun.l2*f2 + sun.l3*f3 + sun.l4*sinzf
	sghs := sun.gh2*f2 + sun.gh3*f3 + sun.gh4*sinzf
	shs := sun.h2*f2 + sun.h3*f3

	f2, f3, sinzf = bodyPhase(ds.zmol+znl*tsince, zel)
	moon := &ds.moon
	sel := moon.e2*f2 + moon.e3*f3
	sil := moon.i2*f2 + moon.i3*f3
	sll := moon.l2*f2 + moon.l3*f3 + moon.l4*sinzf
	sghl := moon.gh2*f2 + moon.gh3*f3 + moon.gh4*sinzf
	shl := moon.h2*f2 + moon.h3*f3

	pe := ses + sel
	pinc := sis + sil
	pl := sls + sll
	pgh := sghs + sghl
	ph := shs + shl

	v.xinc += pinc
	v.em += pe

	sinis, cosis := math.Sincos(v.xinc)
	if v.xinc >= 0.2 {
		v.omgasm += pgh - cosis*ph/sinis
		v.xnodes += ph / sinis
		v.xll += pl
		return
	}

	// Low inclination: apply the node corrections through the node vector
	// to avoid dividing by sin(i).
	sinok, cosok := math.Sincos(v.xnodes)
	alfdp := sinis*sinok + ph*cosok + pinc*cosis*sinok
	betdp := sinis*cosok - ph*sinok + pinc*cosis*cosok
	xnodes := unit.Angle(v.xnodes).Mod1().Rad()
	xls := v.xll + v.omgasm + cosis*xnodes
	dls := pl + pgh - pinc*xnodes*sinis
	xls += dls
	old := xnodes
	xnodes = math.Atan2(alfdp, betdp)
	if math.Abs(old-xnodes) > math.Pi {
		if xnodes < old {
			xnodes += twoPi
		} else {
			xnodes -= twoPi
		}
	}
	v.xnodes = xnodes
	v.xll += pl
	v.omgasm = xls - v.xll - cosis*xnodes
}
