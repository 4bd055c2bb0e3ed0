package sgp4

import (
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Propagator computes inertial states from a fixed set of mean elements.
// The theory (near-earth or deep-space) is chosen once at construction.
//
// In the default Deterministic integrator mode a Propagator is never
// mutated after New returns and may be shared between goroutines. In Cached
// mode it must be confined to a single goroutine.
type Propagator struct {
	elements  MeanElements
	recovered RecoveredElements

	model      Model
	simpleDrag bool
	common     commonConstants
	near       nearSpaceConstants  // NearEarth only
	deep       *deepSpaceConstants // DeepSpace only

	mode  IntegratorMode
	cache IntegratorState

	logger  log.Logger
	metrics *Metrics
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(p *Propagator) {
		p.logger = logger
	}
}

// WithIntegratorMode selects how resonance integrator state is reused.
func WithIntegratorMode(mode IntegratorMode) Option {
	return func(p *Propagator) {
		p.mode = mode
	}
}

// WithMetrics records propagation outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(p *Propagator) {
		p.metrics = m
	}
}

// New validates the elements and computes every coefficient the chosen
// theory needs.
func New(el MeanElements, opts ...Option) (*Propagator, error) {
	p := &Propagator{
		elements: el,
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := el.Validate(); err != nil {
		return nil, err
	}
	p.recovered = Recover(el)
	if err := p.initialize(); err != nil {
		return nil, err
	}
	if p.deep != nil {
		p.cache = p.deep.seed
	}

	level.Debug(p.logger).Log(
		"msg", "propagator initialized",
		"model", p.model,
		"simple_drag", p.simpleDrag,
		"resonance", p.Resonance(),
		"period_min", p.recovered.Period,
		"perigee_km", p.recovered.PerigeeAltitude,
		"integrator", p.mode,
	)
	return p, nil
}

// Elements returns the mean elements the propagator was built from.
func (p *Propagator) Elements() MeanElements { return p.elements }

// Recovered returns the recovered mean motion and semi-major axis.
func (p *Propagator) Recovered() RecoveredElements { return p.recovered }

// Epoch returns the element epoch.
func (p *Propagator) Epoch() Epoch { return p.elements.Epoch }

// Model returns the selected theory.
func (p *Propagator) Model() Model { return p.model }

// SimpleDrag reports whether the truncated drag model is in use.
func (p *Propagator) SimpleDrag() bool { return p.simpleDrag }

// Resonance returns the resonance shape of a deep-space orbit.
func (p *Propagator) Resonance() Resonance {
	if p.deep == nil {
		return ResonanceNone
	}
	return p.deep.resonance
}

// Seed returns the integrator state at epoch.
func (p *Propagator) Seed() IntegratorState {
	if p.deep == nil {
		return IntegratorState{}
	}
	return p.deep.seed
}

// Propagate returns the state tsince minutes after the element epoch.
func (p *Propagator) Propagate(tsince float64) (CartesianState, error) {
	if p.mode == Cached {
		return p.propagate(tsince, &p.cache)
	}
	return p.PropagateWithState(tsince, nil)
}

// PropagateAt returns the state at t.
func (p *Propagator) PropagateAt(t time.Time) (CartesianState, error) {
	return p.Propagate(NewEpoch(t).Sub(p.elements.Epoch))
}

// PropagateWithState propagates using a caller owned integrator
// continuation. st is updated to the last full integration step so a
// sequence of calls moving away from the epoch avoids repeating work. A nil
// st restarts from the epoch. The result does not depend on the content of
// st.
func (p *Propagator) PropagateWithState(tsince float64, st *IntegratorState) (CartesianState, error) {
	if st == nil {
		local := p.Seed()
		st = &local
	}
	return p.propagate(tsince, st)
}

func (p *Propagator) propagate(tsince float64, st *IntegratorState) (CartesianState, error) {
	var (
		cs  CartesianState
		err error
	)
	if p.model == DeepSpace {
		cs, err = p.propagateDeepSpace(tsince, st)
	} else {
		cs, err = p.propagateNearEarth(tsince)
	}
	p.metrics.observePropagation(p.model, err)
	return cs, err
}

func (p *Propagator) propagateNearEarth(tsince float64) (CartesianState, error) {
	el, c, n := &p.elements, &p.common, &p.near

	xmdf := el.MeanAnomaly.Rad() + c.xmdot*tsince
	omgadf := el.ArgPerigee.Rad() + c.omgdot*tsince
	xnoddf := el.RAAN.Rad() + c.xnodot*tsince

	omega := omgadf
	xmp := xmdf
	tsq := tsince * tsince
	xnode := xnoddf + c.xnodcf*tsq
	tempa := 1.0 - c.c1*tsince
	tempe := el.BStar * c.c4 * tsince
	templ := c.t2cof * tsq

	if !p.simpleDrag {
		delomg := n.omgcof * tsince
		delm := n.xmcof * (math.Pow(1.0+c.eta*math.Cos(xmdf), 3.0) - n.delmo)
		temp := delomg + delm
		xmp += temp
		omega -= temp

		tcube := tsq * tsince
		tfour := tsince * tcube
		tempa = tempa - n.d2*tsq - n.d3*tcube - n.d4*tfour
		tempe += el.BStar * n.c5 * (math.Sin(xmp) - n.sinmo)
		templ += n.t3cof*tcube + tfour*(n.t4cof+tsince*n.t5cof)
	}

	e := el.Eccentricity - tempe
	if e <= -0.001 {
		return CartesianState{}, newError(EccentricityOutOfRange, tsince, e, "eccentricity <= -0.001")
	}

	orbit := perturbedOrbit{
		e:     clampEccentricity(e),
		a:     p.recovered.SemiMajorAxis * tempa * tempa,
		omega: omega,
		xl:    xmp + omega + xnode + p.recovered.MeanMotion*templ,
		xnode: xnode,
		xinc:  el.Inclination.Rad(),
		shape: c.shapeFactors,
	}
	return orbit.state(el.Epoch, tsince)
}

func (p *Propagator) propagateDeepSpace(tsince float64, st *IntegratorState) (CartesianState, error) {
	el, c, ds := &p.elements, &p.common, p.deep

	tsq := tsince * tsince
	v := meanState{
		xll:    el.MeanAnomaly.Rad() + c.xmdot*tsince,
		omgasm: el.ArgPerigee.Rad() + c.omgdot*tsince,
		xnodes: el.RAAN.Rad() + c.xnodot*tsince + c.xnodcf*tsq,
		em:     el.Eccentricity,
		xinc:   el.Inclination.Rad(),
		xn:     p.recovered.MeanMotion,
	}
	tempa := 1.0 - c.c1*tsince
	tempe := el.BStar * c.c4 * tsince
	templ := c.t2cof * tsq

	ds.secular(st, tsince, &v, el.ArgPerigee.Rad(), c.omgdot)
	if v.xn <= 0.0 {
		return CartesianState{}, newError(ParameterOutOfRange, tsince, v.xn, "mean motion <= 0")
	}

	a := math.Pow(xke/v.xn, twoThirds) * tempa * tempa
	v.em -= tempe
	v.xll += p.recovered.MeanMotion * templ

	ds.periodics(tsince, &v)

	if v.xinc < 0.0 {
		v.xinc = -v.xinc
		v.xnodes += math.Pi
		v.omgasm -= math.Pi
	}

	if v.em <= -0.001 {
		return CartesianState{}, newError(ParameterOutOfRange, tsince, v.em, "eccentricity <= -0.001")
	}

	orbit := perturbedOrbit{
		e:     clampEccentricity(v.em),
		a:     a,
		omega: v.omgasm,
		xl:    v.xll + v.omgasm + v.xnodes,
		xnode: v.xnodes,
		xinc:  v.xinc,
		shape: newShapeFactors(v.xinc),
	}
	return orbit.state(el.Epoch, tsince)
}

func clampEccentricity(e float64) float64 {
	switch {
	case e < 1.0e-6:
		return 1.0e-6
	case e > 1.0-1.0e-6:
		return 1.0 - 1.0e-6
	}
	return e
}
