package sgp4

import "math"

const (
	keplerMaxIterations = 10
	keplerTolerance     = 1.0e-12
)

// keplerSolution holds the eccentric longitude terms reused by the short
// period stage.
type keplerSolution struct {
	sinepw, cosepw float64
	ecose, esine   float64
}

// solveKepler solves Kepler's equation for the eccentric longitude given the
// mean argument of latitude capu and the eccentricity vector (axn, ayn).
func solveKepler(tsince, capu, axn, ayn float64) (keplerSolution, error) {
	elsq := axn*axn + ayn*ayn
	if elsq >= 1.0 {
		return keplerSolution{}, newError(LongPeriodPredictionError, tsince, elsq, "eccentricity vector magnitude squared >= 1")
	}

	var k keplerSolution
	epw := capu
	maxStep := 1.25 * math.Abs(math.Sqrt(elsq))
	for i := 0; i < keplerMaxIterations; i++ {
		k.sinepw, k.cosepw = math.Sincos(epw)
		k.ecose = axn*k.cosepw + ayn*k.sinepw
		k.esine = axn*k.sinepw - ayn*k.cosepw
		f := capu - epw + k.esine
		if math.Abs(f) < keplerTolerance {
			break
		}
		fdot := 1.0 - k.ecose
		delta := f / fdot
		if i == 0 {
			delta = math.Max(-maxStep, math.Min(maxStep, delta))
		} else {
			delta = f / (fdot + 0.5*k.esine*delta)
		}
		epw += delta
	}
	return k, nil
}
