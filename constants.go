package sgp4

import "math"

// WGS-72 gravity model. Distances are in Earth radii and time in minutes
// unless the name says otherwise.
const (
	twoPi         = 2 * math.Pi
	twoThirds     = 2.0 / 3.0
	xkmper        = 6378.135        // Earth's equatorial radius in km
	ae            = 1.0             // Distance units/earth radii
	mu            = 398600.8        // Earth's gravitational parameter (km³/s²)
	xj2           = 0.001082616     // J2 harmonic
	xj3           = -0.00000253881  // J3 harmonic
	xj4           = -0.00000165597  // J4 harmonic
	minutesPerDay = 1440.0
	ck2           = 0.5 * xj2 * ae * ae
	ck4           = -0.375 * xj4 * ae * ae * ae * ae
	a3ovk2        = -xj3 / ck2 * ae * ae * ae

	// Earth rotation rate used by the resonance terms (rad/min).
	thdt = 4.37526908801129966e-3
)

// Computed values (non-constants)
var (
	xke    = 60.0 / math.Sqrt(xkmper*xkmper*xkmper/mu) // sqrt(GM) in ER^1.5/min
	qoms2t = math.Pow((120-78)/xkmper, 4)               // (km/earth radii)^4
	s      = ae * (1.0 + 78.0/xkmper)
)

// Model selection thresholds.
const (
	deepSpacePeriod    = 225.0 // minutes
	simpleDragPerigee  = 220.0 // km
	densityBandHigh    = 156.0 // km
	densityBandLow     = 98.0  // km
	polarSingularGuard = 1.5e-12
)

// Solar and lunar ephemeris constants for the lunisolar terms.
const (
	zns    = 1.19459e-5
	c1ss   = 2.9864797e-6
	zes    = 0.01675
	znl    = 1.5835218e-4
	c1l    = 4.7968065e-7
	zel    = 0.05490
	zcosis = 0.91744867
	zsinis = 0.39785416
	zsings = -0.98088458
	zcosgs = 0.1945905
)

// Geopotential resonance constants.
const (
	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9

	g22   = 5.7686396
	g32   = 0.95240898
	g44   = 1.8014998
	g52   = 1.0508330
	g54   = 4.4108898
	fasx2 = 0.13130908
	fasx4 = 2.8843198
	fasx6 = 0.37448087

	step  = 720.0
	step2 = step * step / 2
)
