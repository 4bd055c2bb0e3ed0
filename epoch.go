package sgp4

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

const (
	jdJ2000 = 2451545.0
	// Days between 1900 Jan 0.5 and J2000, the reference of the lunisolar
	// ephemeris polynomials.
	daysJ1900ToJ2000 = 36525.0
)

// Epoch is an instant in UTC.
type Epoch struct {
	t time.Time
}

// NewEpoch returns the epoch for t.
func NewEpoch(t time.Time) Epoch {
	return Epoch{t: t.UTC()}
}

// EpochFromYearDay builds an epoch from a full year and a fractional day of
// year where 1.0 is January 1st 00:00 UTC.
func EpochFromYearDay(year int, day float64) Epoch {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return Epoch{t: start.Add(minutesToDuration((day - 1) * minutesPerDay))}
}

// Time returns the epoch as a time.Time.
func (e Epoch) Time() time.Time { return e.t }

// AddMinutes returns the epoch m minutes after e.
func (e Epoch) AddMinutes(m float64) Epoch {
	return Epoch{t: e.t.Add(minutesToDuration(m))}
}

// Sub returns e - o in minutes.
func (e Epoch) Sub(o Epoch) float64 {
	return e.t.Sub(o.t).Minutes()
}

// JulianDay returns the Julian day number of the epoch.
func (e Epoch) JulianDay() float64 {
	return julian.TimeToJD(e.t)
}

// J2000Days returns the days elapsed since J2000.0.
func (e Epoch) J2000Days() float64 {
	return e.JulianDay() - jdJ2000
}

// GreenwichSiderealTime returns the mean sidereal time at Greenwich.
func (e Epoch) GreenwichSiderealTime() unit.Angle {
	return sidereal.Mean(e.JulianDay()).Angle()
}

func (e Epoch) String() string {
	return e.t.Format(time.RFC3339Nano)
}

func minutesToDuration(m float64) time.Duration {
	return time.Duration(math.Round(m * float64(time.Minute)))
}
