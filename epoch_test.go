package sgp4

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpochFromYearDay(t *testing.T) {
	e := EpochFromYearDay(2025, 1.5)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), e.Time())

	e = EpochFromYearDay(2024, 60.25)
	assert.Equal(t, time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC), e.Time())
}

func TestEpochArithmetic(t *testing.T) {
	e := NewEpoch(time.Date(2024, 3, 10, 8, 0, 0, 0, time.FixedZone("CET", 3600)))
	assert.Equal(t, time.UTC, e.Time().Location())

	later := e.AddMinutes(90.5)
	assert.Equal(t, 90.5, later.Sub(e))
	assert.Equal(t, -90.5, e.Sub(later))
	assert.Equal(t, "2024-03-10T08:30:30Z", later.String())
}

func TestEpochJ2000(t *testing.T) {
	j2000 := NewEpoch(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 2451545.0, j2000.JulianDay(), 1e-9)
	assert.InDelta(t, 0, j2000.J2000Days(), 1e-9)

	// Mean sidereal time at J2000.0 is 280.46061837 degrees.
	assert.InDelta(t, 280.46061837, j2000.GreenwichSiderealTime().Deg(), 1e-6)
}
