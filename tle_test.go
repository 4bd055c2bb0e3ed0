package sgp4

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issTLE = `ISS (ZARYA)
1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994
2 25544  51.6369  94.7823 0002558 120.7586  15.7840 15.49587957510533`

func TestParseTLE(t *testing.T) {
	input := `1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996
2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954`

	tle, err := ParseTLE(input)
	require.NoError(t, err)

	assert.Equal(t, 25544, tle.SatelliteNumber)
	assert.Equal(t, 'U', tle.Classification)
	assert.Equal(t, "98067A", tle.International)
	assert.Equal(t, 2025, tle.EpochYear)
	assert.Equal(t, 999, tle.ElementNumber)
	assert.Equal(t, 49295, tle.RevolutionNumber)

	tests := []struct {
		name    string
		got     float64
		want    float64
		epsilon float64
	}{
		{"Epoch Day", tle.EpochDay, 25.00048859, 1e-8},
		{"Mean Motion Dot", tle.MeanMotionDot, 0.00033214, 1e-8},
		{"Mean Motion Dot 2", tle.MeanMotionDot2, 0.0, 1e-12},
		{"B* Drag Term", tle.Bstar, 0.00057704, 1e-8},
		{"Inclination", tle.Inclination, 51.6377, 1e-4},
		{"Right Ascension", tle.RightAscension, 296.2827, 1e-4},
		{"Eccentricity", tle.Eccentricity, 0.0003104, 1e-7},
		{"Argument of Perigee", tle.ArgOfPerigee, 141.8447, 1e-4},
		{"Mean Anomaly", tle.MeanAnomaly, 313.9175, 1e-4},
		{"Mean Motion", tle.MeanMotion, 15.50506992, 1e-8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, tt.epsilon)
		})
	}
}

func TestParseTLEWithName(t *testing.T) {
	tle, err := ParseTLE(issTLE)
	require.NoError(t, err)
	assert.Equal(t, "ISS (ZARYA)", tle.Name)
	assert.InDelta(t, 0.14567e-3, tle.Bstar, 1e-12)

	// Day 138 of 2025 is May 18th.
	want := time.Date(2025, 5, 18, 8, 53, 29, 535936000, time.UTC)
	assert.WithinDuration(t, want, tle.EpochTime(), time.Millisecond)
}

func TestInvalidTLE(t *testing.T) {
	tests := []struct {
		name string
		tle  string
	}{
		{
			name: "Empty input",
			tle:  "",
		},
		{
			name: "Single line",
			tle:  "1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996",
		},
		{
			name: "Invalid line length",
			tle: `1 25544U 98067A   25025.00048859
2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954`,
		},
		{
			name: "Invalid line numbers",
			tle: `3 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996
2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954`,
		},
		{
			name: "Checksum mismatch",
			tle: `1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9997
2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTLE(tt.tle)
			assert.Error(t, err)
		})
	}
}

func TestParseTLEs(t *testing.T) {
	catalog := issTLE + "\n\n" + `1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996
2 25544  51.6377 296.2827 0003104 141.8447 313.9175 15.50506992492954
`
	tles, err := ParseTLEs(catalog)
	require.NoError(t, err)
	require.Len(t, tles, 2)
	assert.Equal(t, "ISS (ZARYA)", tles[0].Name)
	assert.Equal(t, "", tles[1].Name)
	assert.Equal(t, 25.00048859, tles[1].EpochDay)

	_, err = ParseTLEs(issTLE + "\n1 25544U 98067A   25025.00048859  .00033214  00000+0  57704-3 0  9996")
	assert.Error(t, err)
}

func TestTLEMeanElements(t *testing.T) {
	tle, err := ParseTLE(issTLE)
	require.NoError(t, err)

	el, err := tle.MeanElements()
	require.NoError(t, err)
	assert.InDelta(t, 51.6369, el.Inclination.Deg(), 1e-12)
	assert.InDelta(t, 94.7823, el.RAAN.Deg(), 1e-12)
	assert.InDelta(t, 120.7586, el.ArgPerigee.Deg(), 1e-12)
	assert.InDelta(t, 15.7840, el.MeanAnomaly.Deg(), 1e-12)
	assert.InDelta(t, 15.49587957*twoPi/minutesPerDay, el.MeanMotion, 1e-15)
	assert.Equal(t, tle.Bstar, el.BStar)
	assert.True(t, el.Epoch.Time().Equal(tle.EpochTime()))
}

func TestCalculateChecksum(t *testing.T) {
	line := "1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994"
	assert.Equal(t, 4, calculateChecksum(line))
	assert.NoError(t, verifyChecksum(line))
}
