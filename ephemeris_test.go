package sgp4

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEphemeris(t *testing.T) {
	tle, err := ParseTLE(issTLE)
	require.NoError(t, err)
	iss, err := tle.MeanElements()
	require.NoError(t, err)
	decaying := testElements(t, iss.Epoch, 0.2, 51.6, 0, 0, 0, MeanMotionFromRevPerDay(16.5), 0)
	resonant := testElements(t, iss.Epoch, 0.7, 63.4, 40, 270, 10, 0.0087, 0)

	elements := []MeanElements{iss, decaying, resonant, iss}
	start := tle.EpochTime()
	stop := start.Add(90 * time.Minute)

	out, err := Ephemeris(context.Background(), elements, start, stop, 10*time.Minute, EphemerisOptions{Workers: 3})
	require.NoError(t, err)
	require.Len(t, out, len(elements))

	for i, series := range out {
		assert.Equal(t, i, series.Index)
		assert.Equal(t, elements[i], series.Elements)
	}

	assert.Len(t, out[0].States, 10)
	assert.False(t, out[0].Decayed)
	assert.NoError(t, out[0].Err)
	assert.WithinDuration(t, stop, out[0].States[9].Epoch.Time(), time.Microsecond)

	assert.True(t, out[1].Decayed)
	assert.Empty(t, out[1].States)

	require.Len(t, out[2].States, 10)
	p := newTestPropagator(t, resonant)
	want, err := p.PropagateAt(stop)
	require.NoError(t, err)
	assert.InDelta(t, want.Position.X, out[2].States[9].Position.X, 1e-6)
	assert.InDelta(t, want.Position.Y, out[2].States[9].Position.Y, 1e-6)
	assert.InDelta(t, want.Position.Z, out[2].States[9].Position.Z, 1e-6)

	assert.Equal(t, out[0].States, out[3].States)
}

func TestEphemerisInvalidWindow(t *testing.T) {
	now := time.Now()
	el := testElements(t, NewEpoch(now), 0.001, 51.6, 0, 0, 0, MeanMotionFromRevPerDay(15.5), 0)

	_, err := Ephemeris(context.Background(), []MeanElements{el}, now, now.Add(-time.Minute), time.Minute, EphemerisOptions{})
	assert.Error(t, err)

	_, err = Ephemeris(context.Background(), []MeanElements{el}, now, now.Add(time.Minute), 0, EphemerisOptions{})
	assert.Error(t, err)

	out, err := Ephemeris(context.Background(), nil, now, now.Add(time.Minute), time.Minute, EphemerisOptions{})
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestEphemerisCancelled(t *testing.T) {
	now := time.Now()
	el := testElements(t, NewEpoch(now), 0.001, 51.6, 0, 0, 0, MeanMotionFromRevPerDay(15.5), 0)
	elements := make([]MeanElements, 50)
	for i := range elements {
		elements[i] = el
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Ephemeris(ctx, elements, now, now.Add(24*time.Hour), time.Minute, EphemerisOptions{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
