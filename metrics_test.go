package sgp4

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	tle, err := ParseTLE(issTLE)
	require.NoError(t, err)
	el, err := tle.MeanElements()
	require.NoError(t, err)
	p := newTestPropagator(t, el, WithMetrics(m))
	for _, tsince := range []float64{0, 10, 20} {
		_, err := p.Propagate(tsince)
		require.NoError(t, err)
	}

	decaying := testElements(t, testEpoch, 0.2, 51.6, 0, 0, 0, MeanMotionFromRevPerDay(16.5), 0)
	d := newTestPropagator(t, decaying, WithMetrics(m))
	_, err = d.Propagate(0)
	require.Error(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.propagations.WithLabelValues("near-earth")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("6")))

	m.observeEphemeris(250 * time.Millisecond)
	count, err := testutil.GatherAndCount(reg, "sgp4_ephemeris_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observePropagation(NearEarth, ErrObjectDecayed)
		m.observeEphemeris(time.Second)
	})
}
