package sgp4

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by propagators and the
// ephemeris generator. A nil *Metrics records nothing.
type Metrics struct {
	propagations     *prometheus.CounterVec
	errors           *prometheus.CounterVec
	ephemerisSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		propagations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgp4_propagations_total",
				Help: "Total number of state computations.",
			},
			[]string{"model"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sgp4_propagation_errors_total",
				Help: "Total number of failed state computations by error code.",
			},
			[]string{"code"},
		),
		ephemerisSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sgp4_ephemeris_duration_seconds",
				Help:    "Time spent generating one ephemeris batch.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(m.propagations, m.errors, m.ephemerisSeconds)
	return m
}

func (m *Metrics) observePropagation(model Model, err error) {
	if m == nil {
		return
	}
	m.propagations.WithLabelValues(model.String()).Inc()
	if err != nil {
		m.errors.WithLabelValues(strconv.Itoa(int(CodeOf(err)))).Inc()
	}
}

func (m *Metrics) observeEphemeris(d time.Duration) {
	if m == nil {
		return
	}
	m.ephemerisSeconds.Observe(d.Seconds())
}
