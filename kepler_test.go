package sgp4

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveKepler(t *testing.T) {
	tests := []struct {
		name     string
		capu     float64
		axn, ayn float64
	}{
		{"circular", 1.0, 0, 0},
		{"small eccentricity", 2.5, 0.01, -0.005},
		{"moderate eccentricity", 0.3, 0.3, 0.2},
		{"high eccentricity near perigee", 0.05, 0.7, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := solveKepler(0, tt.capu, tt.axn, tt.ayn)
			require.NoError(t, err)

			epw := math.Atan2(k.sinepw, k.cosepw)
			residual := math.Remainder(tt.capu-epw+k.esine, 2*math.Pi)
			assert.InDelta(t, 0, residual, 1e-10)
			assert.InDelta(t, 1, k.sinepw*k.sinepw+k.cosepw*k.cosepw, 1e-15)
		})
	}
}

func TestSolveKeplerUnboundOrbit(t *testing.T) {
	_, err := solveKepler(42, 1.0, 0.8, 0.6)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLongPeriodPredictionError)

	var pe *PropagationError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 42.0, pe.Tsince)
	assert.InDelta(t, 1.0, pe.Value, 1e-12)
}
