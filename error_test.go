package sgp4

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropagationError(t *testing.T) {
	err := newError(ObjectDecayed, 120.5, 0.98, "orbital radius below the Earth's surface (earth radii)")
	assert.Contains(t, err.Error(), "object decayed")
	assert.Contains(t, err.Error(), "code 6")
	assert.Contains(t, err.Error(), "120.50")

	wrapped := fmt.Errorf("satellite 25544: %w", err)
	assert.ErrorIs(t, wrapped, ErrObjectDecayed)
	assert.NotErrorIs(t, wrapped, ErrEccentricityOutOfRange)
	assert.Equal(t, ObjectDecayed, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(0), CodeOf(errors.New("other")))

	assert.Equal(t, "sgp4: parameter out of range (code 5)", ErrParameterOutOfRange.Error())
}

func TestErrorCodeNumbering(t *testing.T) {
	codes := []ErrorCode{
		EccentricityOutOfRange,
		InclinationOutOfRange,
		LongPeriodPredictionError,
		ShortPeriodPredictionError,
		ParameterOutOfRange,
		ObjectDecayed,
	}
	for i, c := range codes {
		assert.Equal(t, ErrorCode(i+1), c)
		assert.NotEmpty(t, c.String())
	}
}
