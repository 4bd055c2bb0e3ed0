package sgp4

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a propagation failed. The numeric values are
// stable and may be reported to callers outside the process.
type ErrorCode int

const (
	EccentricityOutOfRange ErrorCode = iota + 1
	InclinationOutOfRange
	LongPeriodPredictionError
	ShortPeriodPredictionError
	ParameterOutOfRange
	ObjectDecayed
)

var codeNames = map[ErrorCode]string{
	EccentricityOutOfRange:     "eccentricity out of range",
	InclinationOutOfRange:      "inclination out of range",
	LongPeriodPredictionError:  "long period prediction error",
	ShortPeriodPredictionError: "short period prediction error",
	ParameterOutOfRange:        "parameter out of range",
	ObjectDecayed:              "object decayed",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown error code %d", int(c))
}

// Sentinel errors for use with errors.Is.
var (
	ErrEccentricityOutOfRange     = &PropagationError{Code: EccentricityOutOfRange}
	ErrInclinationOutOfRange      = &PropagationError{Code: InclinationOutOfRange}
	ErrLongPeriodPredictionError  = &PropagationError{Code: LongPeriodPredictionError}
	ErrShortPeriodPredictionError = &PropagationError{Code: ShortPeriodPredictionError}
	ErrParameterOutOfRange        = &PropagationError{Code: ParameterOutOfRange}
	ErrObjectDecayed              = &PropagationError{Code: ObjectDecayed}
)

// PropagationError is returned when the model cannot produce a state,
// either because the input elements are invalid or because the
// perturbations drove the orbit outside the limits of the theory.
type PropagationError struct {
	Code   ErrorCode // What went wrong
	Tsince float64   // Minutes since epoch at which the limit was hit
	Value  float64   // The value that violated the limit
	Reason string    // Human readable detail
}

// Error returns the error message for PropagationError.
func (e *PropagationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("sgp4: %s (code %d)", e.Code, int(e.Code))
	}
	return fmt.Sprintf("sgp4: %s (code %d) at tsince %.2f min: %s (value: %.6e)", e.Code, int(e.Code), e.Tsince, e.Reason, e.Value)
}

// Is reports whether target is a PropagationError with the same code.
func (e *PropagationError) Is(target error) bool {
	t, ok := target.(*PropagationError)
	return ok && t.Code == e.Code
}

// CodeOf extracts the error code from err, or 0 if err is not a
// PropagationError.
func CodeOf(err error) ErrorCode {
	var pe *PropagationError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 0
}

func newError(code ErrorCode, tsince, value float64, reason string) *PropagationError {
	return &PropagationError{Code: code, Tsince: tsince, Value: value, Reason: reason}
}
