package wave

import (
	"errors"
	"fmt"
)

// Domain errors for wave construction.
var (
	// ErrInvalidLength indicates a medium length that is not strictly positive.
	ErrInvalidLength = errors.New("wave: medium length must be positive")

	// ErrInvalidResolution indicates a grid with fewer than two points.
	ErrInvalidResolution = errors.New("wave: resolution must be at least 2")

	// ErrZeroVelocity indicates a phase velocity of zero, which has no finite wavenumber.
	ErrZeroVelocity = errors.New("wave: phase velocity must be non-zero")

	// ErrNonFinite indicates a NaN or infinite parameter.
	ErrNonFinite = errors.New("wave: parameter is NaN or Inf")
)

// ConfigError wraps a construction error with the offending field.
type ConfigError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
