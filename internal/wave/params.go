package wave

import "math"

// Params are the physical parameters of a session. They never change once a
// Sampler has been built from them.
type Params struct {
	Length     float64 // medium length (m)
	Reflection float64 // reflection coefficient, |r| <= 1 expected but not enforced
	Velocity   float64 // phase velocity (m/s)
	Frequency  float64 // wave frequency (Hz); zero gives a static field
}

// DefaultParams matches the classroom defaults: a unit medium with total reflection.
func DefaultParams() Params {
	return Params{Length: 1, Reflection: 1, Velocity: 1, Frequency: 1}
}

// Validate rejects parameters that cannot describe a physical medium.
// Zero frequency is allowed.
func (p Params) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"length", p.Length},
		{"reflection", p.Reflection},
		{"velocity", p.Velocity},
		{"frequency", p.Frequency},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return &ConfigError{Field: f.name, Value: f.val, Wrapped: ErrNonFinite}
		}
	}
	if p.Length <= 0 {
		return &ConfigError{Field: "length", Value: p.Length, Wrapped: ErrInvalidLength}
	}
	if p.Velocity == 0 {
		return &ConfigError{Field: "velocity", Value: p.Velocity, Wrapped: ErrZeroVelocity}
	}
	return nil
}

// Wavenumber returns k = 2πf/v.
func (p Params) Wavenumber() float64 {
	return 2 * math.Pi * p.Frequency / p.Velocity
}

// AngularFrequency returns ω = 2πf.
func (p Params) AngularFrequency() float64 {
	return 2 * math.Pi * p.Frequency
}

// Period returns 1/|f|, or +Inf for a static field.
func (p Params) Period() float64 {
	if p.Frequency == 0 {
		return math.Inf(1)
	}
	return 1 / math.Abs(p.Frequency)
}

// Wavelength returns v/|f|, or +Inf for a static field.
func (p Params) Wavelength() float64 {
	if p.Frequency == 0 {
		return math.Inf(1)
	}
	return math.Abs(p.Velocity / p.Frequency)
}
