// Package wave provides the closed-form model of a one-dimensional standing
// wave built from an incident wave and its partial reflection.
//
// The package defines the primitives shared by every other part of the lab:
//
//   - [Params]: medium length, reflection coefficient, phase velocity, frequency
//   - [Grid]: evenly spaced sample positions over [0, L]
//   - [Frame]: incident, reflected and combined samples at one instant
//   - [Sampler]: cached grid plus parameters, evaluated per time value
//
// # Example
//
//	s, err := wave.NewSampler(wave.Params{Length: 1, Reflection: 1, Velocity: 1, Frequency: 1}, 200)
//	if err != nil {
//	    return err
//	}
//	frame := s.Sample(0.25)
//
// # Thread Safety
//
// A Sampler holds no mutable state after construction, so Sample may be called
// from several goroutines at once.
package wave
