// Package analysis provides post-processing for recorded standing waves.
//
//   - [PowerSpectrum]: magnitude spectrum of a real time series
//   - [DominantFrequency]: strongest non-DC frequency of a probe point
//   - [Envelope]: per-point maximum |combined| over a set of frames
//   - [Nodes]: grid positions where the envelope has a local minimum
//   - [StandingWaveRatio]: SWR implied by a reflection coefficient
//
// # Example
//
//	series := analysis.Probe(result.Combined, len(result.Grid)/4)
//	f := analysis.DominantFrequency(series, result.Dt)
package analysis
