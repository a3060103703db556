package analysis

import "math"

// Envelope returns, for every grid point, the largest |value| across frames.
func Envelope(frames [][]float64) []float64 {
	if len(frames) == 0 {
		return nil
	}
	env := make([]float64, len(frames[0]))
	for _, f := range frames {
		for i := 0; i < len(env) && i < len(f); i++ {
			env[i] = math.Max(env[i], math.Abs(f[i]))
		}
	}
	return env
}

// Nodes returns the positions where env has a local minimum below half of its
// maximum. A flat envelope (travelling wave) has no nodes.
func Nodes(grid, env []float64) []float64 {
	n := len(env)
	if n == 0 || len(grid) != n {
		return nil
	}

	maxEnv := 0.0
	for _, v := range env {
		maxEnv = math.Max(maxEnv, v)
	}
	cut := maxEnv / 2

	nodes := make([]float64, 0)
	for i, v := range env {
		if v >= cut {
			continue
		}
		if i > 0 && v > env[i-1] {
			continue
		}
		if i < n-1 && v > env[i+1] {
			continue
		}
		nodes = append(nodes, grid[i])
	}
	return nodes
}

// StandingWaveRatio returns (1+|r|)/(1−|r|); +Inf for total reflection.
func StandingWaveRatio(r float64) float64 {
	a := math.Abs(r)
	if a >= 1 {
		return math.Inf(1)
	}
	return (1 + a) / (1 - a)
}

// MeasuredSWR is max(env)/min(env), the ratio read off a recorded envelope.
func MeasuredSWR(env []float64) float64 {
	if len(env) == 0 {
		return 0
	}
	lo, hi := env[0], env[0]
	for _, v := range env {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == 0 {
		return math.Inf(1)
	}
	return hi / lo
}
