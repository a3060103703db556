package wave

import "math"

// Frame is the wave evaluated at one instant. All three slices have the
// length of the grid they were sampled on.
type Frame struct {
	Time      float64
	Incident  []float64
	Reflected []float64
	Combined  []float64
}

// Len returns the number of samples per curve.
func (f Frame) Len() int { return len(f.Combined) }

// Sample evaluates the wave model on x and its mirror refx at time t.
//
//	incident[i]  = −sin(k·x[i] − ω·t)
//	reflected[i] = r·sin(k·refx[i] − ω·t)
//	combined[i]  = incident[i] + reflected[i]
//
// Only the first min(len(x), len(refx)) points are evaluated, so a
// mismatched mirror yields a shorter frame. Sample is pure.
func Sample(x, refx Grid, t float64, p Params) Frame {
	return sample(x, refx, t, p.Reflection, p.Wavenumber(), p.AngularFrequency())
}

func sample(x, refx Grid, t, r, k, omega float64) Frame {
	n := min(len(x), len(refx))
	f := Frame{
		Time:      t,
		Incident:  make([]float64, n),
		Reflected: make([]float64, n),
		Combined:  make([]float64, n),
	}
	wt := omega * t
	eval := func(start, end int) {
		for i := start; i < end; i++ {
			inc := -math.Sin(k*x[i] - wt)
			ref := r * math.Sin(k*refx[i]-wt)
			f.Incident[i] = inc
			f.Reflected[i] = ref
			f.Combined[i] = inc + ref
		}
	}
	if n >= ParallelThreshold {
		ParallelFor(n, ParallelThreshold/4, eval)
	} else {
		eval(0, n)
	}
	return f
}

// Sampler caches the grid, its mirror and the derived constants for one
// parameter set.
type Sampler struct {
	params Params
	x      Grid
	refx   Grid
	k      float64
	omega  float64
}

// NewSampler validates p and builds a grid of resolution points over [0, p.Length].
func NewSampler(p Params, resolution int) (*Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	x, err := NewGrid(p.Length, resolution)
	if err != nil {
		return nil, err
	}
	return &Sampler{
		params: p,
		x:      x,
		refx:   x.Mirror(p.Length),
		k:      p.Wavenumber(),
		omega:  p.AngularFrequency(),
	}, nil
}

// Sample evaluates the wave at time t.
func (s *Sampler) Sample(t float64) Frame {
	return sample(s.x, s.refx, t, s.params.Reflection, s.k, s.omega)
}

func (s *Sampler) Params() Params  { return s.params }
func (s *Sampler) Grid() Grid      { return s.x.Clone() }
func (s *Sampler) Mirrored() Grid  { return s.refx.Clone() }
func (s *Sampler) Resolution() int { return len(s.x) }
