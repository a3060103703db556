package wave

// Grid holds ordered sample positions along the medium.
type Grid []float64

// NewGrid returns n evenly spaced points over [0, length], endpoints included.
// The last point is exactly length.
func NewGrid(length float64, n int) (Grid, error) {
	if n < 2 {
		return nil, &ConfigError{Field: "resolution", Value: float64(n), Wrapped: ErrInvalidResolution}
	}
	if length <= 0 {
		return nil, &ConfigError{Field: "length", Value: length, Wrapped: ErrInvalidLength}
	}
	g := make(Grid, n)
	step := length / float64(n-1)
	for i := 0; i < n-1; i++ {
		g[i] = float64(i) * step
	}
	g[n-1] = length
	return g, nil
}

// Mirror returns the positions as seen by the wave after reflecting off the
// boundary at x = length: refx[i] = 2·length − x[i].
func (g Grid) Mirror(length float64) Grid {
	m := make(Grid, len(g))
	for i, x := range g {
		m[i] = 2*length - x
	}
	return m
}

// Clone returns an independent copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	copy(c, g)
	return c
}

// Spacing returns the distance between neighbouring points.
func (g Grid) Spacing() float64 {
	if len(g) < 2 {
		return 0
	}
	return (g[len(g)-1] - g[0]) / float64(len(g)-1)
}
