package metrics

import (
	"math"

	"github.com/san-kum/standwave/internal/sim"
)

// Peak tracks the largest |combined| sample seen across all frames.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(r sim.FrameResult) {
	for _, v := range r.Frame.Combined {
		p.peak = math.Max(p.peak, math.Abs(v))
	}
}

func (p *Peak) Value() float64 { return p.peak }
func (p *Peak) Reset()         { p.peak = 0 }

// MeanSquare averages the grid mean of combined² over frames, a proxy for
// the energy stored in the standing wave.
type MeanSquare struct {
	name    string
	samples int
	total   float64
}

func NewMeanSquare() *MeanSquare {
	return &MeanSquare{name: "mean_square"}
}

func (m *MeanSquare) Name() string { return m.name }

func (m *MeanSquare) Observe(r sim.FrameResult) {
	c := r.Frame.Combined
	if len(c) == 0 {
		return
	}
	sum := 0.0
	for _, v := range c {
		sum += v * v
	}
	m.total += sum / float64(len(c))
	m.samples++
}

func (m *MeanSquare) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSquare) Reset() {
	m.total = 0
	m.samples = 0
}
