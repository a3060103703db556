package metrics

import "github.com/san-kum/standwave/internal/sim"

// TraceCount reports how many snapshots the overlay had on the last frame.
type TraceCount struct {
	name  string
	count int
}

func NewTraceCount() *TraceCount {
	return &TraceCount{name: "traces"}
}

func (t *TraceCount) Name() string { return t.name }

func (t *TraceCount) Observe(r sim.FrameResult) {
	t.count = len(r.Traces)
}

func (t *TraceCount) Value() float64 { return float64(t.count) }
func (t *TraceCount) Reset()         { t.count = 0 }

// Default returns the metrics every headless run reports.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPeak(),
		NewMeanSquare(),
		NewTraceCount(),
	}
}
