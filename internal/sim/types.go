package sim

import (
	"fmt"

	"github.com/san-kum/standwave/internal/wave"
)

// DefaultDt is the simulated time between consecutive frames.
const DefaultDt = 0.01

// State is the trace-retention state of a session.
type State int

const (
	// Tracing sessions retain the combined curve of every frame inside the first period.
	Tracing State = iota
	// Frozen sessions never retain another snapshot.
	Frozen
)

func (s State) String() string {
	switch s {
	case Tracing:
		return "tracing"
	case Frozen:
		return "frozen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SessionConfig fixes everything a session needs at construction.
type SessionConfig struct {
	Params     wave.Params
	Resolution int
	Tracing    bool
	// Dt is simulated seconds per frame index; zero selects DefaultDt.
	Dt float64
	// MaxTraces caps the trace set; zero leaves it bounded only by the period.
	MaxTraces int
}

// DefaultSessionConfig mirrors the classroom defaults: unit medium, 200 points, tracing on.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Params:     wave.DefaultParams(),
		Resolution: 200,
		Tracing:    true,
		Dt:         DefaultDt,
	}
}

// FrameResult is everything a renderer needs for one frame.
type FrameResult struct {
	Index int
	Frame wave.Frame
	// Traces holds combined snapshots of earlier frames, oldest first.
	// The slice is shared with the session and must not be modified.
	Traces [][]float64
	Label  string
	State  State
}

// Time is the simulated time of the frame.
func (r FrameResult) Time() float64 { return r.Frame.Time }

type Observer interface {
	OnFrame(r FrameResult)
}

type Metric interface {
	Name() string
	Observe(r FrameResult)
	Value() float64
	Reset()
}

// RunConfig controls a headless run.
type RunConfig struct {
	Frames int
	// Record keeps every combined curve in Result.Combined.
	Record bool
}

type Result struct {
	Params   wave.Params
	Grid     wave.Grid
	Dt       float64
	Times    []float64
	Combined [][]float64
	Traces   [][]float64
	Metrics  map[string]float64
	Frames   int
}
