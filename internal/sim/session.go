package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/standwave/internal/logging"
	"github.com/san-kum/standwave/internal/wave"
)

// Session steps a wave through simulated time one frame index at a time and
// keeps the ghost trace of the first oscillation period.
//
// A Session is not safe for concurrent use: Advance appends to the trace set
// in place and snapshots must stay in chronological order.
type Session struct {
	sampler   *wave.Sampler
	dt        float64
	period    float64
	maxTraces int
	state     State
	traces    [][]float64
	last      int
	retained  bool // whether frame last joined the trace set
	log       *slog.Logger
}

type Option func(*Session)

// WithLogger routes session diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession validates cfg and returns a session positioned before frame 0.
func NewSession(cfg SessionConfig, opts ...Option) (*Session, error) {
	dt := cfg.Dt
	if dt == 0 {
		dt = DefaultDt
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("dt=%g: %w", cfg.Dt, ErrInvalidDt)
	}
	if cfg.MaxTraces < 0 {
		return nil, fmt.Errorf("max traces must be non-negative, got %d", cfg.MaxTraces)
	}

	sampler, err := wave.NewSampler(cfg.Params, cfg.Resolution)
	if err != nil {
		return nil, err
	}

	s := &Session{
		sampler:   sampler,
		dt:        dt,
		period:    cfg.Params.Period(),
		maxTraces: cfg.MaxTraces,
		state:     Frozen,
		last:      -1,
		log:       logging.Discard(),
	}
	if cfg.Tracing {
		s.state = Tracing
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log.Debug("session created",
		"length", cfg.Params.Length,
		"reflection", cfg.Params.Reflection,
		"velocity", cfg.Params.Velocity,
		"frequency", cfg.Params.Frequency,
		"resolution", cfg.Resolution,
		"dt", dt,
		"state", s.state)
	return s, nil
}

// Advance computes the frame at frameIndex·dt.
//
// While the session is tracing and t < T, the frame's combined curve joins
// the trace set. The returned Traces only ever contain earlier frames, so the
// live curve is never drawn twice. Re-advancing the last index recomputes the
// frame without retaining it again; a lower index is rejected.
func (s *Session) Advance(frameIndex int) (FrameResult, error) {
	if frameIndex < 0 {
		return FrameResult{}, &FrameError{Index: frameIndex, Last: s.last, Wrapped: ErrNegativeFrame}
	}
	if frameIndex < s.last {
		return FrameResult{}, &FrameError{Index: frameIndex, Last: s.last, Wrapped: ErrNonMonotonicFrame}
	}

	t := float64(frameIndex) * s.dt
	frame := s.sampler.Sample(t)
	history := s.Traces()

	if frameIndex == s.last {
		if s.retained {
			history = history[: len(history)-1 : len(history)-1]
		}
	} else {
		s.last = frameIndex
		s.retained = false
		if s.state == Tracing {
			s.retained = s.retain(t, frame.Combined)
		}
	}

	return FrameResult{
		Index:  frameIndex,
		Frame:  frame,
		Traces: history,
		Label:  Label(t),
		State:  s.state,
	}, nil
}

func (s *Session) retain(t float64, combined []float64) bool {
	if !(t < s.period) {
		s.freeze(t, "period elapsed")
		return false
	}
	s.traces = append(s.traces, combined)
	if s.maxTraces > 0 && len(s.traces) >= s.maxTraces {
		s.freeze(t, "trace cap reached")
	}
	return true
}

func (s *Session) freeze(t float64, reason string) {
	s.state = Frozen
	s.log.Debug("trace frozen", "t", t, "reason", reason, "snapshots", len(s.traces))
}

// Label formats a simulated time for display.
func Label(t float64) string {
	return fmt.Sprintf("t = %.2f", t)
}

// Traces returns the snapshots retained so far, oldest first. Later appends
// never show through the returned slice.
func (s *Session) Traces() [][]float64 {
	n := len(s.traces)
	return s.traces[:n:n]
}

func (s *Session) TraceCount() int        { return len(s.traces) }
func (s *Session) State() State           { return s.state }
func (s *Session) Dt() float64            { return s.dt }
func (s *Session) Period() float64        { return s.period }
func (s *Session) Params() wave.Params    { return s.sampler.Params() }
func (s *Session) Grid() wave.Grid        { return s.sampler.Grid() }
func (s *Session) Sampler() *wave.Sampler { return s.sampler }
func (s *Session) LastIndex() int         { return s.last }

// TimeOf converts a frame index to simulated time.
func (s *Session) TimeOf(frameIndex int) float64 { return float64(frameIndex) * s.dt }
