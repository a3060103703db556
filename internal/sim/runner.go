package sim

import (
	"context"
	"fmt"
)

// Runner drives a session headlessly over consecutive frame indices, standing
// in for the animation scheduler.
type Runner struct {
	session   *Session
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *Session) *Runner {
	return &Runner{
		session:   s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances frames 0..cfg.Frames-1, continuing after the session's last
// index if it has already been advanced.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	s := r.session
	result := &Result{
		Params:  s.Params(),
		Grid:    s.Grid(),
		Dt:      s.Dt(),
		Times:   make([]float64, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}
	if cfg.Record {
		result.Combined = make([][]float64, 0, cfg.Frames)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	start := s.LastIndex() + 1
	for i := start; i < start+cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		fr, err := s.Advance(i)
		if err != nil {
			r.finish(result)
			return result, err
		}

		for _, m := range r.metrics {
			m.Observe(fr)
		}
		for _, obs := range r.observers {
			obs.OnFrame(fr)
		}

		result.Times = append(result.Times, fr.Time())
		if cfg.Record {
			result.Combined = append(result.Combined, fr.Frame.Combined)
		}
		result.Frames++
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	result.Traces = r.session.Traces()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback advances frames until the callback returns false, the
// context is cancelled or maxFrames frames were produced (maxFrames <= 0 means
// no limit).
func (r *Runner) RunWithCallback(ctx context.Context, maxFrames int, callback func(FrameResult) bool) error {
	s := r.session
	start := s.LastIndex() + 1
	for i := start; maxFrames <= 0 || i < start+maxFrames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fr, err := s.Advance(i)
		if err != nil {
			return err
		}
		if !callback(fr) {
			return nil
		}
	}
	return nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames=%d: %w", cfg.Frames, ErrInvalidFrames)
	}
	return nil
}
