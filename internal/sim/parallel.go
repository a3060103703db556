package sim

import (
	"context"
	"log/slog"
	"sync"
)

// MetricFactory builds fresh metrics for one ensemble member.
type MetricFactory func() []Metric

// Ensemble runs independent sessions concurrently, one goroutine each.
// Sessions never share state, so only the per-session ordering matters.
type Ensemble struct {
	configs []SessionConfig
	metrics MetricFactory
	log     *slog.Logger
}

func NewEnsemble(configs []SessionConfig, metrics MetricFactory, log *slog.Logger) *Ensemble {
	return &Ensemble{configs: configs, metrics: metrics, log: log}
}

// Run executes every member for cfg.Frames frames. Results are returned in
// the order of the configs. The first member to fail cancels the others and
// its error is returned.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, len(e.configs))

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := range e.configs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := NewSession(e.configs[idx], WithLogger(e.log))
			if err != nil {
				fail(err)
				return
			}

			r := NewRunner(s)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx, cfg)
			if err != nil {
				fail(err)
				return
			}
			results[idx] = res
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
