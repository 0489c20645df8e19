package sim

import (
	"context"
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

// SweepRun is one variant of a parameter sweep.
type SweepRun struct {
	Value  float64
	Params cloth.Params
	Result *Result
	Err    error
}

// Sweep runs one independent simulation per value of the named knob, each
// on its own goroutine. Every simulation owns its grid, so runs share no
// state. newMetrics is called once per run.
func Sweep(ctx context.Context, base cloth.Params, space cloth.Canvas, knob string, values []float64,
	cfg RunConfig, events []ScriptEvent, newMetrics func() []Metric) ([]SweepRun, error) {

	runs := make([]SweepRun, len(values))
	for i, v := range values {
		p, err := base.With(knob, v)
		if err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		runs[i] = SweepRun{Value: v, Params: p}
	}

	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func(run *SweepRun) {
			defer wg.Done()

			s, err := New(run.Params, space)
			if err != nil {
				run.Err = err
				return
			}
			if len(events) > 0 {
				s.SetScript(NewScript(events))
			}
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}
			run.Result, run.Err = s.Run(ctx, cfg)
		}(&runs[i])
	}

	wg.Wait()
	return runs, nil
}
