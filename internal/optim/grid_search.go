package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

// GridSearch tries every combination of the listed knob values and keeps
// the parameters that minimise a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := cloth.DefaultParams().Get(name); !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: no values for %q", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Candidates returns the number of combinations Search will try.
func (g *GridSearch) Candidates() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Trial describes one grid point. Err is set when its params were invalid
// or the run failed.
type Trial struct {
	Params cloth.Params
	Value  float64
	Err    error
}

// Problem is what Search evaluates at every grid point.
type Problem struct {
	Base       cloth.Params
	Space      cloth.Canvas
	Run        sim.RunConfig
	Events     []sim.ScriptEvent
	NewMetrics func() []sim.Metric
	Metric     string
	Maximize   bool
}

// Search runs one simulation per grid point and returns the best params,
// the metric value there and every trial in visiting order.
func (g *GridSearch) Search(ctx context.Context, prob Problem) (cloth.Params, float64, []Trial, error) {
	best := math.Inf(1)
	var bestParams cloth.Params
	found := false
	trials := make([]Trial, 0, g.Candidates())

	var visit func(depth int, current cloth.Params) error
	visit = func(depth int, current cloth.Params) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if depth == len(g.paramNames) {
			val, err := evaluate(ctx, prob, current)
			trials = append(trials, Trial{Params: current, Value: val, Err: err})
			if err != nil {
				return nil
			}
			score := val
			if prob.Maximize {
				score = -val
			}
			if score < best {
				best = score
				bestParams = current
				found = true
			}
			return nil
		}

		for _, v := range g.ranges[depth] {
			next, err := current.With(g.paramNames[depth], v)
			if err != nil {
				return err
			}
			if err := visit(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(0, prob.Base); err != nil {
		return cloth.Params{}, 0, trials, err
	}
	if !found {
		return cloth.Params{}, 0, trials, fmt.Errorf("optim: no candidate completed")
	}
	if prob.Maximize {
		best = -best
	}
	return bestParams, best, trials, nil
}

func evaluate(ctx context.Context, prob Problem, p cloth.Params) (float64, error) {
	s, err := sim.New(p, prob.Space)
	if err != nil {
		return 0, err
	}
	if len(prob.Events) > 0 {
		s.SetScript(sim.NewScript(prob.Events))
	}
	if prob.NewMetrics != nil {
		for _, m := range prob.NewMetrics() {
			s.AddMetric(m)
		}
	}

	result, err := s.Run(ctx, prob.Run)
	if err != nil {
		return 0, err
	}
	val, ok := result.Metrics[prob.Metric]
	if !ok {
		return 0, fmt.Errorf("optim: metric %q not recorded", prob.Metric)
	}
	return val, nil
}
