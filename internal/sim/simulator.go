package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Simulation drives a cloth grid one tick at a time.
//
// SetPointer, UpdatePointer and Reconfigure may be called from any
// goroutine. Tick, Reset and Run must be called from a single goroutine.
type Simulation struct {
	mu      sync.Mutex
	pointer cloth.Pointer
	pending *cloth.Params

	params    cloth.Params
	space     cloth.Canvas
	grid      *cloth.Grid
	tick      int
	script    *Script
	validate  bool
	metrics   []Metric
	observers []Observer
}

// New builds the first grid from p, centred on space.
func New(p cloth.Params, space cloth.Canvas) (*Simulation, error) {
	s := &Simulation{
		params:   p,
		space:    space,
		validate: true,
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) rebuild() error {
	g, err := cloth.New(s.params, s.space.Origin(s.params))
	if err != nil {
		return err
	}
	s.grid = g
	return nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetValidate toggles the per-tick finiteness check.
func (s *Simulation) SetValidate(on bool) { s.validate = on }

// SetScript installs a pointer script, replacing live pointer input for
// the ticks it covers.
func (s *Simulation) SetScript(sc *Script) { s.script = sc }

func (s *Simulation) SetPointer(p cloth.Pointer) {
	s.mu.Lock()
	s.pointer = p
	s.mu.Unlock()
}

// UpdatePointer mutates the pointer under the lock.
func (s *Simulation) UpdatePointer(fn func(p *cloth.Pointer)) {
	s.mu.Lock()
	fn(&s.pointer)
	s.mu.Unlock()
}

func (s *Simulation) Pointer() cloth.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointer
}

// Reconfigure queues p to take effect at the start of the next tick.
// Physics-only changes retune the live grid. Geometry changes rebuild it
// the way Reset does, so the tick count, metrics and script start over.
func (s *Simulation) Reconfigure(p cloth.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.pending = &p
	s.mu.Unlock()
	return nil
}

// Params returns the parameters in effect, including a queued change.
func (s *Simulation) Params() cloth.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return *s.pending
	}
	return s.params
}

func (s *Simulation) Grid() *cloth.Grid   { return s.grid }
func (s *Simulation) Space() cloth.Canvas { return s.space }
func (s *Simulation) TickCount() int      { return s.tick }

// Reset discards the grid and builds a fresh one from the current
// parameters. Metrics and the script start over.
func (s *Simulation) Reset() error {
	s.mu.Lock()
	if s.pending != nil {
		s.params = *s.pending
		s.pending = nil
	}
	s.pointer.Release()
	s.mu.Unlock()

	return s.restart()
}

// restart builds a fresh grid from s.params and starts the tick count,
// the script and every metric over.
func (s *Simulation) restart() error {
	if err := s.rebuild(); err != nil {
		return err
	}
	s.tick = 0
	if s.script != nil {
		s.script.Rewind()
	}
	for _, m := range s.metrics {
		m.Reset()
	}
	return nil
}

func (s *Simulation) applyPending() error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending == nil {
		return nil
	}
	if s.params.SameGeometry(*pending) {
		if err := s.grid.Retune(*pending); err != nil {
			return err
		}
		s.params = *pending
		return nil
	}
	s.params = *pending
	s.mu.Lock()
	s.pointer.Release()
	s.mu.Unlock()
	return s.restart()
}

// Tick applies any queued reconfiguration, snapshots the pointer and
// advances the grid by one step.
func (s *Simulation) Tick() (TickReport, error) {
	if err := s.applyPending(); err != nil {
		return TickReport{Tick: s.tick}, err
	}

	s.mu.Lock()
	if s.script != nil {
		s.script.apply(s.tick, &s.pointer)
	}
	ptr := s.pointer
	s.mu.Unlock()

	st := s.grid.Update(ptr, s.space.Bounds())
	s.tick++

	report := TickReport{
		Tick:    s.tick,
		Torn:    st.Torn,
		Cut:     st.Cut,
		Live:    s.grid.LiveLinks(),
		Pointer: ptr,
	}

	if s.validate {
		if i, bad := s.grid.FirstNonFinite(); bad {
			return report, &TickError{Tick: s.tick, Point: i, Wrapped: ErrDiverged}
		}
	}

	for _, m := range s.metrics {
		m.Observe(s.grid)
	}
	for _, o := range s.observers {
		o.OnTick(s.grid, report)
	}
	return report, nil
}

// Run executes cfg.Ticks ticks, paced at cfg.FPS when it is positive.
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		result.Samples[m.Name()] = make([]float64, 0, cfg.Ticks)
	}

	var frames <-chan time.Time
	if cfg.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
		defer ticker.Stop()
		frames = ticker.C
	}

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		result.Live = s.grid.LiveLinks()
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < cfg.Ticks; i++ {
		if frames != nil {
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
			case <-frames:
			}
		} else {
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
			default:
			}
		}

		report, err := s.Tick()
		if err != nil {
			return result, err
		}

		result.Ticks++
		result.Torn += report.Torn
		result.Cut += report.Cut
		for _, m := range s.metrics {
			result.Samples[m.Name()] = append(result.Samples[m.Name()], m.Last())
		}
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %d", cfg.FPS)
	}
	return nil
}
