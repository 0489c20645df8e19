package sim

import (
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric accumulates a scalar over a run. Last reports the value after the
// most recent observation; Value reports the run summary.
type Metric interface {
	Name() string
	Observe(g *cloth.Grid)
	Last() float64
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(g *cloth.Grid, r TickReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(g *cloth.Grid, r TickReport)

func (f ObserverFunc) OnTick(g *cloth.Grid, r TickReport) { f(g, r) }

// TickReport describes one completed tick.
type TickReport struct {
	Tick    int
	Torn    int
	Cut     int
	Live    int
	Pointer cloth.Pointer
}

type RunConfig struct {
	Ticks int
	FPS   int // 0 runs unpaced
}

type Result struct {
	Ticks   int
	Torn    int
	Cut     int
	Live    int
	Elapsed time.Duration
	Samples map[string][]float64
	Metrics map[string]float64
}
