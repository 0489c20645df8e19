package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

// Containment is the fraction of ticks on which every point stayed finite
// and inside the reflection bounds. Last is 1 or 0 for the latest tick.
type Containment struct {
	name       string
	bounds     cloth.Bounds
	last       float64
	violations int
	samples    int
}

func NewContainment(b cloth.Bounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: b,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(g *cloth.Grid) {
	c.samples++
	c.last = 1
	for i := 0; i < g.Len(); i++ {
		p := g.Point(i)
		if !p.Finite() || !c.bounds.Contains(p.Pos) {
			c.violations++
			c.last = 0
			break
		}
	}
}

func (c *Containment) Last() float64 { return c.last }

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.last = 0
	c.violations = 0
	c.samples = 0
}

// Defaults returns a fresh set of the standard cloth metrics.
func Defaults(b cloth.Bounds) []sim.Metric {
	return []sim.Metric{
		NewSag(),
		NewStretch(),
		NewMotion(),
		NewLiveLinks(),
		NewTornLinks(),
		NewContainment(b),
	}
}

// Names lists the metric names Defaults produces, in order.
func Names() []string {
	return []string{"sag", "stretch", "motion", "live_links", "torn_links", "containment"}
}
