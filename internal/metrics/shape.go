package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Sag tracks how far the free points hang below their rest positions.
// Last is the mean drop at the latest tick; Value averages it over all
// observed ticks.
type Sag struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(g *cloth.Grid) {
	var sum float64
	var free int
	for i := 0; i < g.Len(); i++ {
		p := g.Point(i)
		if p.Pinned() {
			continue
		}
		sum += p.Pos[1] - g.RestPosition(i)[1]
		free++
	}
	s.last = 0
	if free > 0 {
		s.last = sum / float64(free)
	}
	s.total += s.last
	s.samples++
}

func (s *Sag) Last() float64 { return s.last }

func (s *Sag) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Sag) Reset() {
	s.last = 0
	s.total = 0
	s.samples = 0
}

// Stretch is the largest ratio of current to rest length over live links.
// Value keeps the peak seen since the last reset.
type Stretch struct {
	name string
	last float64
	peak float64
}

func NewStretch() *Stretch {
	return &Stretch{name: "stretch"}
}

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(g *cloth.Grid) {
	s.last = 0
	for i := 0; i < g.Len(); i++ {
		for _, ci := range g.Point(i).Owned() {
			c := g.Link(ci)
			if c.RestLength == 0 {
				continue
			}
			d := g.Point(c.A).Pos.Sub(g.Point(c.B).Pos).Len()
			s.last = math.Max(s.last, d/c.RestLength)
		}
	}
	s.peak = math.Max(s.peak, s.last)
}

func (s *Stretch) Last() float64  { return s.last }
func (s *Stretch) Value() float64 { return s.peak }

func (s *Stretch) Reset() {
	s.last = 0
	s.peak = 0
}

// Motion is the mean per-tick displacement of free points, a rough
// measure of how much the cloth is still moving.
type Motion struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewMotion() *Motion {
	return &Motion{name: "motion"}
}

func (m *Motion) Name() string { return m.name }

func (m *Motion) Observe(g *cloth.Grid) {
	var sum float64
	var free int
	for i := 0; i < g.Len(); i++ {
		p := g.Point(i)
		if p.Pinned() {
			continue
		}
		sum += p.Pos.Sub(p.Prev).Len()
		free++
	}
	m.last = 0
	if free > 0 {
		m.last = sum / float64(free)
	}
	m.total += m.last
	m.samples++
}

func (m *Motion) Last() float64 { return m.last }

func (m *Motion) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Motion) Reset() {
	m.last = 0
	m.total = 0
	m.samples = 0
}
