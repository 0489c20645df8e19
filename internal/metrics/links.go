package metrics

import "github.com/san-kum/clothsim/internal/cloth"

type LiveLinks struct {
	name string
	last float64
}

func NewLiveLinks() *LiveLinks {
	return &LiveLinks{name: "live_links"}
}

func (l *LiveLinks) Name() string { return l.name }

func (l *LiveLinks) Observe(g *cloth.Grid) {
	l.last = float64(g.LiveLinks())
}

func (l *LiveLinks) Last() float64  { return l.last }
func (l *LiveLinks) Value() float64 { return l.last }
func (l *LiveLinks) Reset()         { l.last = 0 }

// TornLinks counts links that are gone, whether torn or cut, relative to
// the freshly built grid.
type TornLinks struct {
	name string
	last float64
}

func NewTornLinks() *TornLinks {
	return &TornLinks{name: "torn_links"}
}

func (t *TornLinks) Name() string { return t.name }

func (t *TornLinks) Observe(g *cloth.Grid) {
	t.last = float64(g.LinkCount() - g.LiveLinks())
}

func (t *TornLinks) Last() float64  { return t.last }
func (t *TornLinks) Value() float64 { return t.last }
func (t *TornLinks) Reset()         { t.last = 0 }
