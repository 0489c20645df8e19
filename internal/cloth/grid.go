package cloth

import "github.com/go-gl/mathgl/mgl64"

// Grid is a rectangular lattice of points wired with distance links. It
// owns every point and link for its whole life; resetting a simulation
// builds a new Grid rather than emptying this one.
type Grid struct {
	params Params
	origin mgl64.Vec2
	points []Point
	links  []Constraint
	ticks  int
}

// Stats summarises one Update.
type Stats struct {
	Torn int // links severed by over-stretch
	Cut  int // links removed by the pointer
}

// New builds a (Width+1) x (Height+1) lattice whose top-left point sits
// at origin. Point (x, y) owns a link to (x-1, y) when x > 0 and one to
// (x, y-1) when y > 0. The top row is pinned in place when PinTopRow is
// set. Identical inputs always yield an identical topology.
func New(p Params, origin mgl64.Vec2) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cols := p.Width + 1
	g := &Grid{
		params: p,
		origin: origin,
		points: make([]Point, 0, PointCount(p.Width, p.Height)),
		links:  make([]Constraint, 0, LinkCount(p.Width, p.Height)),
	}

	for y := 0; y <= p.Height; y++ {
		for x := 0; x <= p.Width; x++ {
			pos := mgl64.Vec2{origin[0] + float64(x)*p.Spacing, origin[1] + float64(y)*p.Spacing}
			i := len(g.points)
			g.points = append(g.points, Point{Pos: pos, Prev: pos})

			if x != 0 {
				g.link(i, i-1)
			}
			if y == 0 && p.PinTopRow {
				g.points[i].Pin(pos)
			}
			if y != 0 {
				g.link(i, x+(y-1)*cols)
			}
		}
	}

	return g, nil
}

func (g *Grid) link(owner, other int) {
	ci := len(g.links)
	g.links = append(g.links, Constraint{A: owner, B: other, RestLength: g.params.Spacing})
	g.points[owner].attach(ci)
}

// Update advances the grid by one tick: Accuracy relaxation passes over
// every point, then one integration of every point. Both sweeps walk the
// points from the highest index down.
func (g *Grid) Update(ptr Pointer, b Bounds) Stats {
	var st Stats
	for pass := 0; pass < g.params.Accuracy; pass++ {
		for i := len(g.points) - 1; i >= 0; i-- {
			st.Torn += g.RelaxPoint(i, b)
		}
	}
	for i := len(g.points) - 1; i >= 0; i-- {
		st.Cut += g.IntegratePoint(i, g.params.Dt, ptr)
	}
	g.ticks++
	return st
}

// RelaxPoint snaps a pinned point to its pin, or resolves the point's
// owned links newest first and reflects it back inside b. It returns the
// number of links that tore.
func (g *Grid) RelaxPoint(i int, b Bounds) (torn int) {
	p := &g.points[i]
	if p.pin != nil {
		p.Pos = *p.pin
		return 0
	}

	for k := len(p.owned) - 1; k >= 0; k-- {
		if g.ResolveLink(p.owned[k]) {
			torn++
		}
	}

	p.Pos = b.Reflect(p.Pos)
	return torn
}

// IntegratePoint applies pointer interaction and gravity to point i and
// takes one damped Verlet step of length dt. It returns the number of
// links removed by a cut.
//
// A primary press within MouseInfluence rewrites Prev so the pointer's
// motion shows up as velocity; any other button within MouseCut drops the
// point's own links. A pinned point still reacts to cuts but stays at its
// pin: it takes no gravity step, so neighbours start the next relaxation
// from an exact pin rather than a sagged one, and trajectories are not
// bit-identical to a scheme that only snaps pins during relaxation.
func (g *Grid) IntegratePoint(i int, dt float64, ptr Pointer) (cut int) {
	p := &g.points[i]

	if ptr.Pressed {
		dist := distance(p.Pos, ptr.Pos)
		if ptr.Button == ButtonPrimary {
			if dist < g.params.MouseInfluence {
				p.Prev = p.Pos.Sub(ptr.Delta().Mul(DragGain))
			}
		} else if dist < g.params.MouseCut {
			cut = p.cut()
		}
	}

	if p.pin != nil {
		p.Pos, p.Prev = *p.pin, *p.pin
		p.impulse = mgl64.Vec2{}
		return cut
	}

	p.AddForce(mgl64.Vec2{0, g.params.Gravity})

	dt2 := dt * dt
	next := p.Pos.
		Add(p.Pos.Sub(p.Prev).Mul(Damping)).
		Add(p.impulse.Mul(0.5).Mul(dt2))

	p.Prev = p.Pos
	p.Pos = next
	p.impulse = mgl64.Vec2{}
	return cut
}

// Retune swaps in new non-geometric parameters. Geometry changes need a
// fresh grid and are rejected with ErrGeometryChange.
func (g *Grid) Retune(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !g.params.SameGeometry(p) {
		return ErrGeometryChange
	}
	g.params = p
	return nil
}

func (g *Grid) Params() Params {
	return g.params
}

// Origin is the construction position of point (0, 0).
func (g *Grid) Origin() mgl64.Vec2 {
	return g.origin
}

// Ticks counts completed Update calls.
func (g *Grid) Ticks() int {
	return g.ticks
}

func (g *Grid) Cols() int { return g.params.Width + 1 }
func (g *Grid) Rows() int { return g.params.Height + 1 }
func (g *Grid) Len() int  { return len(g.points) }

// Index returns the arena index of lattice coordinate (x, y).
func (g *Grid) Index(x, y int) int {
	return x + y*g.Cols()
}

// Point returns a pointer into the arena. It stays valid for the grid's
// lifetime.
func (g *Grid) Point(i int) *Point {
	return &g.points[i]
}

// Points exposes the arena for read-only iteration.
func (g *Grid) Points() []Point {
	return g.points
}

// Link returns the record of link ci, live or not.
func (g *Grid) Link(ci int) Constraint {
	return g.links[ci]
}

// LinkCount is the number of links the grid was built with.
func (g *Grid) LinkCount() int {
	return len(g.links)
}

// LiveLinks counts links still held by some owner.
func (g *Grid) LiveLinks() int {
	n := 0
	for i := range g.points {
		n += len(g.points[i].owned)
	}
	return n
}

// RestPosition is where point i was placed at construction.
func (g *Grid) RestPosition(i int) mgl64.Vec2 {
	cols := g.Cols()
	x, y := i%cols, i/cols
	return mgl64.Vec2{g.origin[0] + float64(x)*g.params.Spacing, g.origin[1] + float64(y)*g.params.Spacing}
}

// Segments calls fn with the endpoints of every live link, walking owners
// from the highest index down.
func (g *Grid) Segments(fn func(a, b mgl64.Vec2)) {
	for i := len(g.points) - 1; i >= 0; i-- {
		p := &g.points[i]
		for k := len(p.owned) - 1; k >= 0; k-- {
			c := g.links[p.owned[k]]
			fn(g.points[c.A].Pos, g.points[c.B].Pos)
		}
	}
}

// Links collects the draw data of every live link.
func (g *Grid) Links() []Segment {
	segs := make([]Segment, 0, g.LiveLinks())
	g.Segments(func(a, b mgl64.Vec2) {
		segs = append(segs, Segment{A: a, B: b})
	})
	return segs
}

// FirstNonFinite returns the index of the first point holding a NaN or
// infinite coordinate.
func (g *Grid) FirstNonFinite() (int, bool) {
	for i := range g.points {
		if !g.points[i].Finite() {
			return i, true
		}
	}
	return -1, false
}
