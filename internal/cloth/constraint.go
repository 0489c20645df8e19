package cloth

import "github.com/go-gl/mathgl/mgl64"

// Constraint is a distance link between two points. A is always the owning
// endpoint; B is a plain reference.
type Constraint struct {
	A, B       int
	RestLength float64
}

// Segment is the draw data of a live link.
type Segment struct {
	A, B mgl64.Vec2
}

// ResolveLink applies one corrective pass to link ci, moving both
// endpoints half way toward the rest length. A link stretched past the
// tear distance is removed from its owner's list; the correction of that
// pass is still applied. It reports whether the link tore.
//
// Coincident endpoints have no defined correction direction, so the pass
// is skipped for them and the link survives.
func (g *Grid) ResolveLink(ci int) (torn bool) {
	c := &g.links[ci]
	a, b := &g.points[c.A], &g.points[c.B]

	diff := a.Pos.Sub(b.Pos)
	dist := distance(a.Pos, b.Pos)

	if dist > g.params.TearDistance {
		torn = a.detach(ci)
	}
	if dist == 0 {
		return torn
	}

	ratio := (c.RestLength - dist) / dist
	shift := diff.Mul(ratio * 0.5)

	a.Pos = a.Pos.Add(shift)
	b.Pos = b.Pos.Sub(shift)
	return torn
}
