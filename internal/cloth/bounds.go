package cloth

import "github.com/go-gl/mathgl/mgl64"

// Bounds are the reflecting walls [1, MaxX] x [1, MaxY].
type Bounds struct {
	MaxX, MaxY float64
}

// Reflect mirrors an out-of-bounds coordinate back across the wall it
// crossed. Coordinates inside the walls are returned unchanged.
func (b Bounds) Reflect(v mgl64.Vec2) mgl64.Vec2 {
	x, y := v[0], v[1]
	if x > b.MaxX {
		x = 2*b.MaxX - x
	} else if x < 1 {
		x = 2 - x
	}
	if y < 1 {
		y = 2 - y
	} else if y > b.MaxY {
		y = 2*b.MaxY - y
	}
	return mgl64.Vec2{x, y}
}

func (b Bounds) Contains(v mgl64.Vec2) bool {
	return v[0] >= 1 && v[0] <= b.MaxX && v[1] >= 1 && v[1] <= b.MaxY
}

// Canvas is the drawing surface the cloth hangs in, in simulation units.
type Canvas struct {
	Width, Height float64
}

// Bounds returns walls one unit inside the surface extent.
func (c Canvas) Bounds() Bounds {
	return Bounds{MaxX: c.Width - 1, MaxY: c.Height - 1}
}

// Origin returns the top-left lattice position that centres a grid built
// from p horizontally on the canvas.
func (c Canvas) Origin(p Params) mgl64.Vec2 {
	return mgl64.Vec2{c.Width/2 - float64(p.Width)*p.Spacing/2, p.StartY}
}
