package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a simulated particle. Velocity is implied by Pos - Prev.
type Point struct {
	Pos  mgl64.Vec2
	Prev mgl64.Vec2

	impulse mgl64.Vec2
	pin     *mgl64.Vec2
	owned   []int // link indices, insertion order
}

// Pin fixes the point at target; relaxation will keep forcing it there.
func (p *Point) Pin(target mgl64.Vec2) {
	p.pin = &target
}

func (p *Point) Unpin() {
	p.pin = nil
}

func (p *Point) Pinned() bool {
	return p.pin != nil
}

// PinTarget returns the pin position, if any.
func (p *Point) PinTarget() (mgl64.Vec2, bool) {
	if p.pin == nil {
		return mgl64.Vec2{}, false
	}
	return *p.pin, true
}

// AddForce accumulates f into the pending impulse, quantised per component.
func (p *Point) AddForce(f mgl64.Vec2) {
	p.impulse = mgl64.Vec2{
		Quantize(p.impulse[0] + f[0]),
		Quantize(p.impulse[1] + f[1]),
	}
}

// Impulse returns the force accumulated since the last integration.
func (p *Point) Impulse() mgl64.Vec2 {
	return p.impulse
}

// Owned returns the indices of the links this point owns. The slice must
// not be modified.
func (p *Point) Owned() []int {
	return p.owned
}

func (p *Point) attach(link int) {
	p.owned = append(p.owned, link)
}

func (p *Point) detach(link int) bool {
	for k, l := range p.owned {
		if l == link {
			p.owned = append(p.owned[:k], p.owned[k+1:]...)
			return true
		}
	}
	return false
}

// cut drops every owned link and returns how many there were.
func (p *Point) cut() int {
	n := len(p.owned)
	p.owned = nil
	return n
}

// Finite reports whether both positions hold finite coordinates.
func (p *Point) Finite() bool {
	for _, v := range [...]float64{p.Pos[0], p.Pos[1], p.Prev[0], p.Prev[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func distance(a, b mgl64.Vec2) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math.Sqrt(dx*dx + dy*dy)
}
