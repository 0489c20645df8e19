package cloth

import "github.com/go-gl/mathgl/mgl64"

type Button int

const (
	// ButtonPrimary drags points.
	ButtonPrimary Button = iota
	// ButtonOther cuts the links of points under the pointer.
	ButtonOther
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseButton maps a button name to a Button.
func ParseButton(s string) (Button, bool) {
	switch s {
	case "primary", "left", "":
		return ButtonPrimary, true
	case "other", "right", "middle", "cut":
		return ButtonOther, true
	}
	return ButtonPrimary, false
}

// Pointer is the input state a tick consumes, expressed in simulation
// coordinates.
type Pointer struct {
	Pressed bool
	Button  Button
	Pos     mgl64.Vec2
	Prev    mgl64.Vec2
}

// MoveTo records a new pointer location, keeping the old one as Prev.
func (p *Pointer) MoveTo(x, y float64) {
	p.Prev = p.Pos
	p.Pos = mgl64.Vec2{x, y}
}

// Press moves the pointer to (x, y) and holds b down.
func (p *Pointer) Press(b Button, x, y float64) {
	p.Button = b
	p.MoveTo(x, y)
	p.Pressed = true
}

func (p *Pointer) Release() {
	p.Pressed = false
}

// Delta is the pointer travel since the previous move.
func (p Pointer) Delta() mgl64.Vec2 {
	return p.Pos.Sub(p.Prev)
}
