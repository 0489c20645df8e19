package cloth

import (
	"fmt"
	"math"
)

const (
	DefaultDt = 0.016

	// DragGain scales the pointer delta written into a dragged point's
	// previous position.
	DragGain = 1.8

	// Damping is the fraction of implied velocity kept per integration.
	Damping = 0.99
)

// Params holds the physics knobs for one grid. A Params value is never
// mutated by the simulation; retuning swaps in a whole new value between
// ticks.
type Params struct {
	Accuracy       int     // relaxation passes per tick
	Gravity        float64 // downward impulse added every tick
	Width          int     // lattice spans along x
	Height         int     // lattice spans along y
	Spacing        float64 // rest length of every link
	StartY         float64 // y of the top row
	TearDistance   float64 // link length beyond which it severs
	MouseInfluence float64 // drag capture radius
	MouseCut       float64 // cut radius
	Dt             float64 // fixed step fed to every integration
	PinTopRow      bool
}

// DefaultParams returns the reference tuning: a 40x25 sheet hanging from
// its top row.
func DefaultParams() Params {
	return Params{
		Accuracy:       3,
		Gravity:        1200,
		Width:          40,
		Height:         25,
		Spacing:        4,
		StartY:         30,
		TearDistance:   80,
		MouseInfluence: 20,
		MouseCut:       5,
		Dt:             DefaultDt,
		PinTopRow:      true,
	}
}

// Validate rejects parameter sets that cannot produce a meaningful grid.
func (p Params) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"gravity", p.Gravity},
		{"spacing", p.Spacing},
		{"start_y", p.StartY},
		{"tear_distance", p.TearDistance},
		{"mouse_influence", p.MouseInfluence},
		{"mouse_cut", p.MouseCut},
		{"dt", p.Dt},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ParamError{Field: f.name, Value: f.v, Reason: "must be finite"}
		}
	}

	switch {
	case p.Accuracy <= 0:
		return &ParamError{Field: "physics_accuracy", Value: float64(p.Accuracy), Reason: "must be at least one pass"}
	case p.Width < 0:
		return &ParamError{Field: "cloth_width", Value: float64(p.Width), Reason: "must not be negative"}
	case p.Height < 0:
		return &ParamError{Field: "cloth_height", Value: float64(p.Height), Reason: "must not be negative"}
	case p.Spacing <= 0:
		return &ParamError{Field: "spacing", Value: p.Spacing, Reason: "must be positive"}
	case p.TearDistance <= 0:
		return &ParamError{Field: "tear_distance", Value: p.TearDistance, Reason: "must be positive"}
	case p.MouseInfluence < 0:
		return &ParamError{Field: "mouse_influence", Value: p.MouseInfluence, Reason: "must not be negative"}
	case p.MouseCut < 0:
		return &ParamError{Field: "mouse_cut", Value: p.MouseCut, Reason: "must not be negative"}
	case p.Dt <= 0:
		return &ParamError{Field: "dt", Value: p.Dt, Reason: "must be positive"}
	}
	return nil
}

// SameGeometry reports whether q builds the same lattice as p.
func (p Params) SameGeometry(q Params) bool {
	return p.Width == q.Width &&
		p.Height == q.Height &&
		p.Spacing == q.Spacing &&
		p.StartY == q.StartY &&
		p.PinTopRow == q.PinTopRow
}

// PointCount returns the number of points a w x h lattice holds.
func PointCount(w, h int) int {
	return (w + 1) * (h + 1)
}

// LinkCount returns the number of links a freshly built w x h lattice holds.
func LinkCount(w, h int) int {
	return w*(h+1) + (w+1)*h
}

// Knobs lists the parameter names accepted by Get and With.
var Knobs = []string{
	"physics_accuracy",
	"gravity",
	"cloth_width",
	"cloth_height",
	"spacing",
	"start_y",
	"tear_distance",
	"mouse_influence",
	"mouse_cut",
	"dt",
}

// Get returns the named knob as a float.
func (p Params) Get(name string) (float64, bool) {
	switch name {
	case "physics_accuracy":
		return float64(p.Accuracy), true
	case "gravity":
		return p.Gravity, true
	case "cloth_width":
		return float64(p.Width), true
	case "cloth_height":
		return float64(p.Height), true
	case "spacing":
		return p.Spacing, true
	case "start_y":
		return p.StartY, true
	case "tear_distance":
		return p.TearDistance, true
	case "mouse_influence":
		return p.MouseInfluence, true
	case "mouse_cut":
		return p.MouseCut, true
	case "dt":
		return p.Dt, true
	}
	return 0, false
}

// With returns a copy of p with the named knob set. Integer knobs are
// rounded to the nearest whole value.
func (p Params) With(name string, v float64) (Params, error) {
	switch name {
	case "physics_accuracy":
		p.Accuracy = int(math.Round(v))
	case "gravity":
		p.Gravity = v
	case "cloth_width":
		p.Width = int(math.Round(v))
	case "cloth_height":
		p.Height = int(math.Round(v))
	case "spacing":
		p.Spacing = v
	case "start_y":
		p.StartY = v
	case "tear_distance":
		p.TearDistance = v
	case "mouse_influence":
		p.MouseInfluence = v
	case "mouse_cut":
		p.MouseCut = v
	case "dt":
		p.Dt = v
	default:
		return p, fmt.Errorf("cloth: unknown parameter %q", name)
	}
	return p, nil
}
