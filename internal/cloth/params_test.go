package cloth

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Params)
		field string
	}{
		{"zero accuracy", func(p *Params) { p.Accuracy = 0 }, "physics_accuracy"},
		{"negative width", func(p *Params) { p.Width = -1 }, "cloth_width"},
		{"negative height", func(p *Params) { p.Height = -2 }, "cloth_height"},
		{"zero spacing", func(p *Params) { p.Spacing = 0 }, "spacing"},
		{"negative spacing", func(p *Params) { p.Spacing = -4 }, "spacing"},
		{"zero tear", func(p *Params) { p.TearDistance = 0 }, "tear_distance"},
		{"negative influence", func(p *Params) { p.MouseInfluence = -1 }, "mouse_influence"},
		{"negative cut", func(p *Params) { p.MouseCut = -1 }, "mouse_cut"},
		{"zero dt", func(p *Params) { p.Dt = 0 }, "dt"},
		{"nan gravity", func(p *Params) { p.Gravity = math.NaN() }, "gravity"},
		{"inf start", func(p *Params) { p.StartY = math.Inf(1) }, "start_y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mod(&p)

			err := p.Validate()
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParamError, got %T", err)
			}
			if pe.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, pe.Field)
			}
		})
	}
}

func TestValidateAcceptsEdgeValues(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 0, 0
	p.Gravity = -50
	p.MouseCut, p.MouseInfluence = 0, 0
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid params, got %v", err)
	}
}

func TestSameGeometry(t *testing.T) {
	p := DefaultParams()
	q := p
	q.Gravity = 1
	q.TearDistance = 10
	if !p.SameGeometry(q) {
		t.Error("physics-only change reported as geometry change")
	}
	q.Spacing = 9
	if p.SameGeometry(q) {
		t.Error("spacing change not detected")
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1200, 1200},
		{0.0025, 0.0025},
		{0.0037, 0.0025},
		{-0.0037, -0.0025},
		{0.00249, 0.0025},
		{0.0012, 0},
		{1.2345, 1.235},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Quantize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanvas(t *testing.T) {
	c := Canvas{Width: 500, Height: 300}
	if b := c.Bounds(); b.MaxX != 499 || b.MaxY != 299 {
		t.Errorf("unexpected bounds %+v", b)
	}
	p := DefaultParams()
	o := c.Origin(p)
	if o[0] != 250-40*4/2 || o[1] != 30 {
		t.Errorf("unexpected origin %v", o)
	}
}

func TestPointerMoves(t *testing.T) {
	var p Pointer
	p.MoveTo(10, 20)
	p.Press(ButtonOther, 15, 25)
	if !p.Pressed || p.Button != ButtonOther {
		t.Fatalf("press not recorded: %+v", p)
	}
	if d := p.Delta(); d[0] != 5 || d[1] != 5 {
		t.Errorf("expected delta (5,5), got %v", d)
	}
	p.Release()
	if p.Pressed {
		t.Error("still pressed after release")
	}

	for _, name := range []string{"left", "right", "cut", "primary"} {
		if _, ok := ParseButton(name); !ok {
			t.Errorf("ParseButton(%q) failed", name)
		}
	}
	if _, ok := ParseButton("thumb"); ok {
		t.Error("unknown button accepted")
	}
}

func TestKnobs(t *testing.T) {
	p := DefaultParams()
	for _, name := range Knobs {
		v, ok := p.Get(name)
		if !ok {
			t.Errorf("Get(%q) failed", name)
			continue
		}
		q, err := p.With(name, v)
		if err != nil {
			t.Errorf("With(%q): %v", name, err)
		}
		if q != p {
			t.Errorf("With(%q, %v) changed params", name, v)
		}
	}

	q, err := p.With("physics_accuracy", 6.6)
	if err != nil || q.Accuracy != 7 {
		t.Errorf("expected rounded accuracy 7, got %d (%v)", q.Accuracy, err)
	}
	if _, err := p.With("stiffness", 1); err == nil {
		t.Error("expected error for unknown knob")
	}
	if _, ok := p.Get("stiffness"); ok {
		t.Error("unknown knob reported present")
	}
}
