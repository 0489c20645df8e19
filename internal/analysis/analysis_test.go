package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 200)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %f", got)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := []float64{4, 4, 4, 4, 4, 4, 4, 4}
	if got := DominantFrequency(data, 0.016); got != 0 {
		t.Errorf("expected 0 for flat series, got %f", got)
	}
	if got := DominantFrequency([]float64{1}, 0.016); got != 0 {
		t.Errorf("expected 0 for short series, got %f", got)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 50 {
		t.Errorf("expected 50 bins, got %d", len(ps))
	}
}

func TestSettleTick(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want int
	}{
		{"settles", []float64{5, 3, 1, 1, 1}, 2},
		{"still moving", []float64{1, 2, 3, 4}, -1},
		{"flat", []float64{2, 2, 2}, 0},
		{"empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettleTick(tt.data, 0.01); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSeparationDecays(t *testing.T) {
	p := cloth.DefaultParams()
	p.Width, p.Height, p.Spacing = 6, 6, 10
	space := cloth.Canvas{Width: 500, Height: 300}

	lambda, err := Separation(p, space, 200, 0.5)
	if err != nil {
		t.Fatalf("separation: %v", err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		t.Fatalf("expected finite rate, got %f", lambda)
	}
	if lambda >= 0 {
		t.Errorf("expected damped cloth to shrink the nudge, got %f", lambda)
	}
}

func TestSeparationInvalid(t *testing.T) {
	p := cloth.DefaultParams()
	p.Spacing = 0
	_, err := Separation(p, cloth.Canvas{Width: 500, Height: 300}, 10, 1)
	if !errors.Is(err, cloth.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 3, 5)
	want := []float64{1, 1.5, 2, 2.5, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if len(Linspace(2, 9, 1)) != 1 {
		t.Error("expected a single value for one step")
	}
}

func TestResponse(t *testing.T) {
	runs := []sim.SweepRun{
		{Value: 1, Result: &sim.Result{
			Metrics: map[string]float64{"sag": 2},
			Samples: map[string][]float64{"sag": {0, 3, 2}},
		}},
		{Value: 2, Err: errors.New("boom")},
		{Value: 3, Result: &sim.Result{
			Metrics: map[string]float64{"sag": 4},
			Samples: map[string][]float64{"sag": {1, 4}},
		}},
	}

	pts := Response(runs, "sag")
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0].Min != 0 || pts[0].Max != 3 || pts[0].Final != 2 {
		t.Errorf("unexpected first point %+v", pts[0])
	}
	if pts[1].Param != 3 {
		t.Errorf("expected param 3, got %f", pts[1].Param)
	}

	art := ResponseToASCII(pts, 10, 5)
	if strings.Count(art, "\n") != 5 || !strings.Contains(art, "•") {
		t.Errorf("unexpected plot:\n%s", art)
	}
}
