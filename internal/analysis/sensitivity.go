package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Separation estimates how fast a small nudge to one point spreads through
// the cloth, as a log growth rate per second.
//
// Two grids are built from the same parameters. The middle point of the
// bottom row of the second is shifted sideways by perturbation, then both
// run for ticks steps with no pointer. The result averages
// ln(sep(t)/perturbation) over time. A negative value means the nudge
// dies out; a positive one means the cloth amplifies it.
func Separation(p cloth.Params, space cloth.Canvas, ticks int, perturbation float64) (float64, error) {
	if ticks <= 0 || perturbation <= 0 {
		return 0, nil
	}

	a, err := cloth.New(p, space.Origin(p))
	if err != nil {
		return 0, err
	}
	b, err := cloth.New(p, space.Origin(p))
	if err != nil {
		return 0, err
	}

	nudged := b.Index(p.Width/2, p.Height)
	pt := b.Point(nudged)
	pt.Pos = pt.Pos.Add(mgl64.Vec2{perturbation, 0})
	pt.Prev = pt.Prev.Add(mgl64.Vec2{perturbation, 0})

	bounds := space.Bounds()
	sumLog := 0.0
	count := 0

	for i := 0; i < ticks; i++ {
		a.Update(cloth.Pointer{}, bounds)
		b.Update(cloth.Pointer{}, bounds)

		sep := 0.0
		for j := 0; j < a.Len(); j++ {
			d := b.Point(j).Pos.Sub(a.Point(j).Pos)
			sep += d.Dot(d)
		}
		sep = math.Sqrt(sep)

		if sep > 0 {
			sumLog += math.Log(sep / perturbation)
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * p.Dt), nil
}
