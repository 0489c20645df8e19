package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

type countingMetric struct {
	observed int
}

func (c *countingMetric) Name() string          { return "count" }
func (c *countingMetric) Observe(g *cloth.Grid) { c.observed++ }
func (c *countingMetric) Last() float64         { return float64(c.observed) }
func (c *countingMetric) Value() float64        { return float64(c.observed) }
func (c *countingMetric) Reset()                { c.observed = 0 }

var space = cloth.Canvas{Width: 500, Height: 300}

func smallParams() cloth.Params {
	p := cloth.DefaultParams()
	p.Width, p.Height, p.Spacing = 4, 4, 10
	return p
}

var _ = Describe("Simulation", func() {
	var (
		s   *sim.Simulation
		err error
	)

	BeforeEach(func() {
		s, err = sim.New(smallParams(), space)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("builds a grid centred on the canvas", func() {
			g := s.Grid()
			Expect(g.Len()).To(Equal(25))
			Expect(g.LinkCount()).To(Equal(40))
			Expect(g.Point(0).Pos).To(Equal(mgl64.Vec2{230, 30}))
		})

		It("rejects invalid parameters", func() {
			p := smallParams()
			p.Accuracy = 0
			_, err := sim.New(p, space)
			Expect(err).To(MatchError(cloth.ErrInvalidParams))
		})
	})

	Describe("Tick", func() {
		It("counts ticks and reports live links", func() {
			r, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Tick).To(Equal(1))
			Expect(r.Live).To(Equal(40))
			Expect(s.TickCount()).To(Equal(1))
		})

		It("makes the cloth sag while the top row holds", func() {
			top := s.Grid().Point(2).Pos
			bottom := s.Grid().Point(22).Pos[1]
			for i := 0; i < 60; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.Grid().Point(2).Pos).To(Equal(top))
			Expect(s.Grid().Point(22).Pos[1]).To(BeNumerically(">", bottom))
			Expect(s.Grid().LiveLinks()).To(Equal(40))
		})

		It("feeds observers and metrics", func() {
			m := &countingMetric{}
			s.AddMetric(m)
			var reports []sim.TickReport
			s.AddObserver(sim.ObserverFunc(func(_ *cloth.Grid, r sim.TickReport) {
				reports = append(reports, r)
			}))

			for i := 0; i < 3; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(m.observed).To(Equal(3))
			Expect(reports).To(HaveLen(3))
			Expect(reports[2].Tick).To(Equal(3))
		})

		It("reports divergence", func() {
			s.Grid().Point(12).Pos[0] = math.Inf(1)
			_, err := s.Tick()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, sim.ErrDiverged)).To(BeTrue())

			var te *sim.TickError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Tick).To(Equal(1))
		})

		It("skips the divergence check when validation is off", func() {
			s.SetValidate(false)
			s.Grid().Point(12).Pos[0] = math.NaN()
			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("pointer input", func() {
		It("cuts the links of the point under an other-button press", func() {
			target := s.Grid().Index(2, 2)
			pos := s.Grid().Point(target).Pos
			s.SetPointer(cloth.Pointer{Pressed: true, Button: cloth.ButtonOther, Pos: pos, Prev: pos})

			r, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Cut).To(Equal(2))
			Expect(s.Grid().Point(target).Owned()).To(BeEmpty())
			Expect(r.Live).To(Equal(38))
		})

		It("drags points near a primary press", func() {
			target := s.Grid().Index(2, 4)
			before := s.Grid().Point(target).Pos
			s.UpdatePointer(func(p *cloth.Pointer) {
				p.Pos = before
				p.Press(cloth.ButtonPrimary, before[0]+6, before[1])
			})

			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Grid().Point(target).Pos[0]).To(BeNumerically(">", before[0]))
		})

		It("returns the pointer snapshot", func() {
			s.UpdatePointer(func(p *cloth.Pointer) { p.Press(cloth.ButtonOther, 10, 20) })
			Expect(s.Pointer().Pressed).To(BeTrue())
			Expect(s.Pointer().Pos).To(Equal(mgl64.Vec2{10, 20}))
		})
	})

	Describe("Reconfigure", func() {
		It("applies physics changes at the next tick without rebuilding", func() {
			g := s.Grid()
			p := smallParams()
			p.Gravity = 0
			p.Accuracy = 6
			Expect(s.Reconfigure(p)).To(Succeed())

			Expect(g.Params().Accuracy).To(Equal(3))
			Expect(s.Params().Accuracy).To(Equal(6))

			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Grid()).To(BeIdenticalTo(g))
			Expect(g.Params().Accuracy).To(Equal(6))
		})

		It("rebuilds the grid when the geometry changes", func() {
			g := s.Grid()
			p := smallParams()
			p.Width = 6
			Expect(s.Reconfigure(p)).To(Succeed())

			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Grid()).NotTo(BeIdenticalTo(g))
			Expect(s.Grid().Cols()).To(Equal(7))
		})

		It("starts ticks and metrics over after a geometry rebuild", func() {
			counter := &countingMetric{}
			s.AddMetric(counter)
			for i := 0; i < 3; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(counter.observed).To(Equal(3))

			s.UpdatePointer(func(p *cloth.Pointer) { p.Press(cloth.ButtonOther, 0, 0) })
			p := smallParams()
			p.Height = 6
			Expect(s.Reconfigure(p)).To(Succeed())

			r, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Tick).To(Equal(1))
			Expect(s.TickCount()).To(Equal(1))
			Expect(counter.observed).To(Equal(1))
			Expect(r.Pointer.Pressed).To(BeFalse())
			Expect(s.Grid().Rows()).To(Equal(7))
		})

		It("rejects invalid parameters immediately", func() {
			p := smallParams()
			p.Spacing = -1
			Expect(s.Reconfigure(p)).To(MatchError(cloth.ErrInvalidParams))
			Expect(s.Params().Spacing).To(Equal(10.0))
		})
	})

	Describe("Reset", func() {
		It("replaces the grid with a fresh one", func() {
			pos := s.Grid().Point(12).Pos
			s.SetPointer(cloth.Pointer{Pressed: true, Button: cloth.ButtonOther, Pos: pos, Prev: pos})
			for i := 0; i < 5; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			old := s.Grid()
			Expect(old.LiveLinks()).To(BeNumerically("<", 40))

			Expect(s.Reset()).To(Succeed())
			Expect(s.Grid()).NotTo(BeIdenticalTo(old))
			Expect(s.Grid().LiveLinks()).To(Equal(40))
			Expect(s.TickCount()).To(Equal(0))
			Expect(s.Pointer().Pressed).To(BeFalse())
		})
	})

	Describe("Run", func() {
		It("collects samples per tick", func() {
			s.AddMetric(&countingMetric{})
			res, err := s.Run(context.Background(), sim.RunConfig{Ticks: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(20))
			Expect(res.Samples["count"]).To(HaveLen(20))
			Expect(res.Samples["count"][19]).To(Equal(20.0))
			Expect(res.Metrics["count"]).To(Equal(20.0))
			Expect(res.Live).To(Equal(40))
		})

		It("rejects bad run configs", func() {
			_, err := s.Run(context.Background(), sim.RunConfig{Ticks: 0})
			Expect(err).To(HaveOccurred())
			_, err = s.Run(context.Background(), sim.RunConfig{Ticks: 5, FPS: -1})
			Expect(err).To(HaveOccurred())
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err := s.Run(ctx, sim.RunConfig{Ticks: 100})
			Expect(err).To(MatchError(sim.ErrCanceled))
			Expect(res.Ticks).To(Equal(0))
		})

		It("paces ticks by frame rate", func() {
			start := time.Now()
			res, err := s.Run(context.Background(), sim.RunConfig{Ticks: 5, FPS: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(5))
			Expect(time.Since(start)).To(BeNumerically(">=", 40*time.Millisecond))
		})
	})

	Describe("Script", func() {
		It("replays a cut gesture across the cloth", func() {
			y := s.Grid().Point(s.Grid().Index(0, 2)).Pos[1]
			s.SetScript(sim.NewScript([]sim.ScriptEvent{
				{Tick: 0, Action: sim.ActionPress, Button: cloth.ButtonOther, X: 230, Y: y},
				{Tick: 1, Action: sim.ActionMove, X: 240, Y: y},
				{Tick: 2, Action: sim.ActionMove, X: 250, Y: y},
				{Tick: 3, Action: sim.ActionMove, X: 260, Y: y},
				{Tick: 4, Action: sim.ActionMove, X: 270, Y: y},
				{Tick: 5, Action: sim.ActionRelease},
			}))

			res, err := s.Run(context.Background(), sim.RunConfig{Ticks: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Cut).To(BeNumerically(">", 0))
			Expect(s.Pointer().Pressed).To(BeFalse())
		})

		It("starts a scripted drag with no pointer travel", func() {
			target := s.Grid().Index(2, 4)
			rest := s.Grid().Point(target).Pos
			s.SetScript(sim.NewScript([]sim.ScriptEvent{
				{Tick: 0, Action: sim.ActionPress, Button: cloth.ButtonPrimary, X: 250, Y: 70},
				{Tick: 1, Action: sim.ActionMove, X: 250, Y: 74},
				{Tick: 2, Action: sim.ActionMove, X: 250, Y: 78},
				{Tick: 3, Action: sim.ActionMove, X: 250, Y: 82},
				{Tick: 4, Action: sim.ActionMove, X: 250, Y: 86},
				{Tick: 5, Action: sim.ActionMove, X: 250, Y: 90},
				{Tick: 6, Action: sim.ActionMove, X: 250, Y: 90},
				{Tick: 10, Action: sim.ActionRelease},
			}))

			r, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Pointer.Pressed).To(BeTrue())
			Expect(r.Pointer.Delta()).To(Equal(mgl64.Vec2{}))

			torn := r.Torn
			for i := 1; i < 8; i++ {
				r, err = s.Tick()
				Expect(err).NotTo(HaveOccurred())
				torn += r.Torn
			}
			Expect(torn).To(BeZero())
			Expect(s.Grid().LiveLinks()).To(Equal(40))

			still, err := sim.New(smallParams(), space)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 8; i++ {
				_, err := still.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(rest[1]).To(Equal(70.0))
			Expect(s.Grid().Point(target).Pos[1]).To(BeNumerically(">", still.Grid().Point(target).Pos[1]+5))
		})

		It("tugs the cloth from the tug preset without tearing it", func() {
			cfg := config.GetPreset("tug")
			Expect(cfg).NotTo(BeNil())
			events, err := cfg.Events()
			Expect(err).NotTo(HaveOccurred())

			tug, err := sim.New(cfg.Params(), cfg.Space())
			Expect(err).NotTo(HaveOccurred())
			tug.SetScript(sim.NewScript(events))

			res, err := tug.Run(context.Background(), sim.RunConfig{Ticks: 80})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Torn).To(BeZero())
			Expect(res.Live).To(Equal(tug.Grid().LinkCount()))
		})

		It("rewinds on reset", func() {
			sc := sim.NewScript([]sim.ScriptEvent{
				{Tick: 0, Action: sim.ActionPress, X: 1, Y: 1},
				{Tick: 1, Action: sim.ActionRelease},
			})
			s.SetScript(sc)
			for i := 0; i < 2; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(sc.Done()).To(BeTrue())
			Expect(s.Reset()).To(Succeed())
			Expect(sc.Done()).To(BeFalse())
		})
	})
})

var _ = Describe("Sweep", func() {
	It("runs one independent simulation per value", func() {
		runs, err := sim.Sweep(context.Background(), smallParams(), space, "physics_accuracy",
			[]float64{1, 2, 4}, sim.RunConfig{Ticks: 10}, nil,
			func() []sim.Metric { return []sim.Metric{&countingMetric{}} })
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(3))
		for i, run := range runs {
			Expect(run.Err).NotTo(HaveOccurred())
			Expect(run.Params.Accuracy).To(Equal([]int{1, 2, 4}[i]))
			Expect(run.Result.Metrics["count"]).To(Equal(10.0))
		}
	})

	It("rejects unknown knobs and invalid values", func() {
		_, err := sim.Sweep(context.Background(), smallParams(), space, "stiffness",
			[]float64{1}, sim.RunConfig{Ticks: 1}, nil, nil)
		Expect(err).To(HaveOccurred())

		_, err = sim.Sweep(context.Background(), smallParams(), space, "spacing",
			[]float64{-1}, sim.RunConfig{Ticks: 1}, nil, nil)
		Expect(err).To(MatchError(cloth.ErrInvalidParams))
	})
})
