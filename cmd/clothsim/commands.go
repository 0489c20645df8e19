package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
)

// headless builds a simulation with the default metrics and runs it
// unpaced for the configured tick count.
func headless(cmd *cobra.Command) (*config.Config, *sim.Simulation, *sim.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Run.Ticks <= 0 {
		return nil, nil, nil, fmt.Errorf("ticks must be positive for a headless run")
	}

	s, err := newSimulation(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, m := range metrics.Defaults(cfg.Space().Bounds()) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := s.Run(ctx, sim.RunConfig{Ticks: cfg.Run.Ticks})
	return cfg, s, result, err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, _, result, err := headless(cmd)
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("stopped early: %v\n", err)
	}

	p := cfg.Params()
	fmt.Printf("run id: %s\n", export.NewRunID())
	fmt.Printf("grid: %dx%d points, %d links\n", p.Width+1, p.Height+1, cloth.LinkCount(p.Width, p.Height))
	fmt.Printf("completed %d ticks in %v\n", result.Ticks, result.Elapsed)
	fmt.Printf("torn: %d  cut: %d  live: %d\n", result.Torn, result.Cut, result.Live)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range metrics.Names() {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	title := "clothsim"
	if preset != "" {
		title += " :: " + preset
	}
	return viz.Run(s, title, cfg.Run.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	return gui.Run(s, "clothsim", float32(scale), cfg.Run.FPS)
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, _, result, err := headless(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("ticks: %d\n\n", result.Ticks)
	for _, name := range plotKeys {
		data, ok := result.Samples[name]
		if !ok {
			return fmt.Errorf("unknown metric %q (available: %s)", name, strings.Join(metrics.Names(), ", "))
		}
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs tick"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, _, result, err := headless(cmd)
	if err != nil {
		return err
	}

	p := cfg.Params()
	sag := result.Samples["sag"]
	if len(sag) < 4 {
		return fmt.Errorf("need at least 4 ticks to analyze, got %d", len(sag))
	}

	ps := analysis.PowerSpectrum(sag)
	plotData := ps
	if len(plotData) > 8 {
		plotData = ps[:len(ps)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (sag)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(sag, p.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if settled := analysis.SettleTick(result.Samples["motion"], 1e-3); settled >= 0 {
		fmt.Printf("settled at tick %d (%.2f s)\n", settled, float64(settled)*p.Dt)
	} else {
		fmt.Println("still moving at end of run")
	}

	lambda, err := analysis.Separation(p, cfg.Space(), cfg.Run.Ticks, 0.5)
	if err != nil {
		return err
	}
	fmt.Printf("perturbation growth rate: %.3f /s\n", lambda)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, _, result, err := headless(cmd)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, result, metrics.Names())
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, _, result, err := headless(cmd)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, export.NewRunData(preset, cfg.Params(), result), samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, s, _, err := headless(cmd)
	if err != nil {
		return err
	}
	fmt.Println(export.GridToSVG(s.Grid(), cfg.Space(), scale, "#f0e6d2"))
	return nil
}

func benchGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sizes := [][2]int{{10, 10}, {20, 15}, {40, 25}, {80, 50}}
	accuracies := []int{1, 3, 5}
	n := cfg.Run.Ticks
	if n <= 0 {
		n = config.DefaultTicks
	}

	fmt.Printf("benchmarking %d ticks per case\n\n", n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPOINTS\tLINKS\tACCURACY\tTIME\tTICKS/SEC")

	for _, size := range sizes {
		for _, acc := range accuracies {
			p := cfg.Params()
			p.Width, p.Height, p.Accuracy = size[0], size[1], acc

			s, err := sim.New(p, cfg.Space())
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(context.Background(), sim.RunConfig{Ticks: n})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%d\t%v\t%.0f\n",
				size[0], size[1], cloth.PointCount(size[0], size[1]), cloth.LinkCount(size[0], size[1]),
				acc, elapsed.Round(time.Microsecond), float64(result.Ticks)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Run.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive for a sweep")
	}
	events, err := cfg.Events()
	if err != nil {
		return err
	}

	bounds := cfg.Space().Bounds()
	values := analysis.Linspace(from, to, steps)
	runs, err := sim.Sweep(context.Background(), cfg.Params(), cfg.Space(), knob, values,
		sim.RunConfig{Ticks: cfg.Run.Ticks}, events,
		func() []sim.Metric { return metrics.Defaults(bounds) })
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %d values, %d ticks each\n\n", knob, len(values), cfg.Run.Ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTORN\tCUT\tLIVE\t%s\n", strings.ToUpper(knob), strings.ToUpper(response))
	for _, run := range runs {
		if run.Err != nil {
			fmt.Fprintf(w, "%.3f\terror: %v\t\t\t\n", run.Value, run.Err)
			continue
		}
		r := run.Result
		fmt.Fprintf(w, "%.3f\t%d\t%d\t%d\t%.4f\n", run.Value, r.Torn, r.Cut, r.Live, r.Metrics[response])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if pts := analysis.Response(runs, response); len(pts) > 1 {
		fmt.Println()
		fmt.Print(analysis.ResponseToASCII(pts, 60, 12))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tACCURACY\tSPACING\tTEAR\tTICKS\tSCRIPT")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%g\t%g\t%d\t%d\n",
			name, c.Cloth.ClothWidth, c.Cloth.ClothHeight, c.Cloth.PhysicsAccuracy,
			c.Cloth.Spacing, c.Cloth.TearDistance, c.Run.Ticks, len(c.Script))
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
