package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

var (
	configFile string
	preset     string

	ticks     int
	frameRate int
	accuracy  int
	gravity   float64
	width     int
	height    int
	spacing   float64
	tear      float64
	influence float64
	cut       float64
	noPin     bool

	scale    float64
	samples  bool
	plotKeys []string

	knob     string
	from     float64
	to       float64
	steps    int
	response string

	grid     []string
	maximize bool
)

// main wires the cobra command tree. With no subcommand the terminal host
// starts.
func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "interactive cloth simulation",
		Long:  "clothsim hangs a grid of Verlet points from its top row and lets you drag, cut and tear it.",
		RunE:  runLive,
	}
	addClothFlags(rootCmd.PersistentFlags())

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run in the terminal with mouse input",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().Float64Var(&scale, "scale", 2, "window pixels per simulation unit")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run headless and plot metric series",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&plotKeys, "metric", []string{"sag", "stretch", "live_links"}, "metrics to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency and settling analysis of a run",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "run headless and write per-tick metrics as CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "run headless and write a JSON summary",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&samples, "samples", false, "include per-tick samples")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run headless and write the final frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&scale, "scale", 2, "pixels per simulation unit")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick throughput across grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchGrid,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per parameter value",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	sweepCmd.Flags().StringVar(&knob, "knob", "tear_distance", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&from, "from", 20, "first value")
	sweepCmd.Flags().Float64Var(&to, "to", 120, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 6, "number of values")
	sweepCmd.Flags().StringVar(&response, "metric", "torn_links", "metric to report")

	tuneCmd := &cobra.Command{
		Use:     "tune",
		Short:   "grid search parameters against a metric",
		Example: "  clothsim tune --grid physics_accuracy=1,2,4 --grid spacing=3,4,5 --metric stretch",
		Args:    cobra.NoArgs,
		RunE:    tuneParams,
	}
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter and values as name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&response, "metric", "stretch", "metric to optimise")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", false, "maximise instead of minimise")
	_ = tuneCmd.MarkFlagRequired("grid")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, benchCmd, sweepCmd, tuneCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: preset first, then the config
// file, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.Run.FPS = frameRate
	}
	if flags.Changed("accuracy") {
		cfg.Cloth.PhysicsAccuracy = accuracy
	}
	if flags.Changed("gravity") {
		cfg.Cloth.Gravity = gravity
	}
	if flags.Changed("width") {
		cfg.Cloth.ClothWidth = width
	}
	if flags.Changed("height") {
		cfg.Cloth.ClothHeight = height
	}
	if flags.Changed("spacing") {
		cfg.Cloth.Spacing = spacing
	}
	if flags.Changed("tear") {
		cfg.Cloth.TearDistance = tear
	}
	if flags.Changed("influence") {
		cfg.Cloth.MouseInfluence = influence
	}
	if flags.Changed("cut") {
		cfg.Cloth.MouseCut = cut
	}
	if flags.Changed("no-pin") {
		cfg.Cloth.PinTopRow = !noPin
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulation(cfg *config.Config) (*sim.Simulation, error) {
	s, err := sim.New(cfg.Params(), cfg.Space())
	if err != nil {
		return nil, err
	}
	s.SetValidate(cfg.Run.ValidateState)

	events, err := cfg.Events()
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		s.SetScript(sim.NewScript(events))
	}
	return s, nil
}
