package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
)

// parseGrid turns "name=v1,v2" specs into parallel name and value lists.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid %q: want name=v1,v2,...", spec)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", spec, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func tuneParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Run.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive for tuning")
	}
	events, err := cfg.Events()
	if err != nil {
		return err
	}

	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	bounds := cfg.Space().Bounds()
	prob := optim.Problem{
		Base:       cfg.Params(),
		Space:      cfg.Space(),
		Run:        sim.RunConfig{Ticks: cfg.Run.Ticks},
		Events:     events,
		NewMetrics: func() []sim.Metric { return metrics.Defaults(bounds) },
		Metric:     response,
		Maximize:   maximize,
	}

	fmt.Printf("searching %d candidates, %d ticks each\n\n", gs.Candidates(), cfg.Run.Ticks)
	best, val, trials, err := gs.Search(context.Background(), prob)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(response))
	for _, tr := range trials {
		cols := make([]string, 0, len(names)+1)
		for _, n := range names {
			v, _ := tr.Params.Get(n)
			cols = append(cols, strconv.FormatFloat(v, 'g', 6, 64))
		}
		if tr.Err != nil {
			cols = append(cols, "error: "+tr.Err.Error())
		} else {
			cols = append(cols, fmt.Sprintf("%.6f", tr.Value))
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", response, val)
	for _, n := range names {
		v, _ := best.Get(n)
		fmt.Printf("  %s = %g\n", n, v)
	}
	return nil
}
