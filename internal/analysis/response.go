package analysis

import (
	"strings"

	"github.com/san-kum/clothsim/internal/sim"
)

// ResponsePoint is a metric's outcome for one value of a swept parameter.
type ResponsePoint struct {
	Param float64
	Final float64 // metric Value() at the end of the run
	Min   float64 // smallest per-tick sample
	Max   float64 // largest per-tick sample
}

// Linspace returns steps evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{lo}
	}
	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Response extracts one metric from a sweep. Runs that failed are skipped.
func Response(runs []sim.SweepRun, metric string) []ResponsePoint {
	out := make([]ResponsePoint, 0, len(runs))
	for _, run := range runs {
		if run.Err != nil || run.Result == nil {
			continue
		}
		final, ok := run.Result.Metrics[metric]
		if !ok {
			continue
		}
		pt := ResponsePoint{Param: run.Value, Final: final, Min: final, Max: final}
		for i, v := range run.Result.Samples[metric] {
			if i == 0 || v < pt.Min {
				pt.Min = v
			}
			if i == 0 || v > pt.Max {
				pt.Max = v
			}
		}
		out = append(out, pt)
	}
	return out
}

// ResponseToASCII draws each point's sample range as a vertical bar with
// the final value marked.
func ResponseToASCII(data []ResponsePoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := data[0].Min, data[0].Max
	for _, p := range data {
		if p.Min < lo {
			lo = p.Min
		}
		if p.Max > hi {
			hi = p.Max
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	row := func(v float64) int {
		return height - 1 - int((v-lo)/(hi-lo)*float64(height-1))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for r := row(p.Max); r <= row(p.Min); r++ {
			canvas[r][col] = '│'
		}
		canvas[row(p.Final)][col] = '•'
	}

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}
