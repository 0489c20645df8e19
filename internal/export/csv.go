package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/clothsim/internal/sim"
)

// WriteCSV writes one row per tick with a column per metric sample
// series. Columns follow names; when names is empty every series is
// written in sorted order.
func WriteCSV(w io.Writer, result *sim.Result, names []string) error {
	if len(names) == 0 {
		for name := range result.Samples {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		if len(result.Samples[name]) != result.Ticks {
			return fmt.Errorf("export: series %q has %d samples, want %d", name, len(result.Samples[name]), result.Ticks)
		}
	}

	cw := csv.NewWriter(w)
	header := append([]string{"tick"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < result.Ticks; i++ {
		row[0] = strconv.Itoa(i + 1)
		for j, name := range names {
			row[j+1] = strconv.FormatFloat(result.Samples[name][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
