package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

// RunData is the JSON form of a finished run.
type RunData struct {
	ID        string               `json:"id"`
	Preset    string               `json:"preset,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
	Params    map[string]float64   `json:"params"`
	PinTopRow bool                 `json:"pin_top_row"`
	Ticks     int                  `json:"ticks"`
	Torn      int                  `json:"torn"`
	Cut       int                  `json:"cut"`
	Live      int                  `json:"live_links"`
	ElapsedMS float64              `json:"elapsed_ms"`
	Metrics   map[string]float64   `json:"metrics"`
	Samples   map[string][]float64 `json:"samples,omitempty"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

func NewRunData(preset string, p cloth.Params, result *sim.Result) RunData {
	params := make(map[string]float64, len(cloth.Knobs))
	for _, k := range cloth.Knobs {
		v, _ := p.Get(k)
		params[k] = v
	}

	return RunData{
		ID:        NewRunID(),
		Preset:    preset,
		Timestamp: time.Now().UTC(),
		Params:    params,
		PinTopRow: p.PinTopRow,
		Ticks:     result.Ticks,
		Torn:      result.Torn,
		Cut:       result.Cut,
		Live:      result.Live,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:   result.Metrics,
		Samples:   result.Samples,
	}
}

// WriteJSON encodes data as indented JSON. Samples are dropped unless
// withSamples is set.
func WriteJSON(w io.Writer, data RunData, withSamples bool) error {
	if !withSamples {
		data.Samples = nil
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
