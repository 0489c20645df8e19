package config

import (
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCanvasWidth  = 500.0
	DefaultCanvasHeight = 300.0
	DefaultTicks        = 600
	DefaultFPS          = 60
)

type Config struct {
	Canvas CanvasConfig  `yaml:"canvas"`
	Cloth  ClothConfig   `yaml:"cloth"`
	Run    RunConfig     `yaml:"run"`
	Script []ScriptEvent `yaml:"script,omitempty"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ClothConfig struct {
	PhysicsAccuracy int     `yaml:"physics_accuracy"`
	Gravity         float64 `yaml:"gravity"`
	ClothWidth      int     `yaml:"cloth_width"`
	ClothHeight     int     `yaml:"cloth_height"`
	Spacing         float64 `yaml:"spacing"`
	StartY          float64 `yaml:"start_y"`
	TearDistance    float64 `yaml:"tear_distance"`
	MouseInfluence  float64 `yaml:"mouse_influence"`
	MouseCut        float64 `yaml:"mouse_cut"`
	Dt              float64 `yaml:"dt"`
	PinTopRow       bool    `yaml:"pin_top_row"`
}

type RunConfig struct {
	Ticks         int  `yaml:"ticks"`
	FPS           int  `yaml:"fps"`
	ValidateState bool `yaml:"validate_state"`
}

// ScriptEvent is a scripted pointer action in file form.
type ScriptEvent struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	Button string  `yaml:"button,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	p := cloth.DefaultParams()
	return &Config{
		Canvas: CanvasConfig{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Cloth:  FromParams(p),
		Run: RunConfig{
			Ticks:         DefaultTicks,
			FPS:           DefaultFPS,
			ValidateState: true,
		},
	}
}

func FromParams(p cloth.Params) ClothConfig {
	return ClothConfig{
		PhysicsAccuracy: p.Accuracy,
		Gravity:         p.Gravity,
		ClothWidth:      p.Width,
		ClothHeight:     p.Height,
		Spacing:         p.Spacing,
		StartY:          p.StartY,
		TearDistance:    p.TearDistance,
		MouseInfluence:  p.MouseInfluence,
		MouseCut:        p.MouseCut,
		Dt:              p.Dt,
		PinTopRow:       p.PinTopRow,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults, so omitted keys keep
// their default values.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 2 || c.Canvas.Height <= 2 {
		return fmt.Errorf("canvas must be larger than 2x2, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Run.Ticks)
	}
	if c.Run.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %d", c.Run.FPS)
	}
	if _, err := c.Events(); err != nil {
		return err
	}
	return c.Params().Validate()
}

func (c *Config) Params() cloth.Params {
	return cloth.Params{
		Accuracy:       c.Cloth.PhysicsAccuracy,
		Gravity:        c.Cloth.Gravity,
		Width:          c.Cloth.ClothWidth,
		Height:         c.Cloth.ClothHeight,
		Spacing:        c.Cloth.Spacing,
		StartY:         c.Cloth.StartY,
		TearDistance:   c.Cloth.TearDistance,
		MouseInfluence: c.Cloth.MouseInfluence,
		MouseCut:       c.Cloth.MouseCut,
		Dt:             c.Cloth.Dt,
		PinTopRow:      c.Cloth.PinTopRow,
	}
}

func (c *Config) Space() cloth.Canvas {
	return cloth.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// Events converts the script section into driver events.
func (c *Config) Events() ([]sim.ScriptEvent, error) {
	events := make([]sim.ScriptEvent, 0, len(c.Script))
	for i, e := range c.Script {
		action, ok := sim.ParseAction(e.Action)
		if !ok {
			return nil, fmt.Errorf("script[%d]: unknown action %q", i, e.Action)
		}
		button, ok := cloth.ParseButton(e.Button)
		if !ok {
			return nil, fmt.Errorf("script[%d]: unknown button %q", i, e.Button)
		}
		if e.Tick < 0 {
			return nil, fmt.Errorf("script[%d]: tick must not be negative", i)
		}
		events = append(events, sim.ScriptEvent{Tick: e.Tick, Action: action, Button: button, X: e.X, Y: e.Y})
	}
	return events, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Script != nil {
		cp.Script = make([]ScriptEvent, len(c.Script))
		copy(cp.Script, c.Script)
	}
	return &cp
}
