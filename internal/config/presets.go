package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	// the tuning the reference applies when the canvas is reset
	"restart": preset(func(c *Config) {
		c.Cloth.PhysicsAccuracy = 4
		c.Cloth.MouseInfluence = 10
		c.Cloth.Spacing = 5
		c.Cloth.TearDistance = 50
	}),
	"silk": preset(func(c *Config) {
		c.Cloth.PhysicsAccuracy = 2
		c.Cloth.Gravity = 600
		c.Cloth.TearDistance = 120
		c.Cloth.Spacing = 3
		c.Cloth.ClothWidth = 60
		c.Cloth.ClothHeight = 40
	}),
	"fragile": preset(func(c *Config) {
		c.Cloth.TearDistance = 20
		c.Cloth.MouseInfluence = 30
	}),
	"stiff": preset(func(c *Config) {
		c.Cloth.PhysicsAccuracy = 8
	}),
	"tiny": preset(func(c *Config) {
		c.Cloth.ClothWidth = 4
		c.Cloth.ClothHeight = 4
		c.Cloth.Spacing = 10
		c.Run.Ticks = 60
	}),
	"slash": preset(func(c *Config) {
		c.Run.Ticks = 240
		c.Script = []ScriptEvent{
			{Tick: 30, Action: "press", Button: "cut", X: 190, Y: 60},
			{Tick: 31, Action: "move", X: 230, Y: 70},
			{Tick: 32, Action: "move", X: 270, Y: 80},
			{Tick: 33, Action: "move", X: 310, Y: 90},
			{Tick: 34, Action: "release"},
		}
	}),
	"tug": preset(func(c *Config) {
		c.Run.Ticks = 240
		c.Script = []ScriptEvent{
			{Tick: 20, Action: "press", Button: "primary", X: 250, Y: 100},
			{Tick: 21, Action: "move", X: 250, Y: 108},
			{Tick: 22, Action: "move", X: 250, Y: 116},
			{Tick: 23, Action: "move", X: 250, Y: 124},
			{Tick: 24, Action: "move", X: 250, Y: 132},
			{Tick: 25, Action: "move", X: 250, Y: 140},
			{Tick: 26, Action: "move", X: 250, Y: 148},
			{Tick: 27, Action: "move", X: 250, Y: 156},
			{Tick: 28, Action: "move", X: 250, Y: 164},
			{Tick: 29, Action: "move", X: 250, Y: 172},
			{Tick: 30, Action: "move", X: 250, Y: 180},
			{Tick: 31, Action: "move", X: 250, Y: 180},
			{Tick: 60, Action: "release"},
		}
	}),
}

func preset(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
