package main

import (
	"github.com/spf13/pflag"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
)

func addClothFlags(fs *pflag.FlagSet) {
	d := cloth.DefaultParams()

	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&preset, "preset", "", "use preset configuration")
	fs.IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	fs.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate (0 runs unpaced)")
	fs.IntVar(&accuracy, "accuracy", d.Accuracy, "relaxation passes per tick")
	fs.Float64Var(&gravity, "gravity", d.Gravity, "gravity")
	fs.IntVar(&width, "width", d.Width, "cloth width in cells")
	fs.IntVar(&height, "height", d.Height, "cloth height in cells")
	fs.Float64Var(&spacing, "spacing", d.Spacing, "rest length between neighbours")
	fs.Float64Var(&tear, "tear", d.TearDistance, "tear distance")
	fs.Float64Var(&influence, "influence", d.MouseInfluence, "drag radius")
	fs.Float64Var(&cut, "cut", d.MouseCut, "cut radius")
	fs.BoolVar(&noPin, "no-pin", false, "leave the top row free")
}
