package ui

import (
	"image/color"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/apu"
	"golang.org/x/image/colornames"
)

// Config contains window/input/audio related settings.
type Config struct {
	Title    string      // window title
	Scale    int         // integer upscaling factor
	OnColor  color.Color // lit pixel
	OffColor color.Color // background
	Volume   float64     // tone amplitude, 0..1
	ToneHz   float64     // tone frequency
	Muted    bool
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.OnColor == nil {
		c.OnColor = colornames.White
	}
	if c.OffColor == nil {
		c.OffColor = colornames.Black
	}
	if c.Volume <= 0 {
		c.Volume = apu.DefaultVolume
	}
	if c.ToneHz <= 0 {
		c.ToneHz = apu.DefaultFreq
	}
}
