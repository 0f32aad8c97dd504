package emu

import "log"

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace             bool  // log every executed instruction
	TicksPerFrame     int   // CPU ticks per 60 Hz frame
	IndexOverflowFlag bool  // Fx1E sets VF when I passes 0xFFF
	Seed              int64 // RND seed; 0 picks one from the clock
	Logger            *log.Logger
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.TicksPerFrame <= 0 {
		c.TicksPerFrame = 10 // ~600 instructions per second
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
