package cpu

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/video"
	"github.com/pkg/errors"
)

const StackDepth = 16

var (
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrMemoryOutOfRange = bus.ErrOutOfRange
)

// Keypad is the state of the 16 hex keys, indexed by key value.
type Keypad [16]bool

// Fault is a fatal execution error. The CPU stops at the faulting
// instruction and keeps returning the same Fault.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu fault at 0x%03X (opcode 0x%04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Config tunes interpreter quirks.
type Config struct {
	// IndexOverflowFlag makes Fx1E set VF when I goes past 0xFFF.
	IndexOverflowFlag bool
	// TimerDivider is the number of ticks per timer step; 1 steps the
	// timers on every tick.
	TimerDivider int
	Rand         rand.Source
	Logger       *log.Logger
}

// Defaults fills missing fields.
func (c *Config) Defaults() {
	if c.TimerDivider <= 0 {
		c.TimerDivider = 1
	}
	if c.Rand == nil {
		c.Rand = rand.NewSource(time.Now().UnixNano())
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// CPU is the complete CHIP-8 machine state: registers, stack, timers,
// memory and framebuffer. It is not safe for concurrent use.
type CPU struct {
	V  [16]byte
	I  uint16
	PC uint16
	SP byte

	Stack [StackDepth]uint16

	DelayTimer byte
	SoundTimer byte

	cfg   Config
	rng   *rand.Rand
	bus   *bus.Bus
	fb    video.Framebuffer
	keys  Keypad
	sound bool
	// set while an Fx0A is waiting for a key
	awaitingKey bool
	timerPhase  int
	fault       *Fault
}

// New creates a CPU in its power-on state with the font loaded.
func New(cfg Config) *CPU {
	cfg.Defaults()
	c := &CPU{cfg: cfg, rng: rand.New(cfg.Rand), bus: bus.New()}
	c.Reset()
	return c
}

// Reset zeroes registers, memory and the framebuffer and reloads the font.
func (c *CPU) Reset() {
	c.V = [16]byte{}
	c.I = 0
	c.PC = bus.ProgramStart
	c.SP = 0
	c.Stack = [StackDepth]uint16{}
	c.DelayTimer, c.SoundTimer = 0, 0
	c.bus.Reset()
	c.fb = video.Framebuffer{}
	c.keys = Keypad{}
	c.sound = false
	c.awaitingKey = false
	c.timerPhase = 0
	c.fault = nil
}

// LoadROM resets the machine and copies rom to 0x200. On error the machine
// is left reset with no program.
func (c *CPU) LoadROM(rom []byte) error {
	c.Reset()
	if err := c.bus.LoadProgram(rom); err != nil {
		return errors.Wrap(err, "load rom")
	}
	return nil
}

// Bus exposes memory for tests and tools.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// Config returns the settings in effect, defaults applied.
func (c *CPU) Config() Config { return c.cfg }

// Framebuffer returns a copy of the pixel grid.
func (c *CPU) Framebuffer() [video.Height][video.Width]byte { return c.fb.Snapshot() }

// Display gives read access to the framebuffer for renderers.
func (c *CPU) Display() *video.Framebuffer { return &c.fb }

// FramebufferDirty reports whether the framebuffer changed since the last
// ClearDirty. The core sets it; the caller clears it.
func (c *CPU) FramebufferDirty() bool { return c.fb.Dirty() }
func (c *CPU) ClearDirty()            { c.fb.ClearDirty() }

// SoundActive reports whether the sound timer was running on the last tick.
func (c *CPU) SoundActive() bool { return c.sound }

// AwaitingKey reports whether an Fx0A is blocking on input.
func (c *CPU) AwaitingKey() bool { return c.awaitingKey }

// Fault returns the fatal error that halted the CPU, if any.
func (c *CPU) Fault() error {
	if c.fault == nil {
		return nil
	}
	return c.fault
}

// Fetch reads the instruction word at PC without executing it.
func (c *CPU) Fetch() (Opcode, error) {
	hi, err := c.bus.Read(c.PC)
	if err != nil {
		return Opcode{}, err
	}
	lo, err := c.bus.Read(c.PC + 1)
	if err != nil {
		return Opcode{}, err
	}
	return Decode(Word(hi, lo)), nil
}

// Tick runs one instruction against the sampled keypad and then steps the
// timers. A returned error is always a *Fault and is fatal.
func (c *CPU) Tick(keys Keypad) error {
	if c.fault != nil {
		return c.fault
	}
	c.keys = keys

	op, err := c.Fetch()
	if err != nil {
		return c.halt(op, err)
	}
	if err := c.execute(op); err != nil {
		return c.halt(op, err)
	}

	c.sound = c.SoundTimer > 0
	c.timerPhase++
	if c.timerPhase >= c.cfg.TimerDivider {
		c.timerPhase = 0
		if c.DelayTimer > 0 {
			c.DelayTimer--
		}
		if c.SoundTimer > 0 {
			c.SoundTimer--
		}
	}
	return nil
}

func (c *CPU) halt(op Opcode, err error) error {
	c.fault = &Fault{PC: c.PC, Opcode: op.Raw, Err: err}
	return c.fault
}

func (c *CPU) logf(format string, args ...any) {
	c.cfg.Logger.Printf(format, args...)
}
