package emu

import (
	"bytes"
	"encoding/gob"
	"hash/crc32"
	"image/color"
	"math/rand"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/video"
	"github.com/pkg/errors"
)

// Machine is the driver around one CPU: it feeds keypad samples in, runs a
// frame's worth of ticks and hands display and sound state to the frontend.
type Machine struct {
	cfg  Config
	cpu  *cpu.CPU
	keys cpu.Keypad
	fb   []byte // RGBA 64x32*4

	rom     []byte
	romInfo *rom.Info
	frames  uint64
}

func New(cfg Config) *Machine {
	cfg.Defaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c := cpu.New(cpu.Config{
		IndexOverflowFlag: cfg.IndexOverflowFlag,
		// timers step once per frame, i.e. at 60 Hz
		TimerDivider: cfg.TicksPerFrame,
		Rand:         rand.NewSource(seed),
		Logger:       cfg.Logger,
	})
	return &Machine{cfg: cfg, cpu: c, fb: make([]byte, video.Width*video.Height*4)}
}

// LoadROM loads raw program bytes. On error the previous program is gone
// and the machine holds a reset, empty memory.
func (m *Machine) LoadROM(data []byte) error {
	info, err := rom.Parse(data)
	if err != nil {
		m.unload()
		return err
	}
	if err := m.cpu.LoadROM(data); err != nil {
		m.unload()
		return err
	}
	m.rom = append(m.rom[:0], data...)
	m.romInfo = info
	m.frames = 0
	return nil
}

func (m *Machine) unload() {
	m.cpu.Reset()
	m.rom = nil
	m.romInfo = nil
	m.frames = 0
}

// LoadROMFromFile replaces the current program with one from disk.
func (m *Machine) LoadROMFromFile(path string) error {
	data, info, err := rom.Load(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return err
	}
	m.romInfo = info
	return nil
}

// ROMInfo describes the loaded program, or nil.
func (m *Machine) ROMInfo() *rom.Info { return m.romInfo }

// Reset restarts the loaded program from a clean machine.
func (m *Machine) Reset() error {
	if m.rom == nil {
		m.cpu.Reset()
		return nil
	}
	return m.cpu.LoadROM(m.rom)
}

// SetKeys records the keypad state used by the following ticks.
func (m *Machine) SetKeys(k cpu.Keypad) { m.keys = k }

// Step runs a single CPU tick.
func (m *Machine) Step() error {
	if m.cfg.Trace {
		m.trace()
	}
	return m.cpu.Tick(m.keys)
}

// StepFrame runs TicksPerFrame ticks and stops at the first fault.
func (m *Machine) StepFrame() error {
	for i := 0; i < m.cfg.TicksPerFrame; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	m.frames++
	return nil
}

// RunFrames runs n frames headless, stopping early on a fault.
func (m *Machine) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := m.StepFrame(); err != nil {
			return errors.Wrapf(err, "frame %d", m.frames)
		}
	}
	return nil
}

func (m *Machine) Frames() uint64 { return m.frames }

func (m *Machine) trace() {
	op, err := m.cpu.Fetch()
	if err != nil {
		return
	}
	m.cfg.Logger.Printf("%03X: %04X  %-16s I=%03X SP=%d DT=%d ST=%d V=% X",
		m.cpu.PC, op.Raw, cpu.Disassemble(op), m.cpu.I, m.cpu.SP, m.cpu.DelayTimer, m.cpu.SoundTimer, m.cpu.V[:])
}

// CPU exposes the core for tests/tools.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// FramebufferDirty reports whether the display changed since the last call
// to Framebuffer.
func (m *Machine) FramebufferDirty() bool { return m.cpu.FramebufferDirty() }

// Framebuffer renders the display as RGBA and clears the dirty flag.
func (m *Machine) Framebuffer(on, off color.Color) []byte {
	m.fb = m.cpu.Display().RGBA(m.fb, on, off)
	m.cpu.ClearDirty()
	return m.fb
}

// FramebufferCRC is a checksum of the 0/1 pixel grid, independent of colors.
func (m *Machine) FramebufferCRC() uint32 {
	pix := m.cpu.Framebuffer()
	h := crc32.NewIEEE()
	for y := range pix {
		h.Write(pix[y][:])
	}
	return h.Sum32()
}

func (m *Machine) SoundActive() bool { return m.cpu.SoundActive() }

func (m *Machine) AwaitingKey() bool { return m.cpu.AwaitingKey() }

// --- Save/Load state (in memory only) ---
type machineState struct {
	CPU    []byte
	Frames uint64
}

func (m *Machine) SaveState() []byte {
	if m == nil || m.cpu == nil {
		return nil
	}
	c := m.cpu.SaveState()
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(machineState{CPU: c, Frames: m.frames}); err != nil {
		return nil
	}
	return buf.Bytes()
}

func (m *Machine) LoadState(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty state")
	}
	var s machineState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return errors.Wrap(err, "decode machine state")
	}
	if err := m.cpu.LoadState(s.CPU); err != nil {
		return err
	}
	m.frames = s.Frames
	return nil
}
