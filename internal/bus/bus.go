package bus

import (
	"github.com/pkg/errors"
)

const (
	MemSize      = 0x1000 // 4 KB address space
	ProgramStart = 0x200  // first byte of the loaded program
	FontStart    = 0x000  // hex glyphs live at the very bottom
	GlyphBytes   = 5      // rows per glyph
)

// ErrOutOfRange is returned for any access past the end of memory.
var ErrOutOfRange = errors.New("memory access out of range")

// ErrProgramTooLarge is returned when a program does not fit above ProgramStart.
var ErrProgramTooLarge = errors.New("program does not fit in memory")

// Font is the built-in hexadecimal glyph set, 16 glyphs of 5 rows, MSB first.
var Font = [16 * GlyphBytes]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Bus is the flat 4 KB CHIP-8 memory. Every access is bounds checked;
// nothing wraps around silently.
type Bus struct {
	ram [MemSize]byte
}

// New returns zeroed memory with the font preloaded at FontStart.
func New() *Bus {
	b := &Bus{}
	b.Reset()
	return b
}

// Reset zeroes memory and reloads the font.
func (b *Bus) Reset() {
	b.ram = [MemSize]byte{}
	copy(b.ram[FontStart:], Font[:])
}

func (b *Bus) Read(addr uint16) (byte, error) {
	if int(addr) >= MemSize {
		return 0, errors.Wrapf(ErrOutOfRange, "read at 0x%04X", addr)
	}
	return b.ram[addr], nil
}

func (b *Bus) Write(addr uint16, value byte) error {
	if int(addr) >= MemSize {
		return errors.Wrapf(ErrOutOfRange, "write at 0x%04X", addr)
	}
	b.ram[addr] = value
	return nil
}

// Slice returns n bytes starting at addr. The returned slice aliases memory.
func (b *Bus) Slice(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if n < 0 || end > MemSize {
		return nil, errors.Wrapf(ErrOutOfRange, "range 0x%04X+%d", addr, n)
	}
	return b.ram[addr:end], nil
}

// LoadProgram copies program to ProgramStart. Memory is left untouched when
// the program is too large.
func (b *Bus) LoadProgram(program []byte) error {
	if len(program) > MemSize-ProgramStart {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes, max %d", len(program), MemSize-ProgramStart)
	}
	copy(b.ram[ProgramStart:], program)
	return nil
}

// SaveState returns a copy of memory for snapshots.
func (b *Bus) SaveState() []byte {
	out := make([]byte, MemSize)
	copy(out, b.ram[:])
	return out
}

// LoadState restores memory previously returned by SaveState.
func (b *Bus) LoadState(data []byte) error {
	if len(data) != MemSize {
		return errors.Errorf("bus state: got %d bytes want %d", len(data), MemSize)
	}
	copy(b.ram[:], data)
	return nil
}
