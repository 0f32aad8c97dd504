package bus

import (
	"errors"
	"testing"
)

func TestBus_FontPreloaded(t *testing.T) {
	b := New()
	for i, want := range Font {
		got, err := b.Read(uint16(FontStart + i))
		if err != nil {
			t.Fatalf("read font byte %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("font byte %d got %02x want %02x", i, got, want)
		}
	}
	// glyph "0" top row
	if got, _ := b.Read(0); got != 0xF0 {
		t.Fatalf("glyph 0 row 0 got %02x want F0", got)
	}
}

func TestBus_ReadWriteAndBounds(t *testing.T) {
	b := New()
	if err := b.Write(0x300, 0x99); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := b.Read(0x300); got != 0x99 {
		t.Fatalf("read got %02x want 99", got)
	}
	if err := b.Write(0xFFF, 0x01); err != nil {
		t.Fatalf("write at last byte should succeed: %v", err)
	}
	if _, err := b.Read(0x1000); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("read past end got %v want ErrOutOfRange", err)
	}
	if err := b.Write(0x10FE, 0x01); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("write past end got %v want ErrOutOfRange", err)
	}
	if _, err := b.Slice(0xFFE, 3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("slice crossing end got %v want ErrOutOfRange", err)
	}
	s, err := b.Slice(0xFFE, 2)
	if err != nil || len(s) != 2 {
		t.Fatalf("slice at end: len=%d err=%v", len(s), err)
	}
}

func TestBus_LoadProgram(t *testing.T) {
	b := New()
	if err := b.LoadProgram([]byte{0x60, 0x05, 0x70, 0x05}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := b.Read(ProgramStart + 2); got != 0x70 {
		t.Fatalf("program byte 2 got %02x want 70", got)
	}

	full := make([]byte, MemSize-ProgramStart)
	full[len(full)-1] = 0xAB
	if err := b.LoadProgram(full); err != nil {
		t.Fatalf("max-size program should load: %v", err)
	}
	if got, _ := b.Read(0xFFF); got != 0xAB {
		t.Fatalf("last byte got %02x want AB", got)
	}

	b = New()
	if err := b.LoadProgram(make([]byte, MemSize-ProgramStart+1)); !errors.Is(err, ErrProgramTooLarge) {
		t.Fatalf("oversized program got %v want ErrProgramTooLarge", err)
	}
	// nothing copied on failure
	if got, _ := b.Read(ProgramStart); got != 0 {
		t.Fatalf("memory touched by failed load: %02x", got)
	}
}

func TestBus_StateRoundTrip(t *testing.T) {
	b := New()
	_ = b.Write(0x400, 0x42)
	snap := b.SaveState()
	_ = b.Write(0x400, 0x00)
	if err := b.LoadState(snap); err != nil {
		t.Fatalf("load state: %v", err)
	}
	if got, _ := b.Read(0x400); got != 0x42 {
		t.Fatalf("restored byte got %02x want 42", got)
	}
	if err := b.LoadState(snap[:10]); err == nil {
		t.Fatal("short state should fail")
	}
}
