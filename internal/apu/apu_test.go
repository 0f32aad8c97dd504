package apu

import (
	"encoding/binary"
	"testing"
)

func TestTone_SilentWhenInactive(t *testing.T) {
	tone := NewTone(0, 0, 0)
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = 0xAA
	}
	n, err := tone.Read(buf)
	if err != nil || n != 256 {
		t.Fatalf("read n=%d err=%v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d got %02x want silence", i, b)
		}
	}
}

func TestTone_SquareWave(t *testing.T) {
	// 8 samples per period: 4 high, 4 low
	vol := 0.5
	tone := NewTone(800, 100, vol)
	tone.SetActive(true)
	buf := make([]byte, 16*4)
	if n, _ := tone.Read(buf); n != len(buf) {
		t.Fatalf("n got %d", n)
	}
	want := int16(vol * 32767)
	for i := 0; i < 16; i++ {
		l := int16(binary.LittleEndian.Uint16(buf[i*4:]))
		r := int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		if l != r {
			t.Fatalf("frame %d not mono: %d/%d", i, l, r)
		}
		exp := want
		if i%8 >= 4 {
			exp = -want
		}
		if l != exp {
			t.Fatalf("frame %d got %d want %d", i, l, exp)
		}
	}
}

func TestTone_PartialFrame(t *testing.T) {
	tone := NewTone(0, 0, 0)
	tone.SetActive(true)
	buf := make([]byte, 6)
	n, _ := tone.Read(buf)
	if n != 4 {
		t.Fatalf("n got %d want 4 (whole frames only)", n)
	}
	n, _ = tone.Read(buf[:3])
	if n != 3 {
		t.Fatalf("tiny buffer n got %d want 3", n)
	}
}
