package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeypad_Layout(t *testing.T) {
	cases := []struct {
		key ebiten.Key
		hex int
	}{
		{ebiten.Key1, 0x1}, {ebiten.Key2, 0x2}, {ebiten.Key3, 0x3}, {ebiten.Key4, 0xC},
		{ebiten.KeyQ, 0x4}, {ebiten.KeyW, 0x5}, {ebiten.KeyE, 0x6}, {ebiten.KeyR, 0xD},
		{ebiten.KeyA, 0x7}, {ebiten.KeyS, 0x8}, {ebiten.KeyD, 0x9}, {ebiten.KeyF, 0xE},
		{ebiten.KeyZ, 0xA}, {ebiten.KeyX, 0x0}, {ebiten.KeyC, 0xB}, {ebiten.KeyV, 0xF},
	}
	for _, tc := range cases {
		k := Keypad(func(key ebiten.Key) bool { return key == tc.key })
		for i, down := range k {
			if down != (i == tc.hex) {
				t.Fatalf("%v: key %X got %v", tc.key, i, down)
			}
		}
	}
}

func TestKeypad_NothingPressed(t *testing.T) {
	k := Keypad(func(ebiten.Key) bool { return false })
	for i, down := range k {
		if down {
			t.Fatalf("key %X pressed", i)
		}
	}
}

func TestConfig_Defaults(t *testing.T) {
	var c Config
	c.Defaults()
	if c.Scale != 10 || c.Title == "" || c.OnColor == nil || c.OffColor == nil {
		t.Fatalf("defaults got %+v", c)
	}
	if c.ToneHz != 240 || c.Volume != 0.25 {
		t.Fatalf("tone got %vHz vol %v", c.ToneHz, c.Volume)
	}
}
