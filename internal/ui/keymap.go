package ui

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/hajimehoshi/ebiten/v2"
)

// keymap places the hex keypad on the left block of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Keypad samples the keyboard through pressed, usually ebiten.IsKeyPressed.
func Keypad(pressed func(ebiten.Key) bool) cpu.Keypad {
	var k cpu.Keypad
	for i, key := range keymap {
		k[i] = pressed(key)
	}
	return k
}
