package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

func (a *App) drawMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Menu:", 10, 10)
	for i, s := range menuItems {
		if i == 4 {
			s = fmt.Sprintf("%s: %s", s, map[bool]string{true: "Off", false: "On"}[a.cfg.Muted])
		}
		if i == 2 && a.snapshot != nil {
			s += " (overwrite)"
		}
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 24+i*14)
	}
	// quick hints, keep on-screen
	hint := "P: Pause  N: Step  Tab: Fast  F5/F9: Snapshot  F12: Shot  Esc: Quit"
	_, h := a.Layout(0, 0)
	ebitenutil.DebugPrintAt(screen, hint, 10, h-18)
	if info := a.m.ROMInfo(); info != nil {
		ebitenutil.DebugPrintAt(screen, info.String(), 10, h-32)
	}
}
