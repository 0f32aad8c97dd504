package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var menuItems = []string{
	"Resume",
	"Reset",
	"Save snapshot",
	"Load snapshot",
	"Sound",
	"Exit",
}

func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
		return nil
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
		a.showMenu = false
	case 1:
		a.reset()
		a.showMenu = false
	case 2:
		a.saveSnapshot()
	case 3:
		a.loadSnapshot()
		a.showMenu = false
	case 4:
		a.cfg.Muted = !a.cfg.Muted
	case 5:
		return ebiten.Termination
	}
	return nil
}
