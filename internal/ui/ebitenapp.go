package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/apu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/video"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// fastFrames is how many frames run per update while Tab is held.
const fastFrames = 5

type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	shade  *ebiten.Image
	pix    []byte // last RGBA frame pulled from the machine
	stale  bool   // pix changed since it was written to tex
	paused bool
	fast   bool

	// overlay/menu
	showMenu bool
	menuIdx  int

	snapshot []byte // F5/F9 quick slot, memory only

	toastMsg   string
	toastUntil time.Time

	tone        *apu.Tone
	audioPlayer *audio.Player
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	title := cfg.Title
	if info := m.ROMInfo(); info != nil && info.Title != "" {
		title = cfg.Title + " - [" + info.Title + "]"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(video.Width*cfg.Scale, video.Height*cfg.Scale)
	a := &App{cfg: cfg, m: m, stale: true}
	a.initAudio()
	return a
}

// Run blocks until the window closes. A machine fault ends the session and
// is returned.
func (a *App) Run() error {
	defer a.closeAudio()
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showMenu = !a.showMenu
		a.menuIdx = 0
	}
	if a.showMenu {
		err := a.updateMenu()
		a.updateAudio()
		return err
	}

	a.m.SetKeys(Keypad(ebiten.IsKeyPressed))

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveSnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadSnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.cfg.Muted = !a.cfg.Muted
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	var err error
	switch {
	case a.paused:
		// Frame-step when paused (N)
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			err = a.m.StepFrame()
		}
	case a.fast:
		for i := 0; i < fastFrames && err == nil; i++ {
			err = a.m.StepFrame()
		}
	default:
		err = a.m.StepFrame()
	}
	a.updateAudio()
	if err != nil {
		log.Printf("machine halted: %v", err)
		return err
	}
	return nil
}

// refresh pulls the framebuffer when the machine redrew it.
func (a *App) refresh() {
	if a.pix == nil || a.m.FramebufferDirty() {
		a.pix = a.m.Framebuffer(a.cfg.OnColor, a.cfg.OffColor)
		a.stale = true
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(video.Width, video.Height)
	}
	a.refresh()
	if a.stale {
		a.tex.WritePixels(a.pix)
		a.stale = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)

	if a.showMenu {
		if a.shade == nil {
			a.shade = ebiten.NewImage(video.Width, video.Height)
			a.shade.Fill(color.RGBA{0, 0, 0, 160})
		}
		screen.DrawImage(a.shade, op)
		a.drawMenu(screen)
		return
	}
	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED  N: step  P: resume", 4, 4)
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		_, h := a.Layout(0, 0)
		ebitenutil.DebugPrintAt(screen, a.toastMsg, 4, h-18)
	}
}

func (a *App) Layout(outW, outH int) (int, int) {
	return video.Width * a.cfg.Scale, video.Height * a.cfg.Scale
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) reset() {
	if err := a.m.Reset(); err != nil {
		a.toast("Reset failed: " + err.Error())
		return
	}
	a.toast("Reset")
}

func (a *App) saveSnapshot() {
	s := a.m.SaveState()
	if s == nil {
		a.toast("Snapshot failed")
		return
	}
	a.snapshot = s
	a.toast("Snapshot saved")
}

func (a *App) loadSnapshot() {
	if a.snapshot == nil {
		a.toast("No snapshot")
		return
	}
	if err := a.m.LoadState(a.snapshot); err != nil {
		a.toast("Load failed: " + err.Error())
		return
	}
	a.toast("Snapshot loaded")
}

func (a *App) saveScreenshot() (string, error) {
	a.refresh()
	img := &image.RGBA{
		Pix:    make([]byte, len(a.pix)),
		Stride: 4 * video.Width,
		Rect:   image.Rect(0, 0, video.Width, video.Height),
	}
	copy(img.Pix, a.pix)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
