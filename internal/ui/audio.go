package ui

import (
	"log"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/apu"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// initAudio starts a player that streams the tone for the whole session; the
// machine's sound output only gates it.
func (a *App) initAudio() {
	a.tone = apu.NewTone(apu.DefaultSampleRate, a.cfg.ToneHz, a.cfg.Volume)
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(a.tone.SampleRate())
	}
	p, err := ctx.NewPlayer(a.tone)
	if err != nil {
		log.Printf("audio disabled: %v", err)
		return
	}
	// short buffer so the beep follows the sound timer closely
	p.SetBufferSize(40 * time.Millisecond)
	p.Play()
	a.audioPlayer = p
}

func (a *App) updateAudio() {
	if a.tone == nil {
		return
	}
	a.tone.SetActive(!a.cfg.Muted && !a.paused && !a.showMenu && a.m.SoundActive())
}

func (a *App) closeAudio() {
	if a.audioPlayer != nil {
		_ = a.audioPlayer.Close()
		a.audioPlayer = nil
	}
}
