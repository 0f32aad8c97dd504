package apu

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

const (
	DefaultSampleRate = 44100
	DefaultFreq       = 240.0 // Hz
	DefaultVolume     = 0.25
)

// Tone is a gated square wave. It implements io.Reader producing 16-bit
// little-endian stereo frames, the format ebiten's audio player consumes.
// Read is called from the audio goroutine while SetActive is called from the
// emulation loop.
type Tone struct {
	sampleRate int
	active     atomic.Bool

	mu       sync.Mutex
	phase    float64 // 0..1
	phaseInc float64
	amp      int16
}

// NewTone returns a silent tone generator. Zero or negative arguments fall
// back to the defaults.
func NewTone(sampleRate int, freq, volume float64) *Tone {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if freq <= 0 {
		freq = DefaultFreq
	}
	if volume <= 0 || volume > 1 {
		volume = DefaultVolume
	}
	return &Tone{
		sampleRate: sampleRate,
		phaseInc:   freq / float64(sampleRate),
		amp:        int16(volume * math.MaxInt16),
	}
}

func (t *Tone) SampleRate() int { return t.sampleRate }

// SetActive gates the output on or off.
func (t *Tone) SetActive(on bool) { t.active.Store(on) }

func (t *Tone) Active() bool { return t.active.Load() }

// Read fills p with whole stereo frames (4 bytes each) and never blocks.
// Silence is written while the gate is off so the player keeps streaming.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	if n == 0 {
		// smaller than one frame: pad with silence rather than return 0
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	if !t.Active() {
		for i := 0; i < n; i++ {
			p[i] = 0
		}
		return n, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i += 4 {
		v := t.amp
		if t.phase >= 0.5 {
			v = -t.amp
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
		t.phase += t.phaseInc
		if t.phase >= 1 {
			t.phase -= 1
		}
	}
	return n, nil
}
