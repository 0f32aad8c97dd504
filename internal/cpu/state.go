package cpu

import (
	"bytes"
	"encoding/gob"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/video"
	"github.com/pkg/errors"
)

type cpuState struct {
	V           [16]byte
	I, PC       uint16
	SP          byte
	Stack       [StackDepth]uint16
	DT, ST      byte
	Memory      []byte
	Pixels      [video.Height][video.Width]byte
	AwaitingKey bool
	TimerPhase  int
}

// SaveState serializes registers, memory and the framebuffer. A halted CPU
// has no state worth saving and returns nil.
func (c *CPU) SaveState() []byte {
	if c.fault != nil {
		return nil
	}
	s := cpuState{
		V: c.V, I: c.I, PC: c.PC, SP: c.SP, Stack: c.Stack,
		DT: c.DelayTimer, ST: c.SoundTimer,
		Memory:      c.bus.SaveState(),
		Pixels:      c.fb.Snapshot(),
		AwaitingKey: c.awaitingKey,
		TimerPhase:  c.timerPhase,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil
	}
	return buf.Bytes()
}

// LoadState restores a snapshot taken by SaveState. The CPU is unchanged
// on error.
func (c *CPU) LoadState(data []byte) error {
	var s cpuState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return errors.Wrap(err, "decode cpu state")
	}
	if int(s.SP) > StackDepth {
		return errors.Errorf("cpu state: SP %d out of range", s.SP)
	}
	if err := c.bus.LoadState(s.Memory); err != nil {
		return err
	}
	c.V, c.I, c.PC, c.SP, c.Stack = s.V, s.I, s.PC, s.SP, s.Stack
	c.DelayTimer, c.SoundTimer = s.DT, s.ST
	c.fb.Restore(s.Pixels)
	c.awaitingKey = s.AwaitingKey
	c.timerPhase = s.TimerPhase
	c.sound = false
	c.fault = nil
	return nil
}
