package cpu

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/pkg/errors"
)

// execute dispatches one decoded opcode. Handlers own PC: plain instructions
// advance by 2, skips by 4 when taken, jumps and calls set it directly.
func (c *CPU) execute(op Opcode) error {
	switch op.Nibbles[0] {
	case 0x0:
		switch op.Raw {
		case 0x00E0:
			c.fb.Clear()
			c.next()
			return nil
		case 0x00EE:
			return c.ret()
		}
	case 0x1:
		c.PC = op.NNN
		return nil
	case 0x2:
		return c.call(op.NNN)
	case 0x3:
		c.skipIf(c.V[op.X] == op.KK)
		return nil
	case 0x4:
		c.skipIf(c.V[op.X] != op.KK)
		return nil
	case 0x5:
		if op.N == 0 {
			c.skipIf(c.V[op.X] == c.V[op.Y])
			return nil
		}
	case 0x6:
		c.V[op.X] = op.KK
		c.next()
		return nil
	case 0x7:
		c.V[op.X] += op.KK
		c.next()
		return nil
	case 0x8:
		if c.alu(op) {
			c.next()
			return nil
		}
	case 0x9:
		if op.N == 0 {
			c.skipIf(c.V[op.X] != c.V[op.Y])
			return nil
		}
	case 0xA:
		c.I = op.NNN
		c.next()
		return nil
	case 0xB:
		c.PC = op.NNN + uint16(c.V[0])
		return nil
	case 0xC:
		c.V[op.X] = byte(c.rng.Intn(256)) & op.KK
		c.next()
		return nil
	case 0xD:
		return c.draw(op)
	case 0xE:
		switch op.KK {
		case 0x9E:
			c.skipIf(c.keys[c.V[op.X]&0xF])
			return nil
		case 0xA1:
			c.skipIf(!c.keys[c.V[op.X]&0xF])
			return nil
		}
	case 0xF:
		if handled, err := c.misc(op); handled {
			return err
		}
	}

	c.logf("cpu: unknown opcode 0x%04X at 0x%03X", op.Raw, c.PC)
	c.next()
	return nil
}

func (c *CPU) next() { c.PC += 2 }

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 4
		return
	}
	c.PC += 2
}

func (c *CPU) call(addr uint16) error {
	if int(c.SP) >= StackDepth {
		return errors.Wrapf(ErrStackOverflow, "call $%03X with %d frames", addr, c.SP)
	}
	c.Stack[c.SP] = c.PC + 2
	c.SP++
	c.PC = addr
	return nil
}

func (c *CPU) ret() error {
	if c.SP == 0 {
		return errors.Wrap(ErrStackUnderflow, "return with empty stack")
	}
	c.SP--
	c.PC = c.Stack[c.SP]
	return nil
}

// alu runs the 8xyN family. It reports false for undefined N. Flags come
// from the operands as they were before the write, and VF is written last so
// it holds the flag when x is F.
func (c *CPU) alu(op Opcode) bool {
	x, y := op.X, op.Y
	vx, vy := c.V[x], c.V[y]
	switch op.N {
	case 0x0:
		c.V[x] = vy
	case 0x1:
		c.V[x] = vx | vy
	case 0x2:
		c.V[x] = vx & vy
	case 0x3:
		c.V[x] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		c.V[x] = byte(sum)
		c.V[0xF] = flag(sum > 0xFF)
	case 0x5:
		c.V[x] = vx - vy
		c.V[0xF] = flag(vx > vy)
	case 0x6:
		c.V[x] = vx >> 1
		c.V[0xF] = vx & 1
	case 0x7:
		c.V[x] = vy - vx
		c.V[0xF] = flag(vy > vx)
	case 0xE:
		c.V[x] = vx << 1
		c.V[0xF] = vx >> 7 & 1
	default:
		return false
	}
	return true
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) draw(op Opcode) error {
	rows, err := c.bus.Slice(c.I, int(op.N))
	if err != nil {
		return err
	}
	collided := c.fb.DrawSprite(c.V[op.X], c.V[op.Y], rows)
	c.V[0xF] = flag(collided)
	c.next()
	return nil
}

// misc runs the Fxkk family. handled is false for undefined kk.
func (c *CPU) misc(op Opcode) (handled bool, err error) {
	x := op.X
	switch op.KK {
	case 0x07:
		c.V[x] = c.DelayTimer
	case 0x0A:
		c.waitKey(x)
		return true, nil
	case 0x15:
		c.DelayTimer = c.V[x]
	case 0x18:
		c.SoundTimer = c.V[x]
	case 0x1E:
		// saturate so I never wraps back into addressable memory
		sum := uint32(c.I) + uint32(c.V[x])
		if sum > 0xFFFF {
			sum = 0xFFFF
		}
		c.I = uint16(sum)
		if c.cfg.IndexOverflowFlag {
			c.V[0xF] = flag(c.I > bus.MemSize-1)
		}
	case 0x29:
		c.I = uint16(c.V[x]) * bus.GlyphBytes
	case 0x33:
		dst, err := c.bus.Slice(c.I, 3)
		if err != nil {
			return true, err
		}
		v := c.V[x]
		dst[0], dst[1], dst[2] = v/100, v/10%10, v%10
	case 0x55:
		dst, err := c.bus.Slice(c.I, int(x)+1)
		if err != nil {
			return true, err
		}
		copy(dst, c.V[:x+1])
	case 0x65:
		src, err := c.bus.Slice(c.I, int(x)+1)
		if err != nil {
			return true, err
		}
		copy(c.V[:x+1], src)
	default:
		return false, nil
	}
	c.next()
	return true, nil
}

// waitKey stores the lowest pressed key, or parks PC on this instruction
// until a later tick sees one.
func (c *CPU) waitKey(x byte) {
	for k, down := range c.keys {
		if down {
			c.V[x] = byte(k)
			c.awaitingKey = false
			c.next()
			return
		}
	}
	c.awaitingKey = true
}
