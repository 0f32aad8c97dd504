package cpu

import "fmt"

// Opcode is one decoded 16-bit instruction word with its operand fields
// pre-extracted. Decoding has no side effects, so it is shared by the
// interpreter and the disassembler.
type Opcode struct {
	Raw     uint16
	Nibbles [4]byte // most significant first
	NNN     uint16  // low 12 bits, address operand
	N       byte    // low 4 bits, sprite height
	X       byte    // bits 8-11, register index
	Y       byte    // bits 4-7, register index
	KK      byte    // low 8 bits, immediate
}

// Decode splits a raw word into its fields.
func Decode(word uint16) Opcode {
	return Opcode{
		Raw: word,
		Nibbles: [4]byte{
			byte(word >> 12 & 0xF),
			byte(word >> 8 & 0xF),
			byte(word >> 4 & 0xF),
			byte(word & 0xF),
		},
		NNN: word & 0x0FFF,
		N:   byte(word & 0x000F),
		X:   byte(word >> 8 & 0xF),
		Y:   byte(word >> 4 & 0xF),
		KK:  byte(word & 0x00FF),
	}
}

// Word joins two big-endian bytes.
func Word(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

func (o Opcode) String() string { return fmt.Sprintf("0x%04X", o.Raw) }

// Disassemble renders the opcode as an assembler mnemonic. Words outside the
// instruction table come back as DW.
func Disassemble(o Opcode) string {
	switch o.Nibbles[0] {
	case 0x0:
		switch o.Raw {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP $%03X", o.NNN)
	case 0x2:
		return fmt.Sprintf("CALL $%03X", o.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", o.X, o.KK)
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", o.X, o.KK)
	case 0x5:
		if o.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", o.X, o.Y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", o.X, o.KK)
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", o.X, o.KK)
	case 0x8:
		var name string
		switch o.N {
		case 0x0:
			name = "LD"
		case 0x1:
			name = "OR"
		case 0x2:
			name = "AND"
		case 0x3:
			name = "XOR"
		case 0x4:
			name = "ADD"
		case 0x5:
			name = "SUB"
		case 0x6:
			return fmt.Sprintf("SHR V%X", o.X)
		case 0x7:
			name = "SUBN"
		case 0xE:
			return fmt.Sprintf("SHL V%X", o.X)
		}
		if name != "" {
			return fmt.Sprintf("%s V%X, V%X", name, o.X, o.Y)
		}
	case 0x9:
		if o.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", o.X, o.Y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, $%03X", o.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, $%03X", o.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, $%02X", o.X, o.KK)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, $%X", o.X, o.Y, o.N)
	case 0xE:
		switch o.KK {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", o.X)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", o.X)
		}
	case 0xF:
		switch o.KK {
		case 0x07:
			return fmt.Sprintf("LD V%X, DT", o.X)
		case 0x0A:
			return fmt.Sprintf("LD V%X, K", o.X)
		case 0x15:
			return fmt.Sprintf("LD DT, V%X", o.X)
		case 0x18:
			return fmt.Sprintf("LD ST, V%X", o.X)
		case 0x1E:
			return fmt.Sprintf("ADD I, V%X", o.X)
		case 0x29:
			return fmt.Sprintf("LD F, V%X", o.X)
		case 0x33:
			return fmt.Sprintf("LD B, V%X", o.X)
		case 0x55:
			return fmt.Sprintf("LD [I], V%X", o.X)
		case 0x65:
			return fmt.Sprintf("LD V%X, [I]", o.X)
		}
	}
	return fmt.Sprintf("DW $%04X", o.Raw)
}

// DisassembleProgram lists a raw program as it would sit in memory at base,
// one line per word. A trailing odd byte is emitted as DB.
func DisassembleProgram(program []byte, base uint16) []string {
	var out []string
	i := 0
	for ; i+1 < len(program); i += 2 {
		op := Decode(Word(program[i], program[i+1]))
		out = append(out, fmt.Sprintf("%03X: %04X  %s", int(base)+i, op.Raw, Disassemble(op)))
	}
	if i < len(program) {
		out = append(out, fmt.Sprintf("%03X: %02X    DB $%02X", int(base)+i, program[i], program[i]))
	}
	return out
}
