package cpu

import (
	"strings"
	"testing"
)

func TestDecode_Fields(t *testing.T) {
	op := Decode(0xF123)
	if op.Raw != 0xF123 {
		t.Fatalf("raw got %04x", op.Raw)
	}
	if op.Nibbles != [4]byte{0xF, 0x1, 0x2, 0x3} {
		t.Fatalf("nibbles got %v", op.Nibbles)
	}
	if op.NNN != 0x123 || op.N != 0x3 || op.X != 0x1 || op.Y != 0x2 || op.KK != 0x23 {
		t.Fatalf("fields got nnn=%03x n=%x x=%x y=%x kk=%02x", op.NNN, op.N, op.X, op.Y, op.KK)
	}
	if op.String() != "0xF123" {
		t.Fatalf("String got %q", op.String())
	}
}

func TestDisassemble(t *testing.T) {
	cases := map[uint16]string{
		0x00E0: "CLS",
		0x00EE: "RET",
		0x0123: "DW $0123",
		0x1ABC: "JP $ABC",
		0x2300: "CALL $300",
		0x3A42: "SE VA, $42",
		0x4B01: "SNE VB, $01",
		0x5120: "SE V1, V2",
		0x5121: "DW $5121",
		0x6005: "LD V0, $05",
		0x7005: "ADD V0, $05",
		0x8014: "ADD V0, V1",
		0x8AB5: "SUB VA, VB",
		0x8126: "SHR V1",
		0x812E: "SHL V1",
		0x8128: "DW $8128",
		0x9AB0: "SNE VA, VB",
		0xA2F0: "LD I, $2F0",
		0xB210: "JP V0, $210",
		0xC3FF: "RND V3, $FF",
		0xD125: "DRW V1, V2, $5",
		0xE49E: "SKP V4",
		0xE4A1: "SKNP V4",
		0xE400: "DW $E400",
		0xF50A: "LD V5, K",
		0xF533: "LD B, V5",
		0xF555: "LD [I], V5",
		0xF565: "LD V5, [I]",
		0xF5FF: "DW $F5FF",
	}
	for word, want := range cases {
		if got := Disassemble(Decode(word)); got != want {
			t.Fatalf("Disassemble(%04X) got %q want %q", word, got, want)
		}
	}
}

func TestDisassembleProgram(t *testing.T) {
	lines := DisassembleProgram([]byte{0x60, 0x05, 0x00, 0xEE, 0xAB}, 0x200)
	if len(lines) != 3 {
		t.Fatalf("lines got %d want 3: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "200: 6005") || !strings.HasSuffix(lines[0], "LD V0, $05") {
		t.Fatalf("line 0 got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "RET") {
		t.Fatalf("line 1 got %q", lines[1])
	}
	if lines[2] != "204: AB    DB $AB" {
		t.Fatalf("line 2 got %q", lines[2])
	}
}
