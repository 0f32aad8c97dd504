package cpu

import "testing"

func TestCPU_SaveLoadState(t *testing.T) {
	c := newCPUWithROM(t, 0x6042, 0xA000, 0xD005, 0x2208, 0x1206)
	step(t, c, 4)
	snap := c.SaveState()
	if snap == nil {
		t.Fatal("SaveState returned nil")
	}
	wantFB := c.Framebuffer()

	c.V[0] = 0
	c.PC = 0x300
	c.SP = 0
	_ = c.Bus().Write(0x200, 0xFF)
	c.Display().Clear()

	if err := c.LoadState(snap); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.V[0] != 0x42 || c.PC != 0x208 || c.SP != 1 || c.Stack[0] != 0x208 {
		t.Fatalf("V0=%02x PC=%03x SP=%d stack0=%03x", c.V[0], c.PC, c.SP, c.Stack[0])
	}
	if b, _ := c.Bus().Read(0x200); b != 0x60 {
		t.Fatalf("memory not restored, got %02x", b)
	}
	if c.Framebuffer() != wantFB {
		t.Fatal("framebuffer not restored")
	}
	if !c.FramebufferDirty() {
		t.Fatal("restore should mark the framebuffer dirty")
	}
}

func TestCPU_LoadStateRejectsGarbage(t *testing.T) {
	c := newCPUWithROM(t, 0x6042)
	if err := c.LoadState([]byte("not gob")); err == nil {
		t.Fatal("expected decode error")
	}
	if c.PC != 0x200 {
		t.Fatalf("failed load changed PC to %03x", c.PC)
	}
}
