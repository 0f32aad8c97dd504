package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/video"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	steps := flag.Int("steps", 600, "CPU ticks to run")
	trace := flag.Bool("trace", false, "log every executed instruction")
	disasm := flag.Bool("disasm", false, "print a listing of the ROM and exit")
	pngOut := flag.String("outpng", "", "write the final framebuffer to PNG at path")
	expect := flag.String("expect", "", "assert framebuffer CRC32 (hex)")
	seed := flag.Int64("seed", 1, "RND seed, for reproducible runs")
	quirkVF := flag.Bool("fx1e-vf", false, "Fx1E sets VF when I passes 0xFFF")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}

	m := emu.New(emu.Config{Trace: *trace, Seed: *seed, IndexOverflowFlag: *quirkVF})
	if err := m.LoadROMFromFile(*romPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}
	info := m.ROMInfo()
	log.Printf("ROM: %s", info)
	if cfg := m.CPU().Config(); cfg.IndexOverflowFlag {
		log.Printf("quirk: Fx1E sets VF past 0xFFF")
	}

	if *disasm {
		prog, err := m.CPU().Bus().Slice(bus.ProgramStart, info.Size)
		if err != nil {
			log.Fatal(err)
		}
		for _, line := range cpu.DisassembleProgram(prog, bus.ProgramStart) {
			fmt.Println(line)
		}
		return
	}

	if err := runHeadless(m, *steps, *pngOut, *expect); err != nil {
		log.Fatal(err)
	}
}

func runHeadless(m *emu.Machine, steps int, pngPath, expectCRC string) error {
	if steps <= 0 {
		steps = 1
	}

	start := time.Now()
	var runErr error
	ran := 0
	for ; ran < steps; ran++ {
		if runErr = m.Step(); runErr != nil {
			break
		}
	}
	dur := time.Since(start)
	crc := m.FramebufferCRC()
	c := m.CPU()
	log.Printf("headless: steps=%d elapsed=%s PC=%03X I=%03X fb_crc32=%08x",
		ran, dur.Truncate(time.Millisecond), c.PC, c.I, crc)

	if pngPath != "" {
		fb := m.Framebuffer(colornames.White, colornames.Black)
		if err := saveFramePNG(fb, video.Width, video.Height, pngPath); err != nil {
			return errors.Wrap(err, "write PNG")
		}
		log.Printf("wrote %s", pngPath)
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "after %d steps", ran)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return errors.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
