package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	Debug   bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-debug] <rom>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.BoolVar(&f.Debug, "debug", false, "log every executed instruction")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	f.ROMPath = flag.Arg(0)
	return f
}

func main() {
	f := parseFlags()

	m := emu.New(emu.Config{Trace: f.Debug})
	if err := m.LoadROMFromFile(f.ROMPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}
	log.Printf("ROM: %s", m.ROMInfo())

	app := ui.NewApp(ui.Config{}, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
