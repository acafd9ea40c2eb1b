package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/monitor"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	BootROM string
	NoBoot  bool
	SaveRAM bool // persist battery RAM next to ROM (.sav)
	Dump    string
	Window  bool
	Scale   int
	Title   string
	Profile string // cpu or mem
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.StringVar(&f.BootROM, "bootrom", "", "optional DMG boot ROM (256 bytes)")
	flag.BoolVar(&f.NoBoot, "noboot", false, "start with the boot ROM overlay disabled")
	flag.BoolVar(&f.SaveRAM, "save", true, "back battery RAM with ROM.sav")
	flag.StringVar(&f.Dump, "dump", "", "hex dump an address range through the bus, e.g. 0100:014f")
	flag.BoolVar(&f.Window, "window", false, "open the memory monitor with keyboard input")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "gbvm", "window title")
	flag.StringVar(&f.Profile, "profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()
	return f
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func report(w io.Writer, h *cart.Header) {
	fmt.Fprintf(w, "Title:        %s\n", h.Title)
	if h.Manufacturer != "" {
		fmt.Fprintf(w, "Manufacturer: %s\n", h.Manufacturer)
	}
	fmt.Fprintf(w, "Licensee:     %s\n", h.Licensee())
	fmt.Fprintf(w, "Type:         %s (%02x)\n", h.CartType, byte(h.CartType))
	fmt.Fprintf(w, "ROM:          %d banks (%d KiB)\n", h.ROMBanks, h.ROMSizeBytes()/1024)
	fmt.Fprintf(w, "RAM:          %d banks (%d KiB)\n", h.RAMBanks, h.RAMSizeBytes()/1024)
	fmt.Fprintf(w, "Destination:  %s\n", h.Destination)
	fmt.Fprintf(w, "Version:      %d\n", h.MaskVersion)
	fmt.Fprintf(w, "CGB/SGB:      %02x/%02x\n", h.CGBFlag, h.SGBFlag)
	fmt.Fprintf(w, "Header sum:   %02x (ok)\n", h.HeaderChecksum)
	fmt.Fprintf(w, "Global sum:   %04x\n", h.GlobalChecksum)
	fmt.Fprintf(w, "Logo:         %v\n", h.LogoOK)
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred profile and battery cleanup
// always happen.
func run(f CLIFlags) error {
	if f.ROMPath == "" {
		return errors.New("-rom is required")
	}

	switch f.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("-profile: unknown mode %q (want cpu or mem)", f.Profile)
	}

	boot, err := readOptional(f.BootROM)
	if err != nil {
		return err
	}
	// prefer absolute path for save placement consistency
	romPath := f.ROMPath
	if abs, err := filepath.Abs(romPath); err == nil {
		romPath = abs
	}

	m := emu.New(emu.Config{
		BootROM:  boot,
		SkipBoot: f.NoBoot,
		SaveRAM:  f.SaveRAM,
		Serial:   os.Stdout,
	})
	if err := m.LoadROMFromFile(romPath); err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	b := m.Bus()
	report(os.Stdout, b.Header())
	if p := m.SavePath(); p != "" {
		log.Printf("battery RAM: %s", p)
	}

	if f.Dump != "" {
		lo, hi, err := monitor.ParseRange(f.Dump)
		if err != nil {
			return fmt.Errorf("-dump: %w", err)
		}
		if err := monitor.Dump(os.Stdout, b, lo, hi); err != nil {
			return fmt.Errorf("-dump: %w", err)
		}
	}

	if !f.Window {
		return nil
	}
	app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale}, m)
	if err := app.Run(); err != nil {
		log.Printf("ui: %v", err)
	}
	return m.FlushBattery()
}
