// Package emu assembles a session: it loads a cartridge from disk, attaches
// battery RAM and builds the bus the processor and peripherals talk to.
package emu

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/battery"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ioregs"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/joypad"
)

// ErrNoCartridge is returned by operations that need a loaded cartridge.
var ErrNoCartridge = errors.New("no cartridge loaded")

type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
}

type Machine struct {
	cfg     Config
	bus     *bus.Bus
	save    *battery.File
	romPath string
}

func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// LoadCartridge parses rom and rebuilds the bus around it. Battery RAM is
// only persisted for cartridges loaded from a file.
func (m *Machine) LoadCartridge(rom []byte) error {
	c, err := cart.Load(rom)
	if err != nil {
		return err
	}
	return m.insert(c, "")
}

// LoadROMFromFile maps a ROM file, loads it and, when SaveRAM is set and the
// cartridge has a battery, backs its RAM with ROM.sav.
func (m *Machine) LoadROMFromFile(path string) error {
	c, err := loadImage(path)
	if err != nil {
		return err
	}
	return m.insert(c, path)
}

func loadImage(path string) (*cart.Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, cart.ErrTooSmall)
	}
	image, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	defer image.Unmap()
	c, err := cart.Load(image)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (m *Machine) insert(c *cart.Cartridge, path string) error {
	h := c.Header
	var save *battery.File
	if m.cfg.SaveRAM && path != "" && h.CartType.Battery() && h.RAMBanks > 0 {
		f, err := battery.Open(battery.PathFor(path), h.RAMSizeBytes())
		if err != nil {
			return err
		}
		if err := c.AttachRAM(f.Bytes()); err != nil {
			f.Close()
			return err
		}
		save = f
	}

	handlers := m.cfg.IO
	if handlers.Serial == nil && m.cfg.Serial != nil {
		handlers.Serial = ioregs.NewSerial(m.cfg.Serial)
	}
	var jp *joypad.Joypad
	if m.bus != nil {
		jp = m.bus.Joypad() // keep the input source's handle across reloads
	}
	b, err := bus.New(c, bus.Config{BootROM: m.cfg.BootROM, SkipBoot: m.cfg.SkipBoot, IO: handlers, Joypad: jp})
	if err != nil {
		if save != nil {
			save.Close()
		}
		return err
	}

	if err := m.closeSave(); err != nil {
		log.Printf("emu: %v", err)
	}
	m.bus, m.save, m.romPath = b, save, path
	log.Printf("emu: loaded %q type=%s banks=%d ram=%dB", h.Title, h.CartType, h.ROMBanks, h.RAMSizeBytes())
	return nil
}

// Bus exposes the address space; nil before a cartridge is loaded.
func (m *Machine) Bus() *bus.Bus { return m.bus }

// Joypad returns the input handle, or nil before a cartridge is loaded.
func (m *Machine) Joypad() *joypad.Joypad {
	if m.bus == nil {
		return nil
	}
	return m.bus.Joypad()
}

// SetButtons applies a full button snapshot from an input source.
func (m *Machine) SetButtons(btn Buttons) {
	jp := m.Joypad()
	if jp == nil {
		return
	}
	jp.UpdateButtonState(joypad.Right, btn.Right)
	jp.UpdateButtonState(joypad.Left, btn.Left)
	jp.UpdateButtonState(joypad.Up, btn.Up)
	jp.UpdateButtonState(joypad.Down, btn.Down)
	jp.UpdateButtonState(joypad.A, btn.A)
	jp.UpdateButtonState(joypad.B, btn.B)
	jp.UpdateButtonState(joypad.Select, btn.Select)
	jp.UpdateButtonState(joypad.Start, btn.Start)
}

// ROMPath returns the currently loaded ROM file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// SavePath returns the battery file in use, or "".
func (m *Machine) SavePath() string {
	if m.save == nil {
		return ""
	}
	return m.save.Path()
}

// FlushBattery pushes battery RAM to disk without closing the session.
func (m *Machine) FlushBattery() error {
	if m.save == nil {
		return nil
	}
	return m.save.Flush()
}

func (m *Machine) SaveStateToFile(path string) error {
	if m.bus == nil {
		return ErrNoCartridge
	}
	return os.WriteFile(path, m.bus.SaveState(), 0644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	if m.bus == nil {
		return ErrNoCartridge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.bus.LoadState(data)
}

// Close releases the battery file. The machine must not be used afterwards.
func (m *Machine) Close() error {
	err := m.closeSave()
	m.bus = nil
	return err
}

func (m *Machine) closeSave() error {
	if m.save == nil {
		return nil
	}
	err := m.save.Close()
	m.save = nil
	return err
}
