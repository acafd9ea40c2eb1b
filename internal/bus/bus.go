// Package bus implements the 16-bit address space. It owns every memory
// region and peripheral and is the only way the CPU (or a DMA transfer)
// touches them.
package bus

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ioregs"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/joypad"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"
)

//go:embed dmg_boot.bin
var defaultBootROM []byte

const (
	bootSize = 0x100
	vramSize = 0x2000
	wramSize = 0x1000
	oamSize  = 0xA0
	hramSize = 0x7F
)

var (
	ErrProhibited = errors.New("access to prohibited memory area")
	ErrBootROM    = errors.New("boot ROM image must be at least 256 bytes")
)

// AccessError is the panic value raised for accesses to 0xFEA0-0xFEFF.
type AccessError struct {
	Addr  uint16
	Value byte
	Write bool
}

func (e *AccessError) Error() string {
	if e.Write {
		return fmt.Sprintf("%v: write %#02x at %#04x", ErrProhibited, e.Value, e.Addr)
	}
	return fmt.Sprintf("%v: read at %#04x", ErrProhibited, e.Addr)
}

func (e *AccessError) Unwrap() error { return ErrProhibited }

// Peripheral is the contract every addressable region implements. Addresses
// are local to the region.
type Peripheral interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

var (
	_ Peripheral = (*storage.Banked)(nil)
	_ Peripheral = (*ioregs.Router)(nil)
	_ Peripheral = (*joypad.Joypad)(nil)
	_ Peripheral = (*Bus)(nil)
)

// Config selects the boot image and plugs the I/O collaborators.
type Config struct {
	BootROM  []byte // replaces the embedded boot stub; first 256 bytes used
	SkipBoot bool   // start with the boot ROM overlay already disabled
	IO       ioregs.Handlers
	Joypad   *joypad.Joypad // created when nil
}

// Bus owns all peripherals. It is not safe for concurrent use except for
// button updates through the joypad.
type Bus struct {
	header *cart.Header

	boot  *storage.Banked
	rom0  *storage.Banked
	romX  *storage.Banked
	ctrl  cart.Controller
	vram  *storage.Banked
	eram  *storage.Banked // nil when the cartridge has no RAM
	wram0 *storage.Banked
	wram1 *storage.Banked
	oam   *storage.Banked
	io    *ioregs.Router
	hram  *storage.Banked
	ie    bool
}

// New takes the cartridge's storage and builds the address space around it.
func New(c *cart.Cartridge, cfg Config) (*Bus, error) {
	banks, err := c.Take()
	if err != nil {
		return nil, err
	}

	boot := defaultBootROM
	if cfg.BootROM != nil {
		if len(cfg.BootROM) < bootSize {
			return nil, fmt.Errorf("%w: got %d", ErrBootROM, len(cfg.BootROM))
		}
		boot = cfg.BootROM[:bootSize]
	}
	jp := cfg.Joypad
	if jp == nil {
		jp = joypad.New()
	}

	b := &Bus{
		header: c.Header,
		boot:   storage.NewROM(bootSize, boot),
		rom0:   banks.Low,
		romX:   banks.High,
		ctrl:   banks.Controller,
		vram:   storage.NewRAM(vramSize, 1),
		eram:   banks.RAM,
		wram0:  storage.NewRAM(wramSize, 1),
		wram1:  storage.NewRAM(wramSize, 1),
		oam:    storage.NewRAM(oamSize, 1),
		hram:   storage.NewRAM(hramSize, 1),
	}
	b.io = ioregs.New(jp, cfg.IO, b.dma)
	if cfg.SkipBoot {
		b.io.Write(ioregs.BOOT, 0x01)
	}
	return b, nil
}

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < bootSize && b.io.BootROMEnabled():
		return b.boot.Read(addr)
	case addr < 0x4000:
		return b.rom0.Read(addr)
	case addr < 0x8000:
		return b.romX.Read(addr - 0x4000)
	case addr < 0xA000:
		return b.vram.Read(addr - 0x8000)
	case addr < 0xC000:
		if b.eram == nil || !b.ctrl.RAMEnabled() {
			return storage.OpenBus
		}
		return b.eram.Read(addr - 0xA000)
	case addr < 0xD000:
		return b.wram0.Read(addr - 0xC000)
	case addr < 0xE000:
		return b.wram1.Read(addr - 0xD000)
	case addr < 0xF000: // echo RAM mirrors C000-DDFF
		return b.wram0.Read(addr - 0xE000)
	case addr < 0xFE00:
		return b.wram1.Read(addr - 0xF000)
	case addr < 0xFEA0:
		return b.oam.Read(addr - 0xFE00)
	case addr < 0xFF00:
		panic(&AccessError{Addr: addr})
	case addr < 0xFF80:
		return b.io.Read(addr - 0xFF00)
	case addr < 0xFFFF:
		return b.hram.Read(addr - 0xFF80)
	default:
		if b.ie {
			return 1
		}
		return 0
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000: // bank-select registers; ROM itself is read-only
		b.ctrl.Write(addr, value)
	case addr < 0xA000:
		b.vram.Write(addr-0x8000, value)
	case addr < 0xC000:
		if b.eram == nil || !b.ctrl.RAMEnabled() {
			return
		}
		b.eram.Write(addr-0xA000, value)
	case addr < 0xD000:
		b.wram0.Write(addr-0xC000, value)
	case addr < 0xE000:
		b.wram1.Write(addr-0xD000, value)
	case addr < 0xF000:
		b.wram0.Write(addr-0xE000, value)
	case addr < 0xFE00:
		b.wram1.Write(addr-0xF000, value)
	case addr < 0xFEA0:
		b.oam.Write(addr-0xFE00, value)
	case addr < 0xFF00:
		panic(&AccessError{Addr: addr, Value: value, Write: true})
	case addr < 0xFF80:
		b.io.Write(addr-0xFF00, value)
	case addr < 0xFFFF:
		b.hram.Write(addr-0xFF80, value)
	default:
		b.ie = value != 0
	}
}

// ReadBlock returns n bytes starting at base, read one at a time through
// Read. The address wraps past 0xFFFF.
func (b *Bus) ReadBlock(base uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b.Read(base + uint16(i))
	}
	return out
}

// dma copies 0xA0 bytes from page<<8 into sprite memory at once; the
// transfer's bus lockout is not modelled.
func (b *Bus) dma(page byte) {
	b.oam.WriteBlock(0, b.ReadBlock(uint16(page)<<8, oamSize))
}

// Header returns the parsed header of the inserted cartridge.
func (b *Bus) Header() *cart.Header { return b.header }

// Joypad is the handle an input source uses to press buttons.
func (b *Bus) Joypad() *joypad.Joypad { return b.io.Joypad() }

// BootROMEnabled reports whether 0x0000-0x00FF still shows the boot ROM.
func (b *Bus) BootROMEnabled() bool { return b.io.BootROMEnabled() }

// ExternalRAM exposes cartridge RAM for battery persistence; nil if absent.
func (b *Bus) ExternalRAM() *storage.Banked { return b.eram }

// ROMBank reports the cartridge bank number visible at 0x4000.
func (b *Bus) ROMBank() int { return b.romX.Bank() + 1 }

// RAMEnabled reports whether cartridge RAM is present and gated open.
func (b *Bus) RAMEnabled() bool { return b.eram != nil && b.ctrl.RAMEnabled() }

// DMAPage returns the source page of the last OAM DMA.
func (b *Bus) DMAPage() byte { return b.io.DMAPage() }
