package cart

import (
	"fmt"
	"log"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"
)

const (
	ROMBankSize = 0x4000
	RAMBankSize = 0x2000
)

// Controller decodes the bank-select registers a cartridge exposes at
// 0x0000-0x7FFF and applies them to the switchable ROM window and RAM.
type Controller interface {
	// Write handles a CPU write into 0x0000-0x7FFF.
	Write(addr uint16, value byte)
	// RAMEnabled reports whether 0xA000-0xBFFF currently reaches the RAM.
	RAMEnabled() bool
	// SaveState/LoadState serialize the controller registers for save states.
	SaveState() []byte
	LoadState(data []byte)
}

// Cartridge is a parsed image whose storage has not yet been handed to a bus.
type Cartridge struct {
	Header *Header

	low   *storage.Banked
	high  *storage.Banked
	ram   *storage.Banked
	taken bool
}

// Banks is the storage a Cartridge hands over to the bus, all at once.
type Banks struct {
	Low        *storage.Banked // bank 0, never switched
	High       *storage.Banked // banks 1..n-1
	RAM        *storage.Banked // nil when the header declares no RAM
	Controller Controller
}

// Load parses and validates image and splits it into ROM windows. The image
// is copied, so the caller may release it afterwards.
func Load(image []byte) (*Cartridge, error) {
	h, err := ParseHeader(image)
	if err != nil {
		return nil, err
	}

	lowEnd := min(len(image), ROMBankSize)
	var rest []byte
	if len(image) > ROMBankSize {
		rest = image[ROMBankSize:]
	}
	c := &Cartridge{
		Header: h,
		low:    storage.NewROM(ROMBankSize, image[:lowEnd]),
		high:   storage.NewROM(ROMBankSize, rest),
	}
	if h.RAMBanks > 0 {
		c.ram = storage.NewRAM(RAMBankSize, h.RAMBanks)
	}
	if !h.CartType.Supported() {
		log.Printf("cart: %s has no bank switching support, mapping banks 0 and 1 only", h.CartType)
	}
	return c, nil
}

// AttachRAM replaces the external RAM with one backed by buf, typically a
// memory-mapped battery file. buf must hold every declared RAM bank.
func (c *Cartridge) AttachRAM(buf []byte) error {
	if c.taken {
		return ErrTaken
	}
	want := c.Header.RAMSizeBytes()
	if want == 0 || len(buf) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrRAMShape, len(buf), want)
	}
	c.ram = storage.NewRAMFrom(RAMBankSize, c.Header.RAMBanks, buf)
	return nil
}

// Take hands over the ROM windows, the optional RAM and a controller wired
// to them. It succeeds once; the cartridge keeps no reference afterwards.
func (c *Cartridge) Take() (*Banks, error) {
	if c.taken {
		return nil, ErrTaken
	}
	b := &Banks{Low: c.low, High: c.high, RAM: c.ram}
	b.Controller = newController(c.Header.CartType, b.High, b.RAM)
	c.low, c.high, c.ram = nil, nil, nil
	c.taken = true
	return b, nil
}

func newController(t CartType, high, ram *storage.Banked) Controller {
	info := cartTypes[t]
	if info.unsupported {
		return newFixed()
	}
	switch info.kind {
	case kindMBC1:
		return NewMBC1(high, ram)
	case kindMBC2:
		return NewMBC2(high, ram)
	case kindMBC3:
		return NewMBC3(high, ram)
	case kindMBC5:
		return NewMBC5(high, ram)
	default:
		return newFixed()
	}
}

// selectROM maps a controller's ROM bank number onto the switchable window,
// which starts at bank 1. The number wraps at the image size like the
// unconnected address lines do; bank 0 has no slot in the window.
func selectROM(high *storage.Banked, n int) {
	total := high.Banks() + 1
	if total&(total-1) == 0 {
		n &= total - 1
	}
	if n == 0 {
		return
	}
	high.SelectBank(n - 1)
}

func selectRAM(ram *storage.Banked, n int) {
	if ram == nil {
		return
	}
	ram.SelectBank(n)
}
