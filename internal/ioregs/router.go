// Package ioregs decodes the I/O register page (0xFF00-0xFF7F) and forwards
// each register to the peripheral that owns it.
package ioregs

import (
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/joypad"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"
)

// Register offsets relative to 0xFF00.
const (
	P1   = 0x00
	SB   = 0x01
	SC   = 0x02
	DIV  = 0x04
	TAC  = 0x07
	IF   = 0x0F
	NR10 = 0x10
	NR52 = 0x26
	Wave = 0x30
	LCDC = 0x40
	LYC  = 0x45
	DMA  = 0x46
	BGP  = 0x47
	WX   = 0x4B
	BOOT = 0x50

	waveSize = 0x10
)

// ErrUnmapped marks an access to an I/O offset nobody handles.
var ErrUnmapped = errors.New("no handler for I/O register")

// AccessError is the panic value raised for unhandled I/O offsets.
type AccessError struct {
	Offset uint16
	Value  byte
	Write  bool
}

func (e *AccessError) Error() string {
	if e.Write {
		return fmt.Sprintf("%v: write %#02x to 0xFF%02X", ErrUnmapped, e.Value, e.Offset)
	}
	return fmt.Sprintf("%v: read 0xFF%02X", ErrUnmapped, e.Offset)
}

func (e *AccessError) Unwrap() error { return ErrUnmapped }

// Peripheral is the read/write contract shared by every register group.
// Offsets passed in are relative to 0xFF00.
type Peripheral interface {
	Read(offset uint16) byte
	Write(offset uint16, value byte)
}

// Handlers plugs the collaborators that own register groups outside this
// package. A nil handler leaves its registers unmapped.
type Handlers struct {
	Serial     Peripheral // 0x01-0x02
	Timer      Peripheral // 0x04-0x07
	Interrupts Peripheral // 0x0F
	Sound      Peripheral // 0x10-0x26
	Wave       Peripheral // 0x30-0x3F, plain RAM when nil
	Video      Peripheral // 0x40-0x45, 0x47-0x4B
}

// Router is the second-level decoder for the I/O page. It owns the joypad,
// the OAM DMA source register and the boot ROM disable latch.
type Router struct {
	joypad *joypad.Joypad
	h      Handlers

	dmaPage  byte
	dma      func(page byte)
	bootLock byte
}

// New builds a router around jp. dma is called synchronously with the source
// page each time the DMA register is written.
func New(jp *joypad.Joypad, h Handlers, dma func(page byte)) *Router {
	if h.Wave == nil {
		h.Wave = storage.NewRAM(waveSize, 1)
	}
	return &Router{joypad: jp, h: h, dma: dma}
}

// Joypad returns the input controller so an input source can be wired to it.
func (r *Router) Joypad() *joypad.Joypad { return r.joypad }

// BootROMEnabled reports whether the boot ROM still overlays 0x0000-0x00FF.
func (r *Router) BootROMEnabled() bool { return r.bootLock == 0 }

// DMAPage returns the last page written to the DMA register.
func (r *Router) DMAPage() byte { return r.dmaPage }

func (r *Router) Read(offset uint16) byte {
	switch {
	case offset == P1:
		return r.joypad.Read(offset)
	case offset == DMA:
		return r.dmaPage
	case offset == BOOT:
		return r.bootLock
	}
	p, local := r.route(offset)
	if p == nil {
		panic(&AccessError{Offset: offset})
	}
	return p.Read(local)
}

func (r *Router) Write(offset uint16, value byte) {
	switch {
	case offset == P1:
		r.joypad.Write(offset, value)
		return
	case offset == DMA:
		r.dmaPage = value
		if r.dma != nil {
			r.dma(value)
		}
		return
	case offset == BOOT:
		// once cleared the overlay stays off until the bus is rebuilt
		if r.bootLock == 0 {
			r.bootLock = value
		}
		return
	}
	p, local := r.route(offset)
	if p == nil {
		panic(&AccessError{Offset: offset, Value: value, Write: true})
	}
	p.Write(local, value)
}

// route returns the handler for offset and the offset it expects. Wave RAM
// is addressed from zero; every other group sees the page offset unchanged.
func (r *Router) route(offset uint16) (Peripheral, uint16) {
	switch {
	case offset >= SB && offset <= SC:
		return r.h.Serial, offset
	case offset >= DIV && offset <= TAC:
		return r.h.Timer, offset
	case offset == IF:
		return r.h.Interrupts, offset
	case offset >= NR10 && offset <= NR52:
		return r.h.Sound, offset
	case offset >= Wave && offset < Wave+waveSize:
		return r.h.Wave, offset - Wave
	case offset >= LCDC && offset <= LYC, offset >= BGP && offset <= WX:
		return r.h.Video, offset
	}
	return nil, offset
}

// State is the router's latched registers, for save states.
type State struct {
	DMAPage  byte
	BootLock byte
	JoypSel  byte
}

func (r *Router) State() State {
	return State{DMAPage: r.dmaPage, BootLock: r.bootLock, JoypSel: r.joypad.Selection()}
}

// Restore reloads latched registers without triggering a DMA. A boot ROM
// overlay that is already off stays off.
func (r *Router) Restore(s State) {
	r.dmaPage = s.DMAPage
	if r.bootLock == 0 {
		r.bootLock = s.BootLock
	}
	r.joypad.Write(P1, s.JoypSel)
}
