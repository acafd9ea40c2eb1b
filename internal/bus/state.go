package bus

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ioregs"
)

// ErrStateMismatch is returned when a save state belongs to another cartridge.
var ErrStateMismatch = errors.New("save state was made with a different cartridge")

type busState struct {
	Title          string
	HeaderChecksum byte

	VRAM, WRAM0, WRAM1, OAM, HRAM []byte
	ERAM                          []byte
	ERAMBank                      int
	ROMBank                       int
	Controller                    []byte
	IO                            ioregs.State
	Buttons                       byte
	IE                            bool
}

// SaveState serializes all writable memory, bank selections and latches.
func (b *Bus) SaveState() []byte {
	s := busState{
		Title:          b.header.Title,
		HeaderChecksum: b.header.HeaderChecksum,
		VRAM:           b.vram.Bytes(),
		WRAM0:          b.wram0.Bytes(),
		WRAM1:          b.wram1.Bytes(),
		OAM:            b.oam.Bytes(),
		HRAM:           b.hram.Bytes(),
		ROMBank:        b.romX.Bank(),
		Controller:     b.ctrl.SaveState(),
		IO:             b.io.State(),
		Buttons:        b.Joypad().Buttons(),
		IE:             b.ie,
	}
	if b.eram != nil {
		s.ERAM = b.eram.Bytes()
		s.ERAMBank = b.eram.Bank()
	}
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

// LoadState restores a snapshot taken by SaveState on the same cartridge.
func (b *Bus) LoadState(data []byte) error {
	var s busState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if s.Title != b.header.Title || s.HeaderChecksum != b.header.HeaderChecksum {
		return fmt.Errorf("%w: state for %q, inserted %q", ErrStateMismatch, s.Title, b.header.Title)
	}

	b.vram.Restore(s.VRAM, 0)
	b.wram0.Restore(s.WRAM0, 0)
	b.wram1.Restore(s.WRAM1, 0)
	b.oam.Restore(s.OAM, 0)
	b.hram.Restore(s.HRAM, 0)
	if b.eram != nil {
		b.eram.Restore(s.ERAM, s.ERAMBank)
	}
	b.ctrl.LoadState(s.Controller)
	b.romX.SelectBank(s.ROMBank)
	b.io.Restore(s.IO)
	b.Joypad().SetButtons(s.Buttons)
	b.ie = s.IE
	return nil
}
