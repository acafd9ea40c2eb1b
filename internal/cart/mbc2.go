package cart

import "github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"

// MBC2 selects up to 16 ROM banks. Address bit 8 picks between the RAM
// enable and ROM bank registers. The built-in 512×4 bit RAM is not modelled.
type MBC2 struct {
	high, ram *storage.Banked

	romBank    byte
	ramEnabled bool
}

func NewMBC2(high, ram *storage.Banked) *MBC2 {
	m := &MBC2{high: high, ram: ram, romBank: 1}
	selectROM(m.high, 1)
	return m
}

func (m *MBC2) Write(addr uint16, value byte) {
	if addr >= 0x4000 {
		return
	}
	if addr&0x0100 == 0 {
		m.ramEnabled = value&0x0F == 0x0A
		return
	}
	m.romBank = value & 0x0F
	if m.romBank == 0 {
		m.romBank = 1
	}
	selectROM(m.high, int(m.romBank))
}

func (m *MBC2) RAMEnabled() bool { return m.ramEnabled }

func (m *MBC2) SaveState() []byte {
	return encodeRegs(bankRegs{ROMBank: uint16(m.romBank), RAMEnabled: m.ramEnabled})
}

func (m *MBC2) LoadState(data []byte) {
	if r, ok := decodeRegs(data); ok {
		m.romBank, m.ramEnabled = byte(r.ROMBank), r.RAMEnabled
		selectROM(m.high, int(m.romBank))
	}
}
