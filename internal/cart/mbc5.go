package cart

import "github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"

// MBC5 supports up to 8MB ROM and 128KB RAM, simple banking. Unlike the
// older chips it accepts bank 0 in the switchable window; that selection is
// dropped because bank 0 only exists in the fixed window.
type MBC5 struct {
	high, ram *storage.Banked

	romBank    uint16 // 9 bits (0..511)
	ramBank    byte   // 0..15
	ramEnabled bool
}

func NewMBC5(high, ram *storage.Banked) *MBC5 {
	m := &MBC5{high: high, ram: ram, romBank: 1}
	m.apply()
	return m
}

func (m *MBC5) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
		return
	case addr < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case addr < 0x4000:
		m.romBank = m.romBank&0x0FF | uint16(value&0x01)<<8
	case addr < 0x6000:
		m.ramBank = value & 0x0F
	default:
		return
	}
	m.apply()
}

func (m *MBC5) apply() {
	selectROM(m.high, int(m.romBank))
	selectRAM(m.ram, int(m.ramBank))
}

func (m *MBC5) RAMEnabled() bool { return m.ramEnabled }

func (m *MBC5) SaveState() []byte {
	return encodeRegs(bankRegs{ROMBank: m.romBank, RAMBank: m.ramBank, RAMEnabled: m.ramEnabled})
}

func (m *MBC5) LoadState(data []byte) {
	if r, ok := decodeRegs(data); ok {
		m.romBank, m.ramBank, m.ramEnabled = r.ROMBank, r.RAMBank, r.RAMEnabled
		m.apply()
	}
}
