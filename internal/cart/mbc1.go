package cart

import "github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"

// MBC1 decodes the MBC1 bank registers. Up to 2 MiB ROM and 32 KiB RAM.
// The mode 1 remap of the 0x0000-0x3FFF window is not emulated.
type MBC1 struct {
	high, ram *storage.Banked

	romBankLow5       byte // 0 is remapped to 1
	ramBankOrRomHigh2 byte // RAM bank in mode 1, ROM bank bits 5-6 otherwise
	modeSelect        byte
	ramEnabled        bool
}

func NewMBC1(high, ram *storage.Banked) *MBC1 {
	m := &MBC1{high: high, ram: ram, romBankLow5: 1}
	m.apply()
	return m
}

func (m *MBC1) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
		return
	case addr < 0x4000:
		m.romBankLow5 = value & 0x1F
		if m.romBankLow5 == 0 {
			m.romBankLow5 = 1
		}
	case addr < 0x6000:
		m.ramBankOrRomHigh2 = value & 0x03
	case addr < 0x8000:
		m.modeSelect = value & 0x01
	default:
		return
	}
	m.apply()
}

func (m *MBC1) apply() {
	selectROM(m.high, int(m.romBankLow5)|int(m.ramBankOrRomHigh2)<<5)
	if m.modeSelect == 1 {
		selectRAM(m.ram, int(m.ramBankOrRomHigh2))
	} else {
		selectRAM(m.ram, 0)
	}
}

func (m *MBC1) RAMEnabled() bool { return m.ramEnabled }

func (m *MBC1) SaveState() []byte {
	return encodeRegs(bankRegs{
		ROMBank:    uint16(m.romBankLow5),
		RAMBank:    m.ramBankOrRomHigh2,
		Mode:       m.modeSelect,
		RAMEnabled: m.ramEnabled,
	})
}

func (m *MBC1) LoadState(data []byte) {
	r, ok := decodeRegs(data)
	if !ok {
		return
	}
	m.romBankLow5, m.ramBankOrRomHigh2 = byte(r.ROMBank), r.RAMBank
	m.modeSelect, m.ramEnabled = r.Mode, r.RAMEnabled
	m.apply()
}
