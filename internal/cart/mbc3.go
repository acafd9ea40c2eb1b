package cart

import "github.com/FabianRolfMatthiasNoll/gbvm/internal/storage"

// MBC3 implements ROM/RAM banking (RTC not implemented here).
// Banking behavior:
// - 0000-1FFF: RAM enable (0x0A in low nibble)
// - 2000-3FFF: ROM bank low 7 bits (0 maps to 1)
// - 4000-5FFF: RAM bank (0-3) or RTC register (08-0C)
// - 6000-7FFF: latch clock, ignored without RTC
//
// While an RTC register is selected A000-BFFF is closed: reads give 0xFF
// and writes are dropped so they never reach battery RAM.
type MBC3 struct {
	high, ram *storage.Banked

	ramEnabled bool
	romBank    byte // 1..127
	ramBank    byte // 0..3
	rtcSelect  bool
}

func NewMBC3(high, ram *storage.Banked) *MBC3 {
	m := &MBC3{high: high, ram: ram, romBank: 1}
	m.apply()
	return m
}

func (m *MBC3) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		v := value & 0x7F
		if v == 0 {
			v = 1
		}
		m.romBank = v
		m.apply()
	case addr < 0x6000:
		switch {
		case value <= 0x03:
			m.ramBank = value
			m.rtcSelect = false
			m.apply()
		case value >= 0x08 && value <= 0x0C:
			m.rtcSelect = true
		}
	}
}

func (m *MBC3) apply() {
	selectROM(m.high, int(m.romBank))
	selectRAM(m.ram, int(m.ramBank))
}

func (m *MBC3) RAMEnabled() bool { return m.ramEnabled && !m.rtcSelect }

func (m *MBC3) SaveState() []byte {
	r := bankRegs{ROMBank: uint16(m.romBank), RAMBank: m.ramBank, RAMEnabled: m.ramEnabled}
	if m.rtcSelect {
		r.Mode = 1
	}
	return encodeRegs(r)
}

func (m *MBC3) LoadState(data []byte) {
	if r, ok := decodeRegs(data); ok {
		m.romBank, m.ramBank, m.ramEnabled = byte(r.ROMBank), r.RAMBank, r.RAMEnabled
		m.rtcSelect = r.Mode == 1
		m.apply()
	}
}
