package cart

import "fmt"

// CartType is the hardware byte at 0x0147.
type CartType byte

// controllerKind picks the bank-select logic for a cartridge type.
type controllerKind int

const (
	kindFixed controllerKind = iota
	kindMBC1
	kindMBC2
	kindMBC3
	kindMBC5
)

type cartTypeInfo struct {
	name    string
	kind    controllerKind
	battery bool
	// unsupported types still load but get no bank switching
	unsupported bool
}

var cartTypes = map[CartType]cartTypeInfo{
	0x00: {name: "ROM ONLY"},
	0x01: {name: "MBC1", kind: kindMBC1},
	0x02: {name: "MBC1+RAM", kind: kindMBC1},
	0x03: {name: "MBC1+RAM+BATTERY", kind: kindMBC1, battery: true},
	0x05: {name: "MBC2", kind: kindMBC2},
	0x06: {name: "MBC2+BATTERY", kind: kindMBC2, battery: true},
	0x08: {name: "ROM+RAM"},
	0x09: {name: "ROM+RAM+BATTERY", battery: true},
	0x0B: {name: "MMM01", unsupported: true},
	0x0C: {name: "MMM01+RAM", unsupported: true},
	0x0D: {name: "MMM01+RAM+BATTERY", battery: true, unsupported: true},
	0x0F: {name: "MBC3+TIMER+BATTERY", kind: kindMBC3, battery: true},
	0x10: {name: "MBC3+TIMER+RAM+BATTERY", kind: kindMBC3, battery: true},
	0x11: {name: "MBC3", kind: kindMBC3},
	0x12: {name: "MBC3+RAM", kind: kindMBC3},
	0x13: {name: "MBC3+RAM+BATTERY", kind: kindMBC3, battery: true},
	0x19: {name: "MBC5", kind: kindMBC5},
	0x1A: {name: "MBC5+RAM", kind: kindMBC5},
	0x1B: {name: "MBC5+RAM+BATTERY", kind: kindMBC5, battery: true},
	0x1C: {name: "MBC5+RUMBLE", kind: kindMBC5},
	0x1D: {name: "MBC5+RUMBLE+RAM", kind: kindMBC5},
	0x1E: {name: "MBC5+RUMBLE+RAM+BATTERY", kind: kindMBC5, battery: true},
	0x20: {name: "MBC6", unsupported: true},
	0x22: {name: "MBC7+SENSOR+RUMBLE+RAM+BATTERY", battery: true, unsupported: true},
	0xFC: {name: "POCKET CAMERA", unsupported: true},
	0xFD: {name: "BANDAI TAMA5", unsupported: true},
	0xFE: {name: "HuC3", unsupported: true},
	0xFF: {name: "HuC1+RAM+BATTERY", battery: true, unsupported: true},
}

func (t CartType) String() string {
	if info, ok := cartTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("CartType(%#02x)", byte(t))
}

// Battery reports whether the cartridge keeps its RAM across power cycles.
func (t CartType) Battery() bool { return cartTypes[t].battery }

// Supported reports whether bank switching is emulated for this type.
func (t CartType) Supported() bool {
	info, ok := cartTypes[t]
	return ok && !info.unsupported
}
