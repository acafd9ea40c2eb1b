// Package storage provides fixed-window memory regions split into equally
// sized banks, of which exactly one is visible at a time. It backs every ROM
// and RAM area of the address space: cartridge ROM windows, external RAM,
// video RAM, work RAM, sprite memory and high RAM.
package storage

import "fmt"

// OpenBus is returned for reads that have no backing byte.
const OpenBus byte = 0xFF

// Banked is a window of Window bytes over Banks×Window backing bytes.
// Accesses past the window read as OpenBus and writes are dropped.
type Banked struct {
	window   int
	banks    int
	active   int
	readOnly bool
	data     []byte
}

// NewRAM allocates a writable region with the given window size and bank
// count. Fresh RAM reads as 0xFF like the uninitialised chips.
func NewRAM(window, banks int) *Banked {
	mustShape(window, banks)
	data := make([]byte, window*banks)
	for i := range data {
		data[i] = OpenBus
	}
	return &Banked{window: window, banks: banks, data: data}
}

// NewRAMFrom wraps an existing buffer (e.g. a memory-mapped save file) as a
// writable region. len(buf) must be exactly window*banks.
func NewRAMFrom(window, banks int, buf []byte) *Banked {
	mustShape(window, banks)
	if len(buf) != window*banks {
		panic(fmt.Sprintf("storage: buffer is %d bytes, want %d", len(buf), window*banks))
	}
	return &Banked{window: window, banks: banks, data: buf}
}

// NewROM splits image into read-only banks of window bytes. A trailing
// partial bank is padded with OpenBus; an empty image yields one blank bank.
func NewROM(window int, image []byte) *Banked {
	banks := (len(image) + window - 1) / window
	if banks == 0 {
		banks = 1
	}
	mustShape(window, banks)
	data := make([]byte, window*banks)
	n := copy(data, image)
	for i := n; i < len(data); i++ {
		data[i] = OpenBus
	}
	return &Banked{window: window, banks: banks, readOnly: true, data: data}
}

func mustShape(window, banks int) {
	if window <= 0 || window > 0x10000 || banks <= 0 {
		panic(fmt.Sprintf("storage: invalid shape window=%#x banks=%d", window, banks))
	}
}

// Read returns the byte at offset within the active bank.
func (b *Banked) Read(offset uint16) byte {
	if int(offset) >= b.window {
		return OpenBus
	}
	return b.data[b.active*b.window+int(offset)]
}

// Write stores value at offset within the active bank. Read-only regions
// ignore writes.
func (b *Banked) Write(offset uint16, value byte) {
	if b.readOnly || int(offset) >= b.window {
		return
	}
	b.data[b.active*b.window+int(offset)] = value
}

// WriteBlock copies src into the active bank starting at base, truncating
// at the window boundary. It returns the number of bytes stored.
func (b *Banked) WriteBlock(base uint16, src []byte) int {
	if b.readOnly || int(base) >= b.window {
		return 0
	}
	start := b.active*b.window + int(base)
	end := (b.active + 1) * b.window
	return copy(b.data[start:end], src)
}

// SelectBank makes bank the active one. Out-of-range requests are ignored.
func (b *Banked) SelectBank(bank int) {
	if bank < 0 || bank >= b.banks {
		return
	}
	b.active = bank
}

// Bank reports the active bank index.
func (b *Banked) Bank() int { return b.active }

// Banks reports the number of banks.
func (b *Banked) Banks() int { return b.banks }

// Window reports the window size in bytes.
func (b *Banked) Window() int { return b.window }

// ReadOnly reports whether writes are ignored.
func (b *Banked) ReadOnly() bool { return b.readOnly }

// Bytes exposes the full backing store, all banks concatenated. Callers use
// it for battery saves and snapshots; the slice aliases the region.
func (b *Banked) Bytes() []byte { return b.data }

// Restore overwrites the backing store from data and reselects bank. ROM
// contents are never replaced, only the bank selection.
func (b *Banked) Restore(data []byte, bank int) {
	if !b.readOnly {
		copy(b.data, data)
	}
	b.SelectBank(bank)
}
