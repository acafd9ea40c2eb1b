package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAM_ReadWrite(t *testing.T) {
	r := NewRAM(0x1000, 1)
	if got := r.Read(0x0000); got != 0xFF {
		t.Fatalf("fresh RAM got %02x want ff", got)
	}
	r.Write(0x0FFF, 0x42)
	if got := r.Read(0x0FFF); got != 0x42 {
		t.Fatalf("RAM read got %02x want 42", got)
	}
}

func TestRAM_OutOfWindow(t *testing.T) {
	r := NewRAM(0x7F, 1)
	r.Write(0x7F, 0x12) // one past the window
	assert.Equal(t, OpenBus, r.Read(0x7F))
	assert.Equal(t, OpenBus, r.Read(0xFFFF))
	for _, b := range r.Bytes() {
		require.Equal(t, OpenBus, b, "out-of-window write leaked into the backing store")
	}
}

func TestROM_IgnoresWrites(t *testing.T) {
	rom := NewROM(0x4000, []byte{0x01, 0x02, 0x03})
	rom.Write(0x0000, 0xAA)
	assert.Equal(t, byte(0x01), rom.Read(0x0000))
	assert.Equal(t, 0, rom.WriteBlock(0, []byte{9, 9}))
	// padding past the image
	assert.Equal(t, OpenBus, rom.Read(0x0003))
	assert.True(t, rom.ReadOnly())
}

func TestROM_SplitsIntoBanks(t *testing.T) {
	image := make([]byte, 3*0x4000+0x10)
	for bank := 0; bank < 4; bank++ {
		image[bank*0x4000] = byte(0xB0 + bank)
	}
	rom := NewROM(0x4000, image)
	require.Equal(t, 4, rom.Banks())
	for bank := 0; bank < 4; bank++ {
		rom.SelectBank(bank)
		assert.Equal(t, byte(0xB0+bank), rom.Read(0), "bank %d", bank)
	}
	// partial last bank is padded
	assert.Equal(t, OpenBus, rom.Read(0x10))
}

func TestSelectBank_Boundary(t *testing.T) {
	const n = 4
	r := NewRAM(0x2000, n)
	for bank := 0; bank < n; bank++ {
		r.SelectBank(bank)
		r.Write(0, byte(bank+1))
	}

	r.SelectBank(1)
	r.SelectBank(n) // out of range, ignored
	assert.Equal(t, 1, r.Bank())
	r.SelectBank(-1)
	assert.Equal(t, 1, r.Bank())

	r.SelectBank(n - 1)
	assert.Equal(t, byte(n), r.Read(0))
}

func TestWriteBlock_Truncates(t *testing.T) {
	oam := NewRAM(0xA0, 1)
	src := make([]byte, 0x100)
	for i := range src {
		src[i] = byte(i)
	}
	n := oam.WriteBlock(0x90, src)
	assert.Equal(t, 0x10, n)
	assert.Equal(t, byte(0x00), oam.Read(0x90))
	assert.Equal(t, byte(0x0F), oam.Read(0x9F))
	assert.Equal(t, 0, oam.WriteBlock(0xA0, src))
}

func TestWriteBlock_ActiveBankOnly(t *testing.T) {
	r := NewRAM(0x10, 2)
	r.SelectBank(1)
	r.WriteBlock(0, make([]byte, 0x20))
	r.SelectBank(0)
	assert.Equal(t, OpenBus, r.Read(0), "bank 0 must be untouched")
}

func TestNewRAMFrom(t *testing.T) {
	buf := make([]byte, 0x4000)
	r := NewRAMFrom(0x2000, 2, buf)
	r.SelectBank(1)
	r.Write(0x0001, 0x77)
	assert.Equal(t, byte(0x77), buf[0x2001])

	assert.Panics(t, func() { NewRAMFrom(0x2000, 2, make([]byte, 10)) })
}

func TestRestore(t *testing.T) {
	r := NewRAM(0x10, 2)
	snap := make([]byte, 0x20)
	snap[0x11] = 0x5A
	r.Restore(snap, 1)
	assert.Equal(t, 1, r.Bank())
	assert.Equal(t, byte(0x5A), r.Read(0x01))

	rom := NewROM(0x10, []byte{0x01})
	rom.Restore([]byte{0xEE}, 0)
	assert.Equal(t, byte(0x01), rom.Read(0))
}

func TestInvalidShapePanics(t *testing.T) {
	assert.Panics(t, func() { NewRAM(0, 1) })
	assert.Panics(t, func() { NewRAM(0x10, 0) })
}
