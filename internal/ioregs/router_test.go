package ioregs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/joypad"
)

// regs is a flat register file that remembers the offsets it saw.
type regs struct {
	data [0x80]byte
	seen []uint16
}

func (r *regs) Read(offset uint16) byte {
	r.seen = append(r.seen, offset)
	return r.data[offset]
}

func (r *regs) Write(offset uint16, value byte) {
	r.seen = append(r.seen, offset)
	r.data[offset] = value
}

func accessPanic(t *testing.T, fn func()) (err *AccessError) {
	t.Helper()
	defer func() {
		v := recover()
		require.NotNil(t, v, "expected a panic")
		e, ok := v.(error)
		require.True(t, ok, "panic value %v is not an error", v)
		require.True(t, errors.Is(e, ErrUnmapped), "panic %v does not wrap ErrUnmapped", e)
		require.True(t, errors.As(e, &err))
	}()
	fn()
	return nil
}

func TestRouter_Groups(t *testing.T) {
	timer, sound, video, serial, irq := &regs{}, &regs{}, &regs{}, &regs{}, &regs{}
	r := New(joypad.New(), Handlers{Serial: serial, Timer: timer, Sound: sound, Video: video, Interrupts: irq}, nil)

	groups := []struct {
		p      *regs
		lo, hi uint16
	}{
		{serial, 0x01, 0x02},
		{timer, 0x04, 0x07},
		{irq, 0x0F, 0x0F},
		{sound, 0x10, 0x26},
		{video, 0x40, 0x45},
		{video, 0x47, 0x4B},
	}
	for _, g := range groups {
		for off := g.lo; off <= g.hi; off++ {
			r.Write(off, byte(off))
			assert.Equal(t, byte(off), r.Read(off), "offset %#02x", off)
			assert.Equal(t, byte(off), g.p.data[off], "offset %#02x routed elsewhere", off)
		}
	}
}

func TestRouter_WaveRAMDefault(t *testing.T) {
	r := New(joypad.New(), Handlers{}, nil)
	for off := uint16(0x30); off <= 0x3F; off++ {
		r.Write(off, byte(0xA0+off-0x30))
	}
	assert.Equal(t, byte(0xA0), r.Read(0x30))
	assert.Equal(t, byte(0xAF), r.Read(0x3F))
}

func TestRouter_WaveHandlerSeesLocalOffsets(t *testing.T) {
	wave := &regs{}
	r := New(joypad.New(), Handlers{Wave: wave}, nil)
	r.Write(0x35, 0x12)
	assert.Equal(t, []uint16{0x05}, wave.seen)
}

func TestRouter_UnmappedPanics(t *testing.T) {
	r := New(joypad.New(), Handlers{}, nil)
	// nil handlers and the holes between groups
	for _, off := range []uint16{0x01, 0x03, 0x05, 0x08, 0x0F, 0x11, 0x27, 0x2F, 0x41, 0x4C, 0x4F, 0x51, 0x7F} {
		e := accessPanic(t, func() { r.Read(off) })
		assert.Equal(t, off, e.Offset)
		assert.False(t, e.Write)

		e = accessPanic(t, func() { r.Write(off, 0x5A) })
		assert.True(t, e.Write)
		assert.Equal(t, byte(0x5A), e.Value)
		assert.Contains(t, e.Error(), "write 0x5a")
	}
}

func TestRouter_Joypad(t *testing.T) {
	jp := joypad.New()
	r := New(jp, Handlers{}, nil)
	jp.UpdateButtonState(joypad.Right, true)
	r.Write(P1, 0x20)
	assert.Equal(t, byte(0x2E), r.Read(P1))
	assert.Same(t, jp, r.Joypad())
}

func TestRouter_DMA(t *testing.T) {
	var pages []byte
	r := New(joypad.New(), Handlers{}, func(page byte) { pages = append(pages, page) })
	r.Write(DMA, 0xC1)
	r.Write(DMA, 0x80)
	assert.Equal(t, []byte{0xC1, 0x80}, pages)
	assert.Equal(t, byte(0x80), r.Read(DMA))
	assert.Equal(t, byte(0x80), r.DMAPage())
}

func TestRouter_BootLatch(t *testing.T) {
	r := New(joypad.New(), Handlers{}, nil)
	assert.True(t, r.BootROMEnabled())

	r.Write(BOOT, 0x00)
	assert.True(t, r.BootROMEnabled(), "writing zero keeps the overlay")

	r.Write(BOOT, 0x01)
	assert.False(t, r.BootROMEnabled())
	r.Write(BOOT, 0x00)
	assert.False(t, r.BootROMEnabled(), "latch cannot be re-enabled")
	assert.Equal(t, byte(0x01), r.Read(BOOT))
}

func TestRouter_StateRestore(t *testing.T) {
	called := false
	r := New(joypad.New(), Handlers{}, func(byte) { called = true })
	r.Restore(State{DMAPage: 0xC0, BootLock: 1, JoypSel: 0x10})
	assert.False(t, called)
	assert.Equal(t, State{DMAPage: 0xC0, BootLock: 1, JoypSel: 0x10}, r.State())
	assert.False(t, r.BootROMEnabled())
}

func TestSerial_ImmediateTransfer(t *testing.T) {
	var out bytes.Buffer
	r := New(joypad.New(), Handlers{Serial: NewSerial(&out)}, nil)

	r.Write(SB, 'A')
	r.Write(SC, 0x81)
	r.Write(SB, 'B')
	r.Write(SC, 0x80) // external clock: nobody drives it
	assert.Equal(t, "A", out.String())
	assert.Equal(t, byte(0xFE), r.Read(SC))
	assert.Equal(t, byte('B'), r.Read(SB))
}

func TestRouter_RestoreKeepsBootDisabled(t *testing.T) {
	r := New(joypad.New(), Handlers{}, nil)
	r.Write(BOOT, 0x11)
	r.Restore(State{})
	assert.False(t, r.BootROMEnabled())
}
