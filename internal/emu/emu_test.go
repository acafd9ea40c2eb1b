package emu

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart/carttest"
)

func writeROM(t *testing.T, rom []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.gb")
	require.NoError(t, os.WriteFile(path, rom, 0644))
	return path
}

func TestLoadROMFromFile(t *testing.T) {
	rom := carttest.BuildROM("FILE", 0x01, 0x01, 0x00, 64*1024)
	path := writeROM(t, rom)

	m := New(Config{SkipBoot: true})
	require.NoError(t, m.LoadROMFromFile(path))
	defer m.Close()

	assert.Equal(t, path, m.ROMPath())
	assert.Equal(t, "FILE", m.Bus().Header().Title)
	m.Bus().Write(0x2000, 0x03)
	assert.Equal(t, byte(3), m.Bus().Read(0x4000))
	assert.Empty(t, m.SavePath())
}

func TestLoadROMFromFile_Errors(t *testing.T) {
	m := New(Config{})
	assert.Error(t, m.LoadROMFromFile(filepath.Join(t.TempDir(), "missing.gb")))

	empty := writeROM(t, nil)
	assert.ErrorIs(t, m.LoadROMFromFile(empty), cart.ErrTooSmall)

	bad := carttest.BuildROM("BAD", 0x00, 0x00, 0x00, 0x8000)
	bad[0x014D]++
	assert.ErrorIs(t, m.LoadROMFromFile(writeROM(t, bad)), cart.ErrHeaderChecksum)
	assert.Nil(t, m.Bus())
}

func TestBatteryRAMPersists(t *testing.T) {
	rom := carttest.BuildROM("SAVE", 0x03, 0x01, 0x02, 64*1024) // MBC1+RAM+BATTERY
	path := writeROM(t, rom)

	m := New(Config{SkipBoot: true, SaveRAM: true})
	require.NoError(t, m.LoadROMFromFile(path))
	sav := filepath.Join(filepath.Dir(path), "game.sav")
	assert.Equal(t, sav, m.SavePath())

	b := m.Bus()
	b.Write(0x0000, 0x0A)
	b.Write(0xA100, 0x5A)
	require.NoError(t, m.FlushBattery())
	require.NoError(t, m.Close())

	data, err := os.ReadFile(sav)
	require.NoError(t, err)
	require.Len(t, data, cart.RAMBankSize)
	assert.Equal(t, byte(0x5A), data[0x100])

	n := New(Config{SkipBoot: true, SaveRAM: true})
	require.NoError(t, n.LoadROMFromFile(path))
	defer n.Close()
	n.Bus().Write(0x0000, 0x0A)
	assert.Equal(t, byte(0x5A), n.Bus().Read(0xA100))
}

func TestNoBatteryNoSaveFile(t *testing.T) {
	rom := carttest.BuildROM("NOBATT", 0x02, 0x01, 0x02, 64*1024) // MBC1+RAM
	path := writeROM(t, rom)

	m := New(Config{SaveRAM: true})
	require.NoError(t, m.LoadROMFromFile(path))
	defer m.Close()
	assert.Empty(t, m.SavePath())
	_, err := os.Stat(filepath.Join(filepath.Dir(path), "game.sav"))
	assert.True(t, os.IsNotExist(err))
}

func TestSerialOutput(t *testing.T) {
	var out bytes.Buffer
	m := New(Config{SkipBoot: true, Serial: &out})
	require.NoError(t, m.LoadCartridge(carttest.BuildROM("SER", 0x00, 0x00, 0x00, 0x8000)))
	for _, c := range []byte("Passed") {
		m.Bus().Write(0xFF01, c)
		m.Bus().Write(0xFF02, 0x81)
	}
	assert.Equal(t, "Passed", out.String())
}

func TestSetButtons_KeepsJoypadAcrossReload(t *testing.T) {
	m := New(Config{SkipBoot: true})
	m.SetButtons(Buttons{A: true}) // no cartridge yet: ignored
	require.NoError(t, m.LoadCartridge(carttest.BuildROM("ONE", 0x00, 0x00, 0x00, 0x8000)))
	jp := m.Joypad()

	m.SetButtons(Buttons{Down: true, Start: true})
	m.Bus().Write(0xFF00, 0x20)
	assert.Equal(t, byte(0x20|0x07), m.Bus().Read(0xFF00))

	require.NoError(t, m.LoadCartridge(carttest.BuildROM("TWO", 0x00, 0x00, 0x00, 0x8000)))
	assert.Same(t, jp, m.Joypad())
}

func TestStateFiles(t *testing.T) {
	m := New(Config{SkipBoot: true})
	statePath := filepath.Join(t.TempDir(), "slot0.savestate")
	assert.ErrorIs(t, m.SaveStateToFile(statePath), ErrNoCartridge)

	require.NoError(t, m.LoadCartridge(carttest.BuildROM("SLOT", 0x00, 0x00, 0x00, 0x8000)))
	m.Bus().Write(0xC000, 0x31)
	require.NoError(t, m.SaveStateToFile(statePath))

	m.Bus().Write(0xC000, 0x00)
	require.NoError(t, m.LoadStateFromFile(statePath))
	assert.Equal(t, byte(0x31), m.Bus().Read(0xC000))
}
