package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/cart/carttest"
)

func TestParseHeader_Basic(t *testing.T) {
	rom := carttest.BuildROM("TEST", 0x01, 0x01, 0x02, 64*1024) // MBC1, 64KiB, 8KiB RAM

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.Title != "TEST" {
		t.Fatalf("Title got %q want %q", h.Title, "TEST")
	}
	if h.CartType != 0x01 || h.CartType.String() != "MBC1" {
		t.Fatalf("CartType got %#02x / %s", byte(h.CartType), h.CartType)
	}
	if h.ROMSizeBytes() != 64*1024 || h.ROMBanks != 4 {
		t.Fatalf("ROM size decode got %d bytes / %d banks", h.ROMSizeBytes(), h.ROMBanks)
	}
	if h.RAMSizeBytes() != 8*1024 || h.RAMBanks != 1 {
		t.Fatalf("RAM size decode got %d", h.RAMSizeBytes())
	}
	if !HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = false, want true")
	}
	if h.NewLicensee != NewNintendoRD1 || h.Licensee() != "Nintendo Research & Development 1" {
		t.Fatalf("licensee got %v / %q", h.NewLicensee, h.Licensee())
	}
	if h.Destination != DestinationOverseas {
		t.Fatalf("destination got %v", h.Destination)
	}
	if !h.LogoOK {
		t.Fatalf("logo not recognised")
	}

	if want := ComputeGlobalChecksum(rom); h.GlobalChecksum != want {
		t.Fatalf("Global checksum got %#04x want %#04x", h.GlobalChecksum, want)
	}
}

func TestParseHeader_GlobalChecksumLowHigh(t *testing.T) {
	rom := carttest.BuildROM("GSUM", 0x00, 0x00, 0x00, 32*1024)
	rom[0x014E], rom[0x014F] = 0x34, 0x12
	h, err := ParseHeader(rom)
	require.NoError(t, err, "global checksum is informational and never verified")
	assert.Equal(t, uint16(0x1234), h.GlobalChecksum)
}

func TestParseHeader_TitleFiltering(t *testing.T) {
	rom := carttest.BuildROM("", 0x00, 0x00, 0x00, 32*1024)
	copy(rom[0x0134:0x0144], []byte{'P', 'O', 0x00, 'K', 0xE9, 'E', 'M', 'O', 'N', 0, 0, 'A', 'B', 'C', 'D', 0xC0})
	carttest.Fix(rom)

	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.Equal(t, "POKEMONABCD", h.Title)
	assert.Equal(t, "ABCD", h.Manufacturer)
	assert.Equal(t, byte(0xC0), h.CGBFlag)
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := carttest.BuildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0134] ^= 0xFF // corrupt a header byte
	if HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = true, want false after corruption")
	}
	if _, err := ParseHeader(rom); !errors.Is(err, ErrHeaderChecksum) {
		t.Fatalf("ParseHeader err = %v, want ErrHeaderChecksum", err)
	}
}

func TestHeaderChecksum_AnySingleByteMutationFails(t *testing.T) {
	rom := carttest.BuildROM("MUTATE", 0x13, 0x02, 0x03, 128*1024)
	for addr := 0x0134; addr <= 0x014C; addr++ {
		mutated := append([]byte(nil), rom...)
		mutated[addr]++
		assert.False(t, HeaderChecksumOK(mutated), "mutation at %#04x went unnoticed", addr)
	}
}

// The header of Tetris (World) (Rev 1): title, licensee 0x01, ROM only.
func TestHeaderChecksum_CommercialHeader(t *testing.T) {
	rom := make([]byte, 32*1024)
	copy(rom[0x0134:], []byte("TETRIS"))
	rom[0x014B] = 0x01
	rom[0x014C] = 0x01
	rom[0x014D] = 0x0A
	assert.True(t, HeaderChecksumOK(rom))
	assert.Equal(t, byte(0x0A), HeaderChecksum(rom))
}

func TestHeaderChecksum_ShortImage(t *testing.T) {
	short := make([]byte, 0x100)
	assert.Equal(t, byte(0), HeaderChecksum(short))
	assert.False(t, HeaderChecksumOK(short))
}

func TestParseHeader_ShortROM(t *testing.T) {
	short := make([]byte, 0x140) // too small (header needs through 0x014F)
	if _, err := ParseHeader(short); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall on too-small ROM, got %v", err)
	}
}

func TestParseHeader_ROMSizeTable(t *testing.T) {
	cases := map[byte]int{
		0x00: 2, 0x01: 4, 0x02: 8, 0x03: 16, 0x04: 32,
		0x05: 64, 0x06: 128, 0x07: 256, 0x08: 512,
		0x52: 72, 0x53: 80, 0x54: 96,
	}
	for code, banks := range cases {
		got, err := decodeROMSize(code)
		require.NoError(t, err, "code %#02x", code)
		assert.Equal(t, banks, got, "code %#02x", code)
	}
	for _, code := range []byte{0x09, 0x51, 0x55, 0xFF} {
		_, err := decodeROMSize(code)
		assert.ErrorIs(t, err, ErrROMSize, "code %#02x", code)
	}
}

func TestParseHeader_RAMSizeTable(t *testing.T) {
	cases := map[byte]int{0x00: 0, 0x01: 1, 0x02: 1, 0x03: 4, 0x04: 16, 0x05: 8}
	for code, banks := range cases {
		got, err := decodeRAMSize(code)
		require.NoError(t, err)
		assert.Equal(t, banks, got, "code %#02x", code)
	}
	_, err := decodeRAMSize(0x06)
	assert.ErrorIs(t, err, ErrRAMSize)
}

func TestParseHeader_RejectsUnknownCodes(t *testing.T) {
	cases := []struct {
		name   string
		addr   int
		value  byte
		target error
	}{
		{"rom size", 0x0148, 0x0A, ErrROMSize},
		{"ram size", 0x0149, 0x07, ErrRAMSize},
		{"cart type", 0x0147, 0x04, ErrCartType},
		{"destination", 0x014A, 0x02, ErrDestination},
		{"old licensee", 0x014B, 0x02, ErrLicensee},
		{"new licensee", 0x0144, 'Z', ErrLicensee},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rom := carttest.BuildROM("BAD", 0x00, 0x00, 0x00, 32*1024)
			rom[tc.addr] = tc.value
			carttest.Fix(rom)
			_, err := ParseHeader(rom)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestParseHeader_OldLicenseeIgnoresNewCode(t *testing.T) {
	rom := carttest.BuildROM("OLD", 0x00, 0x00, 0x00, 32*1024)
	rom[0x014B] = 0x01
	rom[0x0144], rom[0x0145] = 0x00, 0x00
	carttest.Fix(rom)

	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.Equal(t, NewLicenseeUnset, h.NewLicensee)
	assert.Equal(t, "Nintendo", h.Licensee())
}
