// Package carttest builds synthetic cartridge images for tests.
package carttest

import "encoding/binary"

var logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// BuildROM makes a synthetic ROM with a valid header & checksums.
// size should match the ROM size code (e.g. 64*1024 for code 0x01).
// Byte 0 of every 16 KiB bank holds the bank number.
func BuildROM(title string, cartType, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)
	for bank := 0; bank*0x4000 < size; bank++ {
		rom[bank*0x4000] = byte(bank)
	}

	copy(rom[0x0104:0x0134], logo[:])

	// Title 0x0134–0x0143 (16 bytes max)
	tbytes := []byte(title)
	if len(tbytes) > 16 {
		tbytes = tbytes[:16]
	}
	copy(rom[0x0134:0x0144], tbytes)

	rom[0x0144], rom[0x0145] = '0', '1' // New licensee ("01")
	rom[0x0146] = 0x00                  // SGB flag
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode
	rom[0x014A] = 0x01 // Destination: overseas
	rom[0x014B] = 0x33 // Old licensee (use new licensee)
	rom[0x014C] = 0x00 // Mask ROM version

	Fix(rom)
	return rom
}

// Fix recomputes the header checksum and the stored global checksum after
// a test mutated header bytes.
func Fix(rom []byte) {
	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(b)
	}
	binary.LittleEndian.PutUint16(rom[0x014E:0x0150], gsum)
}
