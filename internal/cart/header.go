package cart

import (
	"encoding/binary"
	"fmt"
)

const (
	headerEnd = 0x014F

	titleStart        = 0x0134
	titleEnd          = 0x0144 // exclusive
	manufacturerStart = 0x013F
	manufacturerEnd   = 0x0143 // exclusive

	checksumStart = 0x0134
	checksumEnd   = 0x014C // inclusive
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Destination is the target region byte at 0x014A.
type Destination byte

const (
	DestinationJapan    Destination = 0x00
	DestinationOverseas Destination = 0x01
)

func (d Destination) String() string {
	switch d {
	case DestinationJapan:
		return "Japan"
	case DestinationOverseas:
		return "Overseas"
	default:
		return fmt.Sprintf("Destination(%#02x)", byte(d))
	}
}

type Header struct {
	Title        string // 0x0134-0x0143, printable ASCII only
	Manufacturer string // 0x013F-0x0142, printable ASCII only
	CGBFlag      byte   // 0x0143
	NewLicensee  NewLicensee
	SGBFlag      byte // 0x0146
	CartType     CartType
	ROMSizeCode  byte // 0x0148
	RAMSizeCode  byte // 0x0149
	Destination  Destination
	OldLicensee  byte // 0x014B
	MaskVersion  byte // 0x014C

	HeaderChecksum byte   // 0x014D
	GlobalChecksum uint16 // 0x014E (low), 0x014F (high)

	ROMBanks int // declared 16 KiB banks
	RAMBanks int // declared 8 KiB banks
	LogoOK   bool
}

// ParseHeader decodes and validates the header of a cartridge image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) <= headerEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(rom))
	}
	if got, want := HeaderChecksum(rom), rom[0x014D]; got != want {
		return nil, fmt.Errorf("%w: computed %#02x, stored %#02x", ErrHeaderChecksum, got, want)
	}

	h := &Header{
		Title:          printable(rom[titleStart:titleEnd]),
		Manufacturer:   printable(rom[manufacturerStart:manufacturerEnd]),
		CGBFlag:        rom[0x0143],
		SGBFlag:        rom[0x0146],
		CartType:       CartType(rom[0x0147]),
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		Destination:    Destination(rom[0x014A]),
		OldLicensee:    rom[0x014B],
		MaskVersion:    rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.LittleEndian.Uint16(rom[0x014E:0x0150]),
		LogoOK:         logoOK(rom),
	}

	var err error
	if h.ROMBanks, err = decodeROMSize(h.ROMSizeCode); err != nil {
		return nil, err
	}
	if h.RAMBanks, err = decodeRAMSize(h.RAMSizeCode); err != nil {
		return nil, err
	}
	if _, ok := cartTypes[h.CartType]; !ok {
		return nil, fmt.Errorf("%w: %#02x", ErrCartType, byte(h.CartType))
	}
	if h.Destination != DestinationJapan && h.Destination != DestinationOverseas {
		return nil, fmt.Errorf("%w: %#02x", ErrDestination, byte(h.Destination))
	}
	if _, ok := oldLicensees[h.OldLicensee]; !ok {
		return nil, fmt.Errorf("%w: old licensee %#02x", ErrLicensee, h.OldLicensee)
	}
	if h.OldLicensee == OldLicenseeUseNew {
		if h.NewLicensee, err = ParseNewLicensee([2]byte{rom[0x0144], rom[0x0145]}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// HeaderChecksum computes the boot ROM's header check over 0x0134-0x014C.
// An image too short to hold that range yields 0.
func HeaderChecksum(rom []byte) byte {
	if len(rom) <= checksumEnd {
		return 0
	}
	var sum byte
	for addr := checksumStart; addr <= checksumEnd; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum
}

func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	return HeaderChecksum(rom) == rom[0x014D]
}

// ComputeGlobalChecksum sums every image byte except the two stored
// checksum bytes. Only used for reporting; nothing verifies it.
func ComputeGlobalChecksum(rom []byte) uint16 {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

// Licensee returns the publisher name, resolving the old code's deferral.
func (h *Header) Licensee() string {
	if h.OldLicensee == OldLicenseeUseNew {
		return h.NewLicensee.String()
	}
	name, _ := OldLicenseeName(h.OldLicensee)
	return name
}

// ROMSizeBytes is the declared ROM size.
func (h *Header) ROMSizeBytes() int { return h.ROMBanks * ROMBankSize }

// RAMSizeBytes is the declared external RAM size.
func (h *Header) RAMSizeBytes() int { return h.RAMBanks * RAMBankSize }

func decodeROMSize(code byte) (banks int, err error) {
	switch {
	case code <= 0x08:
		return 2 << code, nil
	case code == 0x52:
		return 72, nil
	case code == 0x53:
		return 80, nil
	case code == 0x54:
		return 96, nil
	default:
		return 0, fmt.Errorf("%w: %#02x", ErrROMSize, code)
	}
}

func decodeRAMSize(code byte) (banks int, err error) {
	switch code {
	case 0x00:
		return 0, nil
	case 0x01: // listed as unused; early carts put 2 KiB behind one window
		return 1, nil
	case 0x02:
		return 1, nil
	case 0x03:
		return 4, nil
	case 0x04:
		return 16, nil
	case 0x05:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: %#02x", ErrRAMSize, code)
	}
}

// printable keeps bytes in 0x20..0x7E and drops everything else.
func printable(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b >= 0x20 && b <= 0x7E {
			out = append(out, b)
		}
	}
	return string(out)
}

func logoOK(rom []byte) bool {
	for i, b := range nintendoLogo {
		if rom[0x0104+i] != b {
			return false
		}
	}
	return true
}
