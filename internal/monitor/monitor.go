// Package monitor formats views of the address space for the command line
// dump and the debug window.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ioregs"
)

const bytesPerLine = 16

// Memory is the subset of the bus a monitor reads from.
type Memory interface {
	Read(addr uint16) byte
}

// Region names the area an address decodes to.
func Region(addr uint16) string {
	switch {
	case addr < 0x4000:
		return "ROM0"
	case addr < 0x8000:
		return "ROMX"
	case addr < 0xA000:
		return "VRAM"
	case addr < 0xC000:
		return "SRAM"
	case addr < 0xE000:
		return "WRAM"
	case addr < 0xFE00:
		return "ECHO"
	case addr < 0xFEA0:
		return "OAM"
	case addr < 0xFF00:
		return "----"
	case addr < 0xFF80:
		return "I/O"
	case addr < 0xFFFF:
		return "HRAM"
	default:
		return "IE"
	}
}

// peek reads one byte, reporting false where the bus would stop the machine.
func peek(m Memory, addr uint16) (v byte, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err, isErr := r.(error)
			if !isErr || !(errors.Is(err, bus.ErrProhibited) || errors.Is(err, ioregs.ErrUnmapped)) {
				panic(r)
			}
			v, ok = 0, false
		}
	}()
	return m.Read(addr), true
}

// Line renders 16 bytes starting at base as "ROM0 0100: 00 c3 ...  |..|".
// Addresses that cannot be read are shown as "--".
func Line(m Memory, base uint16) string {
	var hex, ascii strings.Builder
	for i := 0; i < bytesPerLine; i++ {
		addr := base + uint16(i)
		if i == 8 {
			hex.WriteByte(' ')
		}
		v, ok := peek(m, addr)
		if !ok {
			hex.WriteString(" --")
			ascii.WriteByte(' ')
			continue
		}
		fmt.Fprintf(&hex, " %02x", v)
		if v >= 0x20 && v < 0x7F {
			ascii.WriteByte(v)
		} else {
			ascii.WriteByte('.')
		}
	}
	return fmt.Sprintf("%-4s %04x:%s  |%s|", Region(base), base, hex.String(), ascii.String())
}

// Lines renders rows lines starting at base, wrapping past 0xFFFF.
func Lines(m Memory, base uint16, rows int) []string {
	out := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		out = append(out, Line(m, base+uint16(r*bytesPerLine)))
	}
	return out
}

// Dump writes lo..hi inclusive to w, aligned down to a 16-byte boundary.
func Dump(w io.Writer, m Memory, lo, hi uint16) error {
	if hi < lo {
		return fmt.Errorf("monitor: empty range %04x:%04x", lo, hi)
	}
	start := lo &^ (bytesPerLine - 1)
	rows := (int(hi)-int(start))/bytesPerLine + 1
	for _, l := range Lines(m, start, rows) {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// ParseRange parses "lo:hi" with hexadecimal bounds, e.g. "c000:c0ff".
func ParseRange(s string) (lo, hi uint16, err error) {
	a, b, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, fmt.Errorf("monitor: range %q: want lo:hi", s)
	}
	l, err := parseAddr(a)
	if err != nil {
		return 0, 0, err
	}
	h, err := parseAddr(b)
	if err != nil {
		return 0, 0, err
	}
	if h < l {
		return 0, 0, fmt.Errorf("monitor: range %q: hi below lo", s)
	}
	return l, h, nil
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("monitor: address %q: %w", s, err)
	}
	return uint16(v), nil
}

// Status summarises the banking and overlay state of b.
func Status(b *bus.Bus) []string {
	h := b.Header()
	ram := "none"
	if e := b.ExternalRAM(); e != nil {
		ram = fmt.Sprintf("bank %d/%d", e.Bank(), e.Banks())
		if !b.RAMEnabled() {
			ram += " (disabled)"
		}
	}
	v, _ := peek(b, 0xFF00+ioregs.P1)
	ie, _ := peek(b, 0xFFFF)
	return []string{
		fmt.Sprintf("%q %s", h.Title, h.CartType),
		fmt.Sprintf("ROM bank %02x/%02x  RAM %s", b.ROMBank(), h.ROMBanks, ram),
		fmt.Sprintf("boot %v  DMA %02x  P1 %02x  IE %d", b.BootROMEnabled(), b.DMAPage(), v, ie),
	}
}
