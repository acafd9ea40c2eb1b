package emu

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/ioregs"
)

// Config contains settings that affect how a session is assembled.
type Config struct {
	BootROM  []byte    // optional boot ROM image; the built-in stub otherwise
	SkipBoot bool      // start with the boot ROM already unmapped
	SaveRAM  bool      // persist battery RAM to ROM.sav next to the ROM
	Serial   io.Writer // receives bytes sent over the link port
	IO       ioregs.Handlers
}
