package cart

import (
	"bytes"
	"encoding/gob"
)

// bankRegs is the register file shared by the MBC controllers.
type bankRegs struct {
	ROMBank    uint16
	RAMBank    byte
	Mode       byte
	RAMEnabled bool
}

func encodeRegs(r bankRegs) []byte {
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(r)
	return buf.Bytes()
}

func decodeRegs(data []byte) (bankRegs, bool) {
	var r bankRegs
	if len(data) == 0 {
		return r, false
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&r); err != nil {
		return r, false
	}
	return r, true
}
