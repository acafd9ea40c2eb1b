package cart

import "errors"

// Load failures. Each is wrapped with the offending value; match with errors.Is.
var (
	ErrTooSmall       = errors.New("image too small to contain a header")
	ErrHeaderChecksum = errors.New("header checksum mismatch")
	ErrROMSize        = errors.New("unknown ROM size code")
	ErrRAMSize        = errors.New("unknown RAM size code")
	ErrLicensee       = errors.New("unknown licensee code")
	ErrCartType       = errors.New("unknown cartridge type")
	ErrDestination    = errors.New("unknown destination code")
	ErrTaken          = errors.New("cartridge storage already taken")
	ErrRAMShape       = errors.New("RAM buffer does not match declared size")
)
