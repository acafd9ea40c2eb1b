package ioregs

import "io"

// Serial is a link port with nothing on the other end. A transfer started
// with the internal clock completes immediately: SB goes to Out and 0xFF
// (an idle line) is shifted back in. Test ROMs report results this way.
type Serial struct {
	Out io.Writer

	sb, sc byte
}

func NewSerial(out io.Writer) *Serial {
	return &Serial{Out: out}
}

func (s *Serial) Read(offset uint16) byte {
	switch offset {
	case SB:
		return s.sb
	case SC:
		return s.sc | 0x7E
	}
	return 0xFF
}

func (s *Serial) Write(offset uint16, value byte) {
	switch offset {
	case SB:
		s.sb = value
	case SC:
		s.sc = value & 0x81
		if s.sc == 0x81 {
			if s.Out != nil {
				_, _ = s.Out.Write([]byte{s.sb})
			}
			s.sb = 0xFF
			s.sc &^= 0x80
		}
	}
}
