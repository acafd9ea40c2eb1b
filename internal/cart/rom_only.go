package cart

// fixed is the controller for cartridges without bank-select registers.
// Writes into ROM space are ignored and any RAM is always reachable.
type fixed struct{}

func newFixed() *fixed { return &fixed{} }

func (*fixed) Write(addr uint16, value byte) {}
func (*fixed) RAMEnabled() bool              { return true }
func (*fixed) SaveState() []byte             { return nil }
func (*fixed) LoadState(data []byte)         {}
