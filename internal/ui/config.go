package ui

// Config contains window and input related settings.
type Config struct {
	Title    string // window title
	Scale    int    // integer upscaling factor
	ROMsDir  string // directory to browse for ROMs
	StateDir string // where save-state slots live; empty means next to the ROM
	Rows     int    // hex rows shown in the monitor view
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbvm"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.Rows <= 0 {
		c.Rows = 16
	}
}
