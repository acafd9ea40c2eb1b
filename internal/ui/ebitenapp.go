package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbvm/internal/monitor"
)

const (
	screenW    = 480
	screenH    = 360
	lineHeight = 14
	charWidth  = 6
	slots      = 4
)

// App is the debug window: the keyboard drives the joypad and the screen
// shows a live view of the address space.
type App struct {
	cfg  Config
	m    *emu.Machine
	base uint16 // first address of the hex view

	curW, curH int

	showMenu    bool
	menuMode    string // "main", "slot", "rom", "goto"
	menuIdx     int
	currentSlot int

	romList []string
	romSel  int
	romOff  int

	gotoInput string

	toastMsg   string
	toastUntil time.Time
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	a := &App{cfg: cfg, m: m, base: 0xC000, curW: screenW, curH: screenH, menuMode: "main"}
	a.applyWindowSize()
	a.updateTitle()
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) applyWindowSize() {
	ebiten.SetWindowSize(screenW*a.cfg.Scale, screenH*a.cfg.Scale)
}

func (a *App) updateTitle() {
	title := a.cfg.Title
	if b := a.m.Bus(); b != nil && b.Header().Title != "" {
		title = a.cfg.Title + " - [" + b.Header().Title + "]"
	}
	ebiten.SetWindowTitle(title)
}

func (a *App) Update() error {
	if a.showMenu {
		// Menu navigation uses the arrow keys; release all buttons meanwhile.
		a.m.SetButtons(emu.Buttons{})
		switch a.menuMode {
		case "slot":
			a.updateSlotMenu()
		case "rom":
			a.updateRomMenu()
		case "goto":
			a.updateGotoMenu()
		default:
			a.updateMainMenu()
		}
		return nil
	}

	// Keyboard → Game Boy buttons
	var btn emu.Buttons
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		btn.Right = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		btn.Left = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		btn.Up = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		btn.Down = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		btn.A = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		btn.B = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		btn.Start = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		btn.Select = true
	}
	a.m.SetButtons(btn)

	// Scroll the hex view
	step := uint16(monitorStride * a.cfg.Rows)
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		a.base += step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		a.base -= step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.base = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.openMenu("goto")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.quickSave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.quickLoad()
	}
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(k) {
			a.currentSlot = i
			a.toast(fmt.Sprintf("Slot %d", i+1))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.openMenu("main")
	}
	return nil
}

const monitorStride = 16

func (a *App) openMenu(mode string) {
	a.showMenu = true
	a.menuMode = mode
	a.menuIdx = 0
	a.gotoInput = ""
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.showMenu {
		switch a.menuMode {
		case "slot":
			a.drawSlotMenu(screen)
		case "rom":
			a.drawRomMenu(screen)
		case "goto":
			a.drawGotoMenu(screen)
		default:
			a.drawMainMenu(screen)
		}
		a.drawToast(screen)
		return
	}

	b := a.m.Bus()
	if b == nil {
		ebitenutil.DebugPrintAt(screen, "No cartridge. Esc: menu", 10, 10)
		a.drawToast(screen)
		return
	}
	y := 4
	for _, s := range monitor.Status(b) {
		ebitenutil.DebugPrintAt(screen, a.truncateText(s, a.maxCharsForText(10)), 10, y)
		y += lineHeight
	}
	y += lineHeight / 2
	for _, s := range monitor.Lines(b, a.base, a.cfg.Rows) {
		ebitenutil.DebugPrintAt(screen, a.truncateText(s, a.maxCharsForText(10)), 10, y)
		y += lineHeight
	}
	a.drawToast(screen)
}

func (a *App) Layout(outW, outH int) (int, int) {
	return a.curW, a.curH
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) drawToast(screen *ebiten.Image) {
	if a.toastMsg == "" || time.Now().After(a.toastUntil) {
		return
	}
	ebitenutil.DebugPrintAt(screen, a.truncateText(a.toastMsg, a.maxCharsForText(10)), 10, a.curH-lineHeight-4)
}

func (a *App) maxCharsForText(margin int) int {
	n := (a.curW - 2*margin) / charWidth
	if n < 1 {
		return 1
	}
	return n
}

func (a *App) truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
