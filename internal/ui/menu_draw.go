package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

func (a *App) drawMainMenu(screen *ebiten.Image) {
	lines := []string{
		"Menu:",
		fmt.Sprintf("  Save state (slot %d)", a.currentSlot+1),
		fmt.Sprintf("  Load state (slot %d)", a.currentSlot+1),
		"  Select Slot",
		"  Switch ROM",
		"  Go to address",
		"  Close",
	}
	for i, s := range lines {
		prefix := "  "
		if i == a.menuIdx+1 {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 10+i*lineHeight)
	}
	hints := []string{
		"Arrows: D-Pad  Z: A  X: B  Enter: Start  RightShift: Select",
		"PgUp/PgDn: scroll  Home: 0000  G: go to",
		"F5: Save  F9: Load  1-4: Slot  F11: Fullscreen",
	}
	y := 10 + (len(lines)+1)*lineHeight
	for _, h := range hints {
		ebitenutil.DebugPrintAt(screen, a.truncateText(h, a.maxCharsForText(10)), 10, y)
		y += lineHeight
	}
}

func (a *App) drawSlotMenu(screen *ebiten.Image) {
	lines := []string{"Select Slot:"}
	for i := 0; i < slots; i++ {
		state := "[empty]"
		if _, err := os.Stat(a.statePath(i)); err == nil {
			state = ""
		}
		lines = append(lines, fmt.Sprintf("  %d %s", i+1, state))
	}
	for i, s := range lines {
		prefix := "  "
		if i == a.menuIdx+1 {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 10+i*lineHeight)
	}
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", 10, 10)
	ebitenutil.DebugPrintAt(screen, a.truncateText("Dir: "+a.cfg.ROMsDir, a.maxCharsForText(10)), 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", 10, 40)
		return
	}
	baseY := 40
	maxRows := a.romRows()
	end := a.romOff + maxRows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	maxChars := a.maxCharsForText(10) - 2
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+a.truncateText(filepath.Base(p), maxChars), 10, baseY+i*lineHeight)
	}
	// scroll indicators
	if a.romOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if end < len(a.romList) {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(maxRows-1)*lineHeight)
	}
}

func (a *App) drawGotoMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Go to address (hex, Enter to jump, Esc to return)", 10, 10)
	ebitenutil.DebugPrintAt(screen, "> "+a.gotoInput+"_", 10, 10+2*lineHeight)
}
