package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/gbvm/internal/monitor"
)

func (a *App) updateMainMenu() {
	max := 5
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < max {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			a.quickSave()
		case 1:
			a.quickLoad()
		case 2:
			a.menuMode = "slot"
			a.menuIdx = a.currentSlot
		case 3:
			a.romList = findROMs(a.cfg.ROMsDir)
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 4:
			a.menuMode = "goto"
			a.gotoInput = ""
		case 5:
			a.showMenu = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) updateSlotMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < slots-1 {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.currentSlot = a.menuIdx
		a.toast(fmt.Sprintf("Slot set to %d", a.currentSlot+1))
		a.menuMode = "main"
		a.menuIdx = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
		a.menuIdx = 0
	}
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.menuMode = "main"
		}
		return
	}
	maxRows := a.romRows()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	if a.romSel < a.romOff {
		a.romOff = a.romSel
	}
	if a.romSel >= a.romOff+maxRows {
		a.romOff = a.romSel - maxRows + 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMFromFile(path); err != nil {
			a.toast("ROM load failed: " + err.Error())
		} else {
			a.toast("Loaded ROM: " + filepath.Base(path))
			a.updateTitle()
			a.showMenu = false
		}
		a.menuMode = "main"
		a.menuIdx = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

// updateGotoMenu reads a hex address or lo:hi range and moves the view there.
func (a *App) updateGotoMenu() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if strings.ContainsRune("0123456789abcdefABCDEF:x$", r) && len(a.gotoInput) < 16 {
			a.gotoInput += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(a.gotoInput) > 0 {
		a.gotoInput = a.gotoInput[:len(a.gotoInput)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		in := a.gotoInput
		if !strings.Contains(in, ":") {
			in += ":" + in
		}
		lo, _, err := monitor.ParseRange(in)
		if err != nil {
			a.toast(err.Error())
			return
		}
		a.base = lo &^ (monitorStride - 1)
		a.showMenu = false
		a.menuMode = "main"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.menuMode = "main"
		a.menuIdx = 0
	}
}

func (a *App) romRows() int {
	n := (a.curH - 40) / lineHeight
	if n < 1 {
		return 1
	}
	return n
}

func (a *App) quickSave() {
	if err := a.m.SaveStateToFile(a.statePath(a.currentSlot)); err != nil {
		a.toast("Save failed: " + err.Error())
		return
	}
	a.toast(fmt.Sprintf("Saved slot %d", a.currentSlot+1))
}

func (a *App) quickLoad() {
	path := a.statePath(a.currentSlot)
	if _, err := os.Stat(path); err != nil {
		a.toast("Slot is empty")
		return
	}
	if err := a.m.LoadStateFromFile(path); err != nil {
		a.toast("Load failed: " + err.Error())
		return
	}
	a.toast(fmt.Sprintf("Loaded slot %d", a.currentSlot+1))
}

func (a *App) statePath(slot int) string {
	return statePath(a.cfg.StateDir, a.m.ROMPath(), slot)
}

// statePath names a slot file after the ROM: game.gb -> game.ss1.
func statePath(dir, rom string, slot int) string {
	name := "gbvm"
	if rom != "" {
		name = strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))
		if dir == "" {
			dir = filepath.Dir(rom)
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s.ss%d", name, slot+1))
}

// findROMs lists .gb files under dir, sorted by path.
func findROMs(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".gb") {
			out = append(out, p)
		}
		return nil
	})
	sort.Strings(out)
	return out
}
