// Package joypad emulates the P1/JOYP input register at 0xFF00.
//
// Buttons are stored active-high in an atomically updated mask so an input
// source on another goroutine can press and release them while the bus owner
// reads the register. The select bits and the read-and-combine step are not
// part of that atomic section: a read that races a button change may see the
// change half applied, the same as the hardware's unlatched input lines.
package joypad

import (
	"fmt"
	"sync/atomic"
)

// Button is a bit index in the button mask. The low nibble holds the
// direction keys and the high nibble the action keys, each in P1 line order
// (P10 first), so bit 0 is Right and bit 3 is Down.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

var buttonNames = [...]string{"Right", "Left", "Up", "Down", "A", "B", "Select", "Start"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

const (
	selectDirections = 0x10 // P14, active low
	selectActions    = 0x20 // P15, active low
	selectMask       = selectDirections | selectActions

	idle = 0x3F
)

// Joypad holds the button mask and the P14/P15 selection written by the CPU.
type Joypad struct {
	buttons atomic.Uint32
	sel     byte
}

func New() *Joypad {
	return &Joypad{sel: selectMask}
}

// UpdateButtonState presses or releases a button. Safe to call from any
// goroutine.
func (j *Joypad) UpdateButtonState(b Button, pressed bool) {
	if b > Start {
		return
	}
	bit := uint32(1) << b
	if pressed {
		j.buttons.Or(bit)
	} else {
		j.buttons.And(^bit)
	}
}

// Buttons returns the current active-high mask.
func (j *Joypad) Buttons() byte { return byte(j.buttons.Load()) }

// SetButtons replaces the whole mask, used when restoring state.
func (j *Joypad) SetButtons(mask byte) { j.buttons.Store(uint32(mask)) }

// Write latches the two selection bits; every other bit is ignored.
func (j *Joypad) Write(_ uint16, data byte) {
	j.sel = data & selectMask
}

// Read returns the selected nibble with pressed buttons pulled low. With no
// row selected all lines read released.
func (j *Joypad) Read(_ uint16) byte {
	mask := byte(j.buttons.Load())
	switch {
	case j.sel&selectDirections == 0:
		return selectActions | (^mask & 0x0F)
	case j.sel&selectActions == 0:
		return selectDirections | (^(mask >> 4) & 0x0F)
	default:
		return idle
	}
}

// Selection returns the latched P14/P15 bits.
func (j *Joypad) Selection() byte { return j.sel }
