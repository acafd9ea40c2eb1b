package joypad

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead_SelectionMatrix(t *testing.T) {
	j := New()
	j.SetButtons(0b0000_0001)

	j.Write(0, 0x20) // P14 low: directions
	if got := j.Read(0); got != 0b0010_1110 {
		t.Fatalf("directions got %08b want 00101110", got)
	}

	j.Write(0, 0x10) // P15 low: actions
	if got := j.Read(0); got != 0b0001_1111 {
		t.Fatalf("actions got %08b want 00011111", got)
	}

	j.Write(0, 0x30)
	for _, mask := range []byte{0x00, 0x01, 0xF0, 0xFF} {
		j.SetButtons(mask)
		if got := j.Read(0); got != 0x3F {
			t.Fatalf("no selection, mask %02x got %02x want 3f", mask, got)
		}
	}
}

func TestRead_BitZeroIsP10(t *testing.T) {
	j := New()
	j.UpdateButtonState(Right, true)
	assert.Equal(t, byte(0b0000_0001), j.Buttons())

	j.Write(0, 0x20)
	if got := j.Read(0); got != 0x2E {
		t.Fatalf("Right pressed got %02x want 2e", got)
	}

	j.UpdateButtonState(Right, false)
	j.UpdateButtonState(Down, true)
	if got := j.Read(0); got != 0x27 {
		t.Fatalf("Down pressed got %02x want 27", got)
	}
}

func TestRead_DefaultIdle(t *testing.T) {
	assert.Equal(t, byte(0x3F), New().Read(0))
}

func TestRead_ActionNibble(t *testing.T) {
	j := New()
	j.UpdateButtonState(A, true)
	j.UpdateButtonState(Start, true)
	j.Write(0, 0x10)
	// 0110b: A and Start pulled low
	assert.Equal(t, byte(0x10|0x06), j.Read(0))
}

func TestRead_DirectionNibble(t *testing.T) {
	j := New()
	j.UpdateButtonState(Right, true)
	j.UpdateButtonState(Up, true)
	j.Write(0, 0x20)
	// 1010b: Right and Up pulled low
	assert.Equal(t, byte(0x20|0x0A), j.Read(0))
}

func TestUpdateButtonState_SetAndClear(t *testing.T) {
	j := New()
	j.UpdateButtonState(Down, true)
	j.UpdateButtonState(B, true)
	assert.Equal(t, byte(1<<Down|1<<B), j.Buttons())

	j.UpdateButtonState(Down, false)
	assert.Equal(t, byte(1<<B), j.Buttons())

	j.UpdateButtonState(Button(9), true)
	assert.Equal(t, byte(1<<B), j.Buttons())
}

func TestWrite_KeepsOnlySelectBits(t *testing.T) {
	j := New()
	j.Write(0, 0xCF)
	assert.Equal(t, byte(0x00), j.Selection())
	j.Write(0, 0xFF)
	assert.Equal(t, byte(0x30), j.Selection())
}

func TestUpdateButtonState_Concurrent(t *testing.T) {
	j := New()
	var wg sync.WaitGroup
	for b := Right; b <= Start; b++ {
		wg.Add(1)
		go func(b Button) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j.UpdateButtonState(b, i%2 == 0)
			}
			j.UpdateButtonState(b, true)
		}(b)
	}
	wg.Wait()
	assert.Equal(t, byte(0xFF), j.Buttons())
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, "Select", Select.String())
	assert.Equal(t, "Button(12)", Button(12).String())
}
