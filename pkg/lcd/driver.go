// Package lcd drives an HD44780 compatible character display wired in
// 4-bit mode to port B of an MCP23017 expander.
//
// Port B layout: bit 7 selects character data (1) or instruction (0),
// bit 5 is the enable line, and data lines D7..D4 sit on bits 1..4 in
// reverse order. The controller latches on the falling edge of enable.
package lcd

import (
	"errors"
	"strings"
	"time"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
)

// Port B control bits.
const (
	Instruction byte = 0x00
	Data        byte = 0x80
	Enable      byte = 0x20
)

// Display geometry.
const (
	Columns = 20
	Lines   = 4
)

// ErrInvalidLine is returned by MoveToLine for lines outside 0..3.
var ErrInvalidLine = errors.New("lcd: invalid line")

// lineAddrs are the DDRAM addresses of the first cell of each line.
// These were calibrated on the panel; check the wiring before changing them.
var lineAddrs = [Lines]byte{0, 64, 20, 84}

// Screen is the text of all lines, top to bottom.
type Screen [Lines]string

// Driver sends instructions and characters to the display.
type Driver struct {
	Dev bus.Device
	// Sleep pauses between transfers, time.Sleep if nil.
	Sleep func(time.Duration)
}

// New creates a Driver on the expander dev.
func New(dev bus.Device) *Driver {
	return &Driver{Dev: dev, Sleep: time.Sleep}
}

// Remap moves the low nibble of n onto the data lines:
// bit 0 -> bit 4, bit 1 -> bit 3, bit 2 -> bit 2, bit 3 -> bit 1.
func Remap(n byte) byte {
	var dest byte
	if n&0x1 != 0 {
		dest |= 0x10
	}
	if n&0x2 != 0 {
		dest |= 0x08
	}
	if n&0x4 != 0 {
		dest |= 0x04
	}
	if n&0x8 != 0 {
		dest |= 0x02
	}
	return dest
}

// Pad pads or truncates s to the display width.
func Pad(s string) string {
	if len(s) >= Columns {
		return s[:Columns]
	}
	return s + strings.Repeat(" ", Columns-len(s))
}

func (d *Driver) pause(dur time.Duration) {
	if dur <= 0 {
		return
	}
	if d.Sleep != nil {
		d.Sleep(dur)
	} else {
		time.Sleep(dur)
	}
}

// transfer writes one nibble with enable high, then again with enable
// low to produce the falling edge.
func (d *Driver) transfer(selector, nibble byte) error {
	v := selector | Remap(nibble) | Enable
	if err := d.Dev.Write(mcp23017.GPIOB, v); err != nil {
		return err
	}
	return d.Dev.Write(mcp23017.GPIOB, v&^Enable)
}

// SendInstruction sends the low nibble of n as an instruction.
func (d *Driver) SendInstruction(n byte) error {
	return d.transfer(Instruction, n)
}

// SendChar sends c as character data, high nibble first, then settles 1ms.
func (d *Driver) SendChar(c byte) error {
	if err := d.transfer(Data, c>>4); err != nil {
		return err
	}
	if err := d.transfer(Data, c&0x0F); err != nil {
		return err
	}
	d.pause(time.Millisecond)
	return nil
}

type step struct {
	nibble byte
	pause  time.Duration
}

var (
	resetSteps = []step{
		{0x03, 4 * time.Millisecond},
		{0x03, 0},
		{0x03, 0},
		{0x02, 0}, // 4-bit interface
		{0x02, 0}, {0x08, 0}, // function set: 2 lines, 5x8 font
		{0x00, 0}, {0x0C, 0}, // display on, cursor off
		{0x00, 0}, {0x06, 0}, // entry mode: increment, no shift
	}
	clearSteps = []step{
		{0x00, 0}, {0x01, time.Millisecond}, // clear display
		{0x00, 0}, {0x02, time.Millisecond}, // return home
	}
)

func (d *Driver) run(steps []step) error {
	for _, s := range steps {
		if err := d.SendInstruction(s.nibble); err != nil {
			return err
		}
		d.pause(s.pause)
	}
	return nil
}

// Reset initializes the controller into 4-bit mode and clears it.
// It must run before anything else is sent.
func (d *Driver) Reset() error {
	if err := d.run(resetSteps); err != nil {
		return err
	}
	return d.Clear()
}

// Clear clears the display and returns the cursor home.
func (d *Driver) Clear() error {
	return d.run(clearSteps)
}

// MoveToLine moves the cursor to the start of line.
func (d *Driver) MoveToLine(line int) error {
	if line < 0 || line >= Lines {
		return ErrInvalidLine
	}
	addr := lineAddrs[line]
	if err := d.SendInstruction(addr>>4 | 0x08); err != nil {
		return err
	}
	return d.SendInstruction(addr & 0x0F)
}

// PrintLine writes s from the cursor. Callers pad s to the line width.
func (d *Driver) PrintLine(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.SendChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteScreen resets the display and writes every line padded.
func (d *Driver) WriteScreen(screen Screen) error {
	if err := d.Reset(); err != nil {
		return err
	}
	for line, text := range screen {
		if err := d.MoveToLine(line); err != nil {
			return err
		}
		if err := d.PrintLine(Pad(text)); err != nil {
			return err
		}
	}
	return nil
}
