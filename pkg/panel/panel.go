// Package panel reads buttons from port A and drives lights on port B of
// an expander.
package panel

import (
	"fmt"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
)

// Panel is a button panel on one expander.
type Panel struct {
	Dev bus.Device
}

// New creates a Panel.
func New(dev bus.Device) *Panel {
	return &Panel{Dev: dev}
}

// ReadButtons returns pressed buttons as set bits. Port A polarity is
// inverted by configuration so no further inversion happens here.
func (p *Panel) ReadButtons() (byte, error) {
	v, err := p.Dev.WriteRead(mcp23017.GPIOA)
	if err != nil {
		return 0, fmt.Errorf("read buttons: %w", err)
	}
	return v, nil
}

// ReadLights returns the current light latch.
func (p *Panel) ReadLights() (byte, error) {
	v, err := p.Dev.WriteRead(mcp23017.GPIOB)
	if err != nil {
		return 0, fmt.Errorf("read lights: %w", err)
	}
	return v, nil
}

// WriteLights replaces all lights.
func (p *Panel) WriteLights(v byte) error {
	if err := p.Dev.Write(mcp23017.GPIOB, v); err != nil {
		return fmt.Errorf("write lights: %w", err)
	}
	return nil
}

// MergeLights keeps the current lights selected by keep, clears the
// rest and turns on set.
func (p *Panel) MergeLights(keep, set byte) error {
	cur, err := p.ReadLights()
	if err != nil {
		return err
	}
	return p.WriteLights(cur&keep | set)
}
