package mcp23017

import (
	"fmt"

	"github.com/robotalks/reaction.go/pkg/bus"
)

// PortConfig describes the pins of port A used as inputs.
// Port B is always all outputs.
type PortConfig struct {
	Inputs byte
}

// Configure programs port A inputs as inverted with pull-ups, so a
// pressed button (pulled to ground) reads as 1, and port B as outputs
// driven low.
func Configure(dev bus.Device, conf PortConfig) error {
	steps := []struct {
		reg, value byte
	}{
		{IPOLA, conf.Inputs},
		{GPPUA, conf.Inputs},
		{IODIRA, conf.Inputs},
		{IODIRB, AllOutputs},
		{GPIOB, 0x00},
	}
	for _, s := range steps {
		if err := dev.Write(s.reg, s.value); err != nil {
			return fmt.Errorf("mcp23017: configure %#02x: %w", s.reg, err)
		}
	}
	return nil
}
