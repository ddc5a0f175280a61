package mcp23017

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/reaction.go/pkg/bus"
)

func TestConfigure(t *testing.T) {
	testCases := []struct {
		name   string
		inputs byte
	}{
		{name: "button panel", inputs: AllInputs},
		{name: "lcd", inputs: 0x03},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dev := bus.NewFake()
			require.NoError(t, Configure(dev, PortConfig{Inputs: tc.inputs}))
			assert.Equal(t, []bus.Op{
				{Write: true, Reg: IPOLA, Value: tc.inputs},
				{Write: true, Reg: GPPUA, Value: tc.inputs},
				{Write: true, Reg: IODIRA, Value: tc.inputs},
				{Write: true, Reg: IODIRB, Value: 0x00},
				{Write: true, Reg: GPIOB, Value: 0x00},
			}, dev.Ops)
		})
	}
}

func TestConfigureFailure(t *testing.T) {
	dev := bus.NewFake()
	dev.Err = bus.ErrInjected
	err := Configure(dev, PortConfig{Inputs: AllInputs})
	require.Error(t, err)
	assert.True(t, errors.Is(err, bus.ErrInjected))
}
