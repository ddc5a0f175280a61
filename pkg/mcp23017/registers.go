// Package mcp23017 configures the two 8-bit ports of an MCP23017 expander.
package mcp23017

// Register addresses with IOCON.BANK cleared (power-on default).
const (
	IODIRA byte = 0x00 // direction, port A: 1 = input
	IODIRB byte = 0x01 // direction, port B
	IPOLA  byte = 0x02 // polarity, port A: 1 = inverted
	IPOLB  byte = 0x03 // polarity, port B
	GPPUA  byte = 0x0C // pull-up, port A
	GPPUB  byte = 0x0D // pull-up, port B
	GPIOA  byte = 0x12 // data, port A
	GPIOB  byte = 0x13 // data, port B
)

// Values for IODIR registers.
const (
	AllInputs  byte = 0xFF
	AllOutputs byte = 0x00
)

// Default addresses of the two expanders.
const (
	PanelAddress uint16 = 0x20
	LCDAddress   uint16 = 0x21
)
