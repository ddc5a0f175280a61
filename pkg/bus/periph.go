package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphBus is a Bus backed by periph.io.
type PeriphBus struct {
	bus i2c.BusCloser
}

// OpenPeriph initializes the periph host drivers and opens the named bus.
func OpenPeriph(name string) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: host init: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("periph: open bus %q: %w", name, err)
	}
	return &PeriphBus{bus: b}, nil
}

// Device implements Bus.
func (b *PeriphBus) Device(addr uint16) Device {
	return &periphDevice{dev: i2c.Dev{Bus: b.bus, Addr: addr}}
}

// Close implements Bus.
func (b *PeriphBus) Close() error {
	return b.bus.Close()
}

type periphDevice struct {
	dev i2c.Dev
}

func (d *periphDevice) Write(reg, value byte) error {
	if err := d.dev.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("i2c %#02x: write %#02x: %w", d.dev.Addr, reg, err)
	}
	return nil
}

func (d *periphDevice) WriteRead(reg byte) (byte, error) {
	var r [1]byte
	if err := d.dev.Tx([]byte{reg}, r[:]); err != nil {
		return 0, fmt.Errorf("i2c %#02x: read %#02x: %w", d.dev.Addr, reg, err)
	}
	return r[0], nil
}
