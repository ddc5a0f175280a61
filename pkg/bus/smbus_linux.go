//go:build linux
// +build linux

package bus

import (
	"fmt"

	"github.com/platinasystems/i2c"
)

// SMBus is a Bus using the kernel SMBus ioctls on /dev/i2c-N.
// The slave address is forced before every transaction since the
// devices on it share one file descriptor.
type SMBus struct {
	num int
	bus i2c.Bus
}

// OpenSMBus opens /dev/i2c-num.
func OpenSMBus(num int) (*SMBus, error) {
	b := &SMBus{num: num}
	if err := b.bus.Open(num); err != nil {
		return nil, fmt.Errorf("smbus: open %d: %w", num, err)
	}
	return b, nil
}

// Device implements Bus.
func (b *SMBus) Device(addr uint16) Device {
	return &smbusDevice{bus: b, addr: int(addr)}
}

// Close implements Bus.
func (b *SMBus) Close() error {
	b.bus.Close()
	return nil
}

func (b *SMBus) do(addr int, rw i2c.RW, reg byte, data *i2c.SMBusData) error {
	if err := b.bus.ForceSlaveAddress(addr); err != nil {
		return err
	}
	return b.bus.Do(rw, reg, i2c.ByteData, data)
}

type smbusDevice struct {
	bus  *SMBus
	addr int
}

func (d *smbusDevice) Write(reg, value byte) error {
	var data i2c.SMBusData
	data[0] = value
	if err := d.bus.do(d.addr, i2c.Write, reg, &data); err != nil {
		return fmt.Errorf("smbus %d.%02x: write %#02x: %w", d.bus.num, d.addr, reg, err)
	}
	return nil
}

func (d *smbusDevice) WriteRead(reg byte) (byte, error) {
	var data i2c.SMBusData
	if err := d.bus.do(d.addr, i2c.Read, reg, &data); err != nil {
		return 0, fmt.Errorf("smbus %d.%02x: read %#02x: %w", d.bus.num, d.addr, reg, err)
	}
	return data[0], nil
}
