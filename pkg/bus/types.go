// Package bus provides register level access to chips on a two-wire bus.
package bus

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Device reads and writes single registers on one addressed chip.
// Calls are synchronous and never retried.
type Device interface {
	// Write transmits reg and value as one transaction.
	Write(reg, value byte) error
	// WriteRead transmits reg and reads one byte back.
	WriteRead(reg byte) (byte, error)
}

// Bus is an opened bus which hands out Devices by address.
type Bus interface {
	io.Closer
	Device(addr uint16) Device
}

// Driver names.
const (
	DriverPeriph = "periph"
	DriverSMBus  = "smbus"
)

// Config selects the driver and the bus to open.
type Config struct {
	// Driver is either "periph" or "smbus".
	Driver string `toml:"driver"`
	// Name is the bus name for periph ("" picks the first bus),
	// or the bus number for smbus.
	Name string `toml:"bus"`
}

// Open opens the bus using the configured driver.
func (c Config) Open() (Bus, error) {
	switch c.Driver {
	case "", DriverPeriph:
		b, err := OpenPeriph(c.Name)
		if err != nil {
			return nil, err
		}
		return b, nil
	case DriverSMBus:
		num, err := strconv.Atoi(c.Name)
		if err != nil {
			return nil, fmt.Errorf("smbus: invalid bus number %q: %w", c.Name, err)
		}
		b, err := OpenSMBus(num)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown bus driver: %q", c.Driver)
	}
}

// Locked serializes access to a Device shared by more than one goroutine.
type Locked struct {
	dev  Device
	lock sync.Mutex
}

// NewLocked wraps dev.
func NewLocked(dev Device) *Locked {
	return &Locked{dev: dev}
}

// Write implements Device.
func (l *Locked) Write(reg, value byte) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.dev.Write(reg, value)
}

// WriteRead implements Device.
func (l *Locked) WriteRead(reg byte) (byte, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.dev.WriteRead(reg)
}
