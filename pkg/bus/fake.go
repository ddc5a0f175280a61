package bus

import (
	"errors"
	"fmt"
)

// ErrInjected is returned by Fake once Err is set to it.
var ErrInjected = errors.New("injected bus failure")

// Op is one recorded transaction on a Fake.
type Op struct {
	Write bool
	Reg   byte
	Value byte
}

// String formats the op like "W 13=a0" or "R 12=01".
func (o Op) String() string {
	dir := "R"
	if o.Write {
		dir = "W"
	}
	return fmt.Sprintf("%s %02x=%02x", dir, o.Reg, o.Value)
}

// Fake is an in-memory register file implementing Device.
// Writes update Regs; reads return queued values first, then Regs.
type Fake struct {
	Regs [256]byte
	Ops  []Op
	// Err fails every transaction once set.
	Err error

	reads map[byte][]byte
}

// NewFake creates a Fake.
func NewFake() *Fake {
	return &Fake{reads: make(map[byte][]byte)}
}

// QueueReads queues values returned by the next reads of reg.
func (f *Fake) QueueReads(reg byte, values ...byte) *Fake {
	if f.reads == nil {
		f.reads = make(map[byte][]byte)
	}
	f.reads[reg] = append(f.reads[reg], values...)
	return f
}

// Write implements Device.
func (f *Fake) Write(reg, value byte) error {
	if f.Err != nil {
		return f.Err
	}
	f.Regs[reg] = value
	f.Ops = append(f.Ops, Op{Write: true, Reg: reg, Value: value})
	return nil
}

// WriteRead implements Device.
func (f *Fake) WriteRead(reg byte) (byte, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	value := f.Regs[reg]
	if queued := f.reads[reg]; len(queued) > 0 {
		value, f.reads[reg] = queued[0], queued[1:]
	}
	f.Ops = append(f.Ops, Op{Reg: reg, Value: value})
	return value, nil
}

// Writes returns the values written to reg in order.
func (f *Fake) Writes(reg byte) []byte {
	var values []byte
	for _, op := range f.Ops {
		if op.Write && op.Reg == reg {
			values = append(values, op.Value)
		}
	}
	return values
}

// Reset forgets recorded ops.
func (f *Fake) Reset() {
	f.Ops = nil
}

// FakeBus hands out Fake devices keyed by address.
type FakeBus struct {
	Devices map[uint16]*Fake
	Closed  bool
}

// NewFakeBus creates a FakeBus.
func NewFakeBus() *FakeBus {
	return &FakeBus{Devices: make(map[uint16]*Fake)}
}

// Device implements Bus.
func (b *FakeBus) Device(addr uint16) Device {
	return b.Fake(addr)
}

// Fake returns the Fake at addr, creating it if needed.
func (b *FakeBus) Fake(addr uint16) *Fake {
	dev := b.Devices[addr]
	if dev == nil {
		dev = NewFake()
		b.Devices[addr] = dev
	}
	return dev
}

// Close implements Bus.
func (b *FakeBus) Close() error {
	b.Closed = true
	return nil
}
