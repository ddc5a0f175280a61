//go:build !linux
// +build !linux

package bus

import "errors"

// OpenSMBus is only available on linux.
func OpenSMBus(num int) (Bus, error) {
	return nil, errors.New("smbus: not supported on this platform")
}
