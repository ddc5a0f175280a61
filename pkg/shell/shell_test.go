package shell

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/env"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
)

func newTestShell() (*Shell, *bus.Fake, *bus.Fake) {
	panelDev, lcdDev := bus.NewFake(), bus.NewFake()
	return newShell(&env.Hardware{Panel: panelDev, LCD: lcdDev}), panelDev, lcdDev
}

func TestParseByte(t *testing.T) {
	testCases := []struct {
		in  string
		out byte
		ok  bool
	}{
		{"15", 15, true},
		{"0x13", 0x13, true},
		{"0b1010", 0x0A, true},
		{"0x100", 0, false},
		{"lights", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			v, err := ParseByte(tc.in)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.out, v)
		})
	}
}

func TestDevice(t *testing.T) {
	s, panelDev, lcdDev := newTestShell()
	dev, err := s.Device(DevicePanel)
	require.NoError(t, err)
	require.NoError(t, dev.Write(mcp23017.GPIOB, 0x5A))
	assert.Equal(t, []byte{0x5A}, panelDev.Writes(mcp23017.GPIOB))

	dev, err = s.Device(DeviceLCD)
	require.NoError(t, err)
	require.NoError(t, dev.Write(mcp23017.GPIOB, 0x01))
	assert.Equal(t, []byte{0x01}, lcdDev.Writes(mcp23017.GPIOB))

	_, err = s.Device("rtc")
	assert.Error(t, err)
}

func TestReadButtons(t *testing.T) {
	s, panelDev, lcdDev := newTestShell()
	panelDev.QueueReads(mcp23017.GPIOA, 0x81)
	lcdDev.QueueReads(mcp23017.GPIOA, 0xFE)
	b, err := s.ReadButtons()
	require.NoError(t, err)
	assert.Equal(t, Buttons{Panel: 0x81, LCD: 0x02}, b)
}

func TestChase(t *testing.T) {
	s, panelDev, _ := newTestShell()
	require.NoError(t, s.Chase(5, 0))
	assert.Equal(t, []byte{0x11, 0x22, 0x44, 0x88, 0x11, 0x00}, panelDev.Writes(mcp23017.GPIOB))
}

func TestWatch(t *testing.T) {
	s, panelDev, _ := newTestShell()
	panelDev.QueueReads(mcp23017.GPIOA, 0x00, 0x04, 0x04)
	var lock sync.Mutex
	var seen []Buttons
	done := make(chan struct{})
	s.Watch(time.Millisecond, func(b Buttons, err error) {
		lock.Lock()
		defer lock.Unlock()
		if err == nil {
			seen = append(seen, b)
		}
		if len(seen) == 2 {
			close(done)
		}
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch timeout")
	}
	assert.True(t, s.StopWatch())
	assert.False(t, s.StopWatch())
	lock.Lock()
	defer lock.Unlock()
	assert.Equal(t, []Buttons{{Panel: 0x04}, {}}, seen)
}
