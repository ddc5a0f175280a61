package lcd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
)

// remapped is the wiring table: nibble -> port B data bits.
var remapped = [16]byte{
	0x00, 0x10, 0x08, 0x18, 0x04, 0x14, 0x0C, 0x1C,
	0x02, 0x12, 0x0A, 0x1A, 0x06, 0x16, 0x0E, 0x1E,
}

type pauseAt struct {
	op  int
	dur time.Duration
}

type testDisplay struct {
	dev    *bus.Fake
	drv    *Driver
	pauses []pauseAt
}

func newTestDisplay() *testDisplay {
	td := &testDisplay{dev: bus.NewFake()}
	td.drv = New(td.dev)
	td.drv.Sleep = func(d time.Duration) {
		td.pauses = append(td.pauses, pauseAt{op: len(td.dev.Ops), dur: d})
	}
	return td
}

func nibbleWrites(selector byte, nibbles ...byte) []byte {
	var out []byte
	for _, n := range nibbles {
		v := selector | remapped[n]
		out = append(out, v|Enable, v)
	}
	return out
}

func TestRemap(t *testing.T) {
	for n := 0; n < 16; n++ {
		assert.Equal(t, remapped[n], Remap(byte(n)), "nibble %x", n)
	}
	// only the low nibble is mapped.
	assert.Equal(t, remapped[0x5], Remap(0xF5))
}

func TestRemapBijective(t *testing.T) {
	seen := make(map[byte]bool)
	for n := 0; n < 16; n++ {
		v := Remap(byte(n))
		require.False(t, seen[v], "duplicate %x", v)
		require.Zero(t, v&^0x1E, "bits outside data lines: %x", v)
		seen[v] = true
	}
}

func TestReset(t *testing.T) {
	td := newTestDisplay()
	require.NoError(t, td.drv.Reset())
	expected := nibbleWrites(Instruction,
		0x03, 0x03, 0x03, 0x02,
		0x02, 0x08,
		0x00, 0x0C,
		0x00, 0x06,
		0x00, 0x01,
		0x00, 0x02,
	)
	assert.Equal(t, expected, td.dev.Writes(mcp23017.GPIOB))
	assert.Len(t, td.dev.Ops, len(expected))
	assert.Equal(t, []pauseAt{
		{op: 2, dur: 4 * time.Millisecond},
		{op: 24, dur: time.Millisecond},
		{op: 28, dur: time.Millisecond},
	}, td.pauses)
}

func TestClear(t *testing.T) {
	td := newTestDisplay()
	require.NoError(t, td.drv.Clear())
	assert.Equal(t, nibbleWrites(Instruction, 0x00, 0x01, 0x00, 0x02), td.dev.Writes(mcp23017.GPIOB))
	assert.Equal(t, []pauseAt{
		{op: 4, dur: time.Millisecond},
		{op: 8, dur: time.Millisecond},
	}, td.pauses)
}

func TestMoveToLine(t *testing.T) {
	testCases := []struct {
		line    int
		nibbles []byte
	}{
		{line: 0, nibbles: []byte{0x08, 0x00}}, // addr 0
		{line: 1, nibbles: []byte{0x0C, 0x00}}, // addr 64
		{line: 2, nibbles: []byte{0x09, 0x04}}, // addr 20
		{line: 3, nibbles: []byte{0x0D, 0x04}}, // addr 84
	}
	for _, tc := range testCases {
		td := newTestDisplay()
		require.NoError(t, td.drv.MoveToLine(tc.line))
		assert.Equal(t, nibbleWrites(Instruction, tc.nibbles...), td.dev.Writes(mcp23017.GPIOB), "line %d", tc.line)
		assert.Empty(t, td.pauses)
	}
}

func TestMoveToInvalidLine(t *testing.T) {
	for _, line := range []int{-1, 4, 100} {
		td := newTestDisplay()
		err := td.drv.MoveToLine(line)
		require.True(t, errors.Is(err, ErrInvalidLine))
		assert.Empty(t, td.dev.Ops)
	}
}

func TestPrintLine(t *testing.T) {
	td := newTestDisplay()
	require.NoError(t, td.drv.PrintLine("A1"))
	// 'A' = 0x41, '1' = 0x31
	assert.Equal(t, nibbleWrites(Data, 0x4, 0x1, 0x3, 0x1), td.dev.Writes(mcp23017.GPIOB))
	assert.Equal(t, []pauseAt{
		{op: 4, dur: time.Millisecond},
		{op: 8, dur: time.Millisecond},
	}, td.pauses)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "abc                 ", Pad("abc"))
	assert.Equal(t, "01234567890123456789", Pad("0123456789012345678901"))
	assert.Len(t, Pad(""), Columns)
}

func TestWriteScreen(t *testing.T) {
	td := newTestDisplay()
	require.NoError(t, td.drv.WriteScreen(Screen{"a", "b", "c", "d"}))
	writes := td.dev.Writes(mcp23017.GPIOB)
	// reset (14 nibbles) + 4 * (move 2 nibbles + 20 chars * 2 nibbles)
	assert.Len(t, writes, 2*(14+4*(2+2*Columns)))
	// the first line starts right after reset with a move to address 0.
	assert.Equal(t, nibbleWrites(Instruction, 0x08, 0x00), writes[28:32])
	assert.Equal(t, nibbleWrites(Data, 0x6, 0x1), writes[32:36])
}

func TestTransferError(t *testing.T) {
	td := newTestDisplay()
	td.dev.Err = bus.ErrInjected
	require.True(t, errors.Is(td.drv.Reset(), bus.ErrInjected))
	require.True(t, errors.Is(td.drv.PrintLine("x"), bus.ErrInjected))
	assert.Empty(t, td.pauses)
}
