package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

const testConfig = `
[env]
mqtt = "mqtt://broker:1883/faire/"
lcd-addr = 0x27

[env.bus]
driver = "smbus"
bus = "1"

[controller]
id = "panel-7"

[meta]
description = "booth 7"

[game]
round-ms = 15000
`

type testGameConfig struct {
	RoundMs int `toml:"round-ms"`
	HoldMs  int `toml:"hold-ms"`
}

func TestLoadSections(t *testing.T) {
	conf := Config{
		Info:      telemetry.Info{Ref: telemetry.Ref{Type: ControllerType, ID: "x"}},
		PanelAddr: 0x20,
		LCDAddr:   0x21,
	}
	game := testGameConfig{RoundMs: 20000, HoldMs: 3000}
	err := loadSections([]byte(testConfig), map[string]interface{}{
		"env":        &conf,
		"controller": &conf.Info.Ref,
		"meta":       &conf.Info.Meta,
		"game":       &game,
	})
	require.NoError(t, err)
	assert.Equal(t, "mqtt://broker:1883/faire/", conf.MQTTBrokerURL)
	assert.Equal(t, uint(0x27), conf.LCDAddr)
	assert.Equal(t, uint(0x20), conf.PanelAddr)
	assert.Equal(t, bus.Config{Driver: bus.DriverSMBus, Name: "1"}, conf.Bus)
	assert.Equal(t, telemetry.Ref{Type: ControllerType, ID: "panel-7"}, conf.Info.Ref)
	assert.Equal(t, "booth 7", conf.Info.Meta.Description)
	assert.Equal(t, testGameConfig{RoundMs: 15000, HoldMs: 3000}, game)
}

func TestLoadSectionsUnknown(t *testing.T) {
	err := loadSections([]byte("[lights]\non = true\n"), map[string]interface{}{})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "reaction.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[env]\nmetrics-addr = \":9100\"\n"), 0644))
	saved := defaultConfig
	defer func() { defaultConfig = saved }()
	require.NoError(t, LoadFile(fn))
	assert.Equal(t, ":9100", Default().MetricsAddr)
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestSetupHardware(t *testing.T) {
	fb := bus.NewFakeBus()
	conf := NewConfig()
	hw, err := conf.SetupHardware(fb)
	require.NoError(t, err)
	assert.Equal(t, []byte{mcp23017.AllInputs}, fb.Fake(mcp23017.PanelAddress).Writes(mcp23017.IODIRA))
	assert.Equal(t, []byte{LCDInputs}, fb.Fake(mcp23017.LCDAddress).Writes(mcp23017.IODIRA))
	assert.Equal(t, []byte{0}, fb.Fake(mcp23017.LCDAddress).Writes(mcp23017.IODIRB))
	require.NoError(t, hw.Close())
	assert.True(t, fb.Closed)
}

func TestSetupHardwareFailure(t *testing.T) {
	fb := bus.NewFakeBus()
	fb.Fake(mcp23017.LCDAddress).Err = bus.ErrInjected
	_, err := NewConfig().SetupHardware(fb)
	assert.True(t, errors.Is(err, bus.ErrInjected))
}

func TestNewEnvWith(t *testing.T) {
	conf := NewConfig()
	conf.MQTTBrokerURL = ""
	conf.MetricsAddr = ":0"
	hw, err := conf.SetupHardware(bus.NewFakeBus())
	require.NoError(t, err)
	env, err := conf.NewEnvWith(hw)
	require.NoError(t, err)
	require.NotNil(t, env.Metrics)
	assert.Len(t, env.Reporter.Reporters, 1)
	assert.Len(t, env.runnables, 1)
}

func TestNewEnvInvalidRef(t *testing.T) {
	conf := NewConfig()
	conf.Info.Ref.Type = ""
	_, err := conf.NewEnv()
	assert.Error(t, err)
}
