package env

import (
	"fmt"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/reaction.go/pkg/bus"
	fx "github.com/robotalks/reaction.go/pkg/framework"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
	"github.com/robotalks/reaction.go/pkg/telemetry"
	"github.com/robotalks/reaction.go/pkg/telemetry/mqtt"
)

// LCDInputs are the port A pins of the LCD expander wired as buttons.
const LCDInputs byte = 0x03

// Hardware is the opened bus with both expanders configured.
type Hardware struct {
	Bus   bus.Bus
	Panel bus.Device
	LCD   bus.Device
}

// OpenHardware opens the configured bus and configures both expanders.
func (c *Config) OpenHardware() (*Hardware, error) {
	b, err := c.Bus.Open()
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}
	hw, err := c.SetupHardware(b)
	if err != nil {
		b.Close()
		return nil, err
	}
	return hw, nil
}

// SetupHardware configures both expanders on an opened bus.
func (c *Config) SetupHardware(b bus.Bus) (*Hardware, error) {
	hw := &Hardware{
		Bus:   b,
		Panel: b.Device(uint16(c.PanelAddr)),
		LCD:   b.Device(uint16(c.LCDAddr)),
	}
	if err := mcp23017.Configure(hw.Panel, mcp23017.PortConfig{Inputs: mcp23017.AllInputs}); err != nil {
		return nil, err
	}
	if err := mcp23017.Configure(hw.LCD, mcp23017.PortConfig{Inputs: LCDInputs}); err != nil {
		return nil, err
	}
	glog.V(2).Infof("expanders configured: panel=%#02x lcd=%#02x", c.PanelAddr, c.LCDAddr)
	return hw, nil
}

// Close implements io.Closer.
func (hw *Hardware) Close() error {
	return hw.Bus.Close()
}

// Env is the env of the panel daemon.
type Env struct {
	*Hardware

	Config   *Config
	Reporter *telemetry.Mux
	Metrics  *telemetry.Metrics

	runnables []fx.Runnable
}

// NewEnv opens hardware and creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("controller type and id must be specified")
	}
	hw, err := c.OpenHardware()
	if err != nil {
		return nil, err
	}
	env, err := c.NewEnvWith(hw)
	if err != nil {
		hw.Close()
		return nil, err
	}
	return env, nil
}

// NewEnvWith creates Env on already configured hardware.
func (c *Config) NewEnvWith(hw *Hardware) (*Env, error) {
	env := &Env{
		Hardware: hw,
		Config:   c,
		Reporter: &telemetry.Mux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %w", err)
		}
		env.Reporter.Add(&telemetry.Publisher{Sender: reg})
		env.runnables = append(env.runnables, reg)
	}
	if c.MetricsAddr != "" {
		env.Metrics = telemetry.NewMetrics()
		env.Reporter.Add(env.Metrics)
		env.runnables = append(env.runnables, &telemetry.MetricsServer{
			Addr:    c.MetricsAddr,
			Handler: env.Metrics.Handler(),
		})
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// AddToLoop implements LoopAdder.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(e.runnables...)
}
