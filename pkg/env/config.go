// Package env sets up the common environment of the panel programs:
// configuration, the I2C bus with both expanders, and telemetry.
package env

import (
	"flag"
	"fmt"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/pelletier/go-toml/v2"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/mcp23017"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

// ControllerType is the default controller type.
const ControllerType = "reaction"

// Config provides common options of the panel programs.
type Config struct {
	Info telemetry.Info `toml:"-"`
	Bus  bus.Config     `toml:"bus"`

	PanelAddr uint `toml:"panel-addr"`
	LCDAddr   uint `toml:"lcd-addr"`

	// MQTTBrokerURL specifies the MQTT broker to use,
	// e.g. mqtt://host:port/topic-prefix. Empty disables MQTT.
	MQTTBrokerURL string `toml:"mqtt"`
	// MetricsAddr is the listen address of /metrics. Empty disables it.
	MetricsAddr string `toml:"metrics-addr"`
}

var (
	defaultConfig = Config{
		Info: telemetry.Info{
			Ref: telemetry.Ref{Type: ControllerType},
		},
		Bus:       bus.Config{Driver: bus.DriverPeriph},
		PanelAddr: uint(mcp23017.PanelAddress),
		LCDAddr:   uint(mcp23017.LCDAddress),
	}

	configFile string
	sections   = map[string]interface{}{
		"env":        &defaultConfig,
		"controller": &defaultConfig.Info.Ref,
		"meta":       &defaultConfig.Info.Meta,
	}
)

func init() {
	if val := os.Getenv("REACTION_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("REACTION_I2C_BUS"); val != "" {
		defaultConfig.Bus.Name = val
	}
	defaultConfig.Info.Ref.ID = MachineID()
}

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		return "unknown"
	}
	return id
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "TOML config file")
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Controller type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID")
	flag.StringVar(&defaultConfig.Bus.Driver, "i2c-driver", defaultConfig.Bus.Driver, "I2C driver: periph or smbus")
	flag.StringVar(&defaultConfig.Bus.Name, "i2c-bus", defaultConfig.Bus.Name, "I2C bus name or number")
	flag.UintVar(&defaultConfig.PanelAddr, "panel-addr", defaultConfig.PanelAddr, "I2C address of button panel expander")
	flag.UintVar(&defaultConfig.LCDAddr, "lcd-addr", defaultConfig.LCDAddr, "I2C address of LCD expander")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.MetricsAddr, "metrics-addr", defaultConfig.MetricsAddr, "Listen address for /metrics")
}

// RegisterSection binds a section of the config file to v, which is
// usually the default config of a package. Call it from init.
func RegisterSection(name string, v interface{}) {
	sections[name] = v
}

// ParseFlags parses command line flags and loads the config file given
// by -config. Flags set on the command line override the file.
func ParseFlags() error {
	flag.Parse()
	if configFile == "" {
		return nil
	}
	explicit := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	if err := LoadFile(configFile); err != nil {
		return err
	}
	for name, val := range explicit {
		if err := flag.Set(name, val); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads registered sections from a TOML file.
func LoadFile(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	if err := loadSections(data, sections); err != nil {
		return fmt.Errorf("config %s: %w", fn, err)
	}
	return nil
}

func loadSections(data []byte, targets map[string]interface{}) error {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for name, raw := range doc {
		target, ok := targets[name]
		if !ok {
			return fmt.Errorf("unknown section [%s]", name)
		}
		encoded, err := toml.Marshal(raw)
		if err != nil {
			return err
		}
		if err := toml.Unmarshal(encoded, target); err != nil {
			return fmt.Errorf("section [%s]: %w", name, err)
		}
	}
	return nil
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
