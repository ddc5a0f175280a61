package game

import (
	"flag"

	"github.com/robotalks/reaction.go/pkg/env"
	"github.com/robotalks/reaction.go/pkg/lcd"
	"github.com/robotalks/reaction.go/pkg/panel"
)

// Config defines the timing and texts of the game.
type Config struct {
	RoundMs int `toml:"round-ms"`
	FlashMs int `toml:"flash-ms"`
	Flashes int `toml:"flashes"`
	HoldMs  int `toml:"hold-ms"`
	// Seed of mask generator, 0 for time based.
	Seed  int64 `toml:"seed"`
	Texts Texts `toml:"texts"`
}

var defaultConfig = Config{
	RoundMs: 20000,
	FlashMs: 400,
	Flashes: 3,
	HoldMs:  3000,
	Texts:   DefaultTexts,
}

func init() {
	env.RegisterSection("game", &defaultConfig)
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.RoundMs, "round-ms", defaultConfig.RoundMs, "Round length in milliseconds")
	flag.IntVar(&defaultConfig.FlashMs, "flash-ms", defaultConfig.FlashMs, "Winner flash phase in milliseconds")
	flag.IntVar(&defaultConfig.Flashes, "flashes", defaultConfig.Flashes, "Number of winner flashes")
	flag.IntVar(&defaultConfig.HoldMs, "hold-ms", defaultConfig.HoldMs, "Time results stay on screen in milliseconds")
	flag.Int64Var(&defaultConfig.Seed, "seed", defaultConfig.Seed, "Random seed, 0 for time based")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Timing converts the millisecond settings.
func (c *Config) Timing() Timing {
	return Timing{
		Round:   uint32(c.RoundMs),
		Flash:   uint32(c.FlashMs),
		Flashes: c.Flashes,
		Hold:    uint32(c.HoldMs),
	}
}

// NewEngine creates an engine on the env.
func (c *Config) NewEngine(e *env.Env) *Engine {
	eng := NewEngine(panel.New(e.Panel), panel.New(e.LCD), lcd.New(e.LCD))
	eng.Masks = NewMaskGenerator(c.Seed)
	eng.Timing = c.Timing()
	eng.Texts = c.Texts
	eng.Reporter = e.Reporter
	return eng
}
