package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/env"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

func TestConfigNewEngine(t *testing.T) {
	conf := NewConfig()
	assert.Equal(t, DefaultTiming, conf.Timing())

	conf.RoundMs = 15000
	conf.Texts.GameOver = "FIN"
	mux := &telemetry.Mux{}
	e := &env.Env{
		Hardware: &env.Hardware{Panel: bus.NewFake(), LCD: bus.NewFake()},
		Reporter: mux,
	}
	eng := conf.NewEngine(e)
	assert.Equal(t, uint32(15000), eng.Timing.Round)
	assert.Equal(t, "FIN", eng.Texts.GameOver)
	assert.Equal(t, mux, eng.Reporter)
	assert.Equal(t, Idle, eng.State())
}
