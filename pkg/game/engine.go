package game

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/reaction.go/pkg/env"
	fx "github.com/robotalks/reaction.go/pkg/framework"
	"github.com/robotalks/reaction.go/pkg/lcd"
	"github.com/robotalks/reaction.go/pkg/panel"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

// Timing of a round in milliseconds.
type Timing struct {
	Round   uint32
	Flash   uint32
	Flashes int
	Hold    uint32
}

// DefaultTiming is the stock timing.
var DefaultTiming = Timing{Round: 20000, Flash: 400, Flashes: 3, Hold: 3000}

var epoch = time.Now()

// MonotonicTicks returns milliseconds since process start. The value
// wraps around after about 49 days.
func MonotonicTicks() uint32 {
	return uint32(time.Since(epoch) / time.Millisecond)
}

// Engine runs the game as a state machine stepped by the loop.
type Engine struct {
	Panel *panel.Panel
	// Inputs reads the extra buttons on the LCD expander.
	Inputs   *panel.Panel
	LCD      *lcd.Driver
	Masks    *MaskGenerator
	Timing   Timing
	Texts    Texts
	Reporter telemetry.Reporter
	// Ticks is a millisecond counter, allowed to wrap around.
	Ticks func() uint32
	Now   func() time.Time

	state      State
	chase      byte
	round      *Round
	startedAt  time.Time
	phase      int
	phaseStart uint32
}

// NewEngine creates an Engine with default timing and texts.
func NewEngine(p, inputs *panel.Panel, display *lcd.Driver) *Engine {
	return &Engine{
		Panel:    p,
		Inputs:   inputs,
		LCD:      display,
		Masks:    NewMaskGenerator(0),
		Timing:   DefaultTiming,
		Texts:    DefaultTexts,
		Reporter: &telemetry.Mux{},
		Ticks:    MonotonicTicks,
		Now:      time.Now,
		chase:    ChaseStart,
	}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Round returns the current or last round, nil before the first one.
func (e *Engine) Round() *Round {
	return e.round
}

// Start renders the idle screen. It must succeed before the loop runs.
func (e *Engine) Start() error {
	e.state, e.chase = Idle, ChaseStart
	return e.LCD.WriteScreen(e.Texts.Idle)
}

// Tick runs one step of the current state.
func (e *Engine) Tick() error {
	switch e.state {
	case Active:
		return e.activeStep()
	case RoundOver:
		return e.roundOverStep()
	default:
		return e.idleStep()
	}
}

// Control implements Controller. Bus errors are fatal. An active
// round asks the loop to run again right away.
func (e *Engine) Control(cc fx.ControlContext) error {
	if err := e.Tick(); err != nil {
		return fx.Fatal(err)
	}
	if e.state == Active {
		cc.TriggerNext()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (e *Engine) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, e)
}

func (e *Engine) pressed() (bool, error) {
	buttons, err := e.Panel.ReadButtons()
	if err != nil {
		return false, err
	}
	inputs, err := e.Inputs.ReadButtons()
	if err != nil {
		return false, err
	}
	return buttons != 0 || inputs&env.LCDInputs != 0, nil
}

func (e *Engine) idleStep() error {
	pressed, err := e.pressed()
	if err != nil {
		return err
	}
	if pressed {
		return e.startRound()
	}
	e.chase = NextChase(e.chase)
	return e.Panel.WriteLights(e.chase)
}

func (e *Engine) startRound() error {
	if err := e.Panel.WriteLights(0); err != nil {
		return err
	}
	if err := e.LCD.WriteScreen(e.Texts.Instructions); err != nil {
		return err
	}
	e.round = NewRound(e.Ticks())
	e.startedAt = e.Now()
	e.setState(Active)
	e.Reporter.RoundStarted(e.startedAt)
	return nil
}

func (e *Engine) activeStep() error {
	r := e.round
	if r.Elapsed(e.Ticks()) > e.Timing.Round {
		return e.finishRound()
	}
	for i := range r.Players {
		p := &r.Players[i]
		if p.Mask != 0 {
			continue
		}
		p.Mask = e.Masks.Next(p.LastMask)
		if err := e.Panel.MergeLights(^p.Buttons, p.Target()); err != nil {
			return err
		}
	}
	buttons, err := e.Panel.ReadButtons()
	if err != nil {
		return err
	}
	for i := range r.Players {
		if r.Players[i].Hit(buttons) {
			glog.V(3).Infof("player %d hit %#02x, score %d", i+1, buttons, r.Players[i].Score)
		}
	}
	return nil
}

func (e *Engine) finishRound() error {
	r := e.round
	if err := e.Panel.WriteLights(0); err != nil {
		return err
	}
	if err := e.Panel.WriteLights(r.WinnerLights()); err != nil {
		return err
	}
	e.phase, e.phaseStart = 0, e.Ticks()
	e.setState(RoundOver)
	e.Reporter.RoundFinished(telemetry.RoundResult{
		StartedAt: e.startedAt,
		Duration:  e.Now().Sub(e.startedAt),
		Scores:    r.Scores(),
		Winner:    r.Winner(),
	})
	if e.Timing.Flashes <= 0 {
		return e.showResults()
	}
	return nil
}

// roundOverStep flashes the winner lights with phases alternating
// on and off, then shows results and holds them before going idle.
func (e *Engine) roundOverStep() error {
	now := e.Ticks()
	phases := 2 * e.Timing.Flashes
	if e.phase >= phases {
		if now-e.phaseStart < e.Timing.Hold {
			return nil
		}
		if err := e.LCD.WriteScreen(e.Texts.Idle); err != nil {
			return err
		}
		e.chase = ChaseStart
		e.setState(Idle)
		return nil
	}
	if now-e.phaseStart < e.Timing.Flash {
		return nil
	}
	e.phase++
	e.phaseStart = now
	if e.phase < phases {
		var lights byte
		if e.phase%2 == 0 {
			lights = e.round.WinnerLights()
		}
		return e.Panel.WriteLights(lights)
	}
	return e.showResults()
}

func (e *Engine) showResults() error {
	if err := e.LCD.WriteScreen(e.Texts.Results(e.round)); err != nil {
		return err
	}
	e.phaseStart = e.Ticks()
	return nil
}

func (e *Engine) setState(s State) {
	glog.V(2).Infof("game %s -> %s", e.state, s)
	e.state = s
}
