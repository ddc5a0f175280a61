package game

import (
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

// State is the engine state.
type State int

// States
const (
	Idle State = iota
	Active
	RoundOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case RoundOver:
		return "round-over"
	default:
		return "unknown"
	}
}

// Player owns a nibble of the panel.
type Player struct {
	// Buttons selects the player's bits on both ports.
	Buttons byte
	// Shift moves a Mask onto the player's bits.
	Shift uint
	Score uint32
	// Mask is the current target, zero when a new one is needed.
	Mask Mask
	// LastMask is the last hit target, never drawn twice in a row.
	LastMask Mask
}

// Target returns the current target on the player's bits.
func (p *Player) Target() byte {
	return byte(p.Mask) << p.Shift
}

// Hit checks the buttons against the target. The pressed buttons of
// the player must equal the target exactly, pressing extra buttons
// is not a hit. A hit scores and clears the target.
func (p *Player) Hit(buttons byte) bool {
	if p.Mask == 0 || buttons&p.Buttons != p.Target() {
		return false
	}
	p.Score++
	p.LastMask = p.Mask
	p.Mask = 0
	return true
}

// Round is the state of one game.
type Round struct {
	// Start is the tick in milliseconds when the round started.
	Start   uint32
	Players [2]Player
}

// NewRound creates a round with both players reset.
func NewRound(start uint32) *Round {
	return &Round{
		Start: start,
		Players: [2]Player{
			{Buttons: 0x0F, Shift: 0},
			{Buttons: 0xF0, Shift: 4},
		},
	}
}

// Elapsed returns milliseconds since start, correct across the
// wraparound of the 32-bit tick counter.
func (r *Round) Elapsed(now uint32) uint32 {
	return now - r.Start
}

// Scores returns both scores.
func (r *Round) Scores() [2]uint32 {
	return [2]uint32{r.Players[0].Score, r.Players[1].Score}
}

// Winner returns telemetry.Player1, telemetry.Player2 or telemetry.Tie.
func (r *Round) Winner() int {
	switch s := r.Scores(); {
	case s[0] > s[1]:
		return telemetry.Player1
	case s[1] > s[0]:
		return telemetry.Player2
	default:
		return telemetry.Tie
	}
}

// WinnerLights returns the lights flashed for the winner.
func (r *Round) WinnerLights() byte {
	switch r.Winner() {
	case telemetry.Player1:
		return r.Players[0].Buttons
	case telemetry.Player2:
		return r.Players[1].Buttons
	default:
		return r.Players[0].Buttons | r.Players[1].Buttons
	}
}

// ChaseStart is the first pattern of the idle chase.
const ChaseStart byte = 0x11

// NextChase rotates the idle pattern one light further in both nibbles.
func NextChase(cur byte) byte {
	if cur&0x88 != 0 {
		return ChaseStart
	}
	return cur << 1
}
