// Package telemetry reports game rounds outside the process:
// MQTT events, Prometheus metrics and logs.
package telemetry

import (
	"time"

	"github.com/golang/glog"
)

// Ref identifies a panel controller.
type Ref struct {
	// Type is controller type.
	Type string `toml:"type"`
	// ID is unique ID of the device.
	ID string `toml:"id"`
}

// Name retrieves the name from ref.
func (r Ref) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates Ref is valid.
func (r Ref) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// Meta provides metadata of a controller.
type Meta struct {
	Description string            `json:"description,omitempty" toml:"description"`
	Labels      map[string]string `json:"labels,omitempty" toml:"labels"`
}

// Info provides information of a controller.
type Info struct {
	Ref  Ref
	Meta Meta
}

// Winner values.
const (
	Tie     = 0
	Player1 = 1
	Player2 = 2
)

// RoundResult summarizes a finished round.
type RoundResult struct {
	StartedAt time.Time
	Duration  time.Duration
	Scores    [2]uint32
	// Winner is Player1, Player2 or Tie.
	Winner int
}

// Reporter receives round notifications from the engine.
// Implementations must return quickly, they run on the loop goroutine.
type Reporter interface {
	RoundStarted(at time.Time)
	RoundFinished(RoundResult)
}

// Mux fans out notifications to multiple reporters.
type Mux struct {
	Reporters []Reporter
}

// Add adds reporters.
func (m *Mux) Add(reporters ...Reporter) *Mux {
	m.Reporters = append(m.Reporters, reporters...)
	return m
}

// RoundStarted implements Reporter.
func (m *Mux) RoundStarted(at time.Time) {
	glog.V(2).Infof("round started at %s", at.Format(time.RFC3339))
	for _, r := range m.Reporters {
		r.RoundStarted(at)
	}
}

// RoundFinished implements Reporter.
func (m *Mux) RoundFinished(result RoundResult) {
	glog.Infof("round finished: player1=%d player2=%d winner=%d",
		result.Scores[0], result.Scores[1], result.Winner)
	for _, r := range m.Reporters {
		r.RoundFinished(result)
	}
}
