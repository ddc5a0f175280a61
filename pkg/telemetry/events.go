package telemetry

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/reaction.go/pkg/telemetry/msgs"
)

// EventSender sends an encoded event.
type EventSender interface {
	SendEvent(msgs.Message) error
}

// Publisher converts round notifications into events.
type Publisher struct {
	Sender EventSender
}

// RoundStarted implements Reporter.
func (p *Publisher) RoundStarted(at time.Time) {
	p.send(&msgs.RoundStarted{StartedAt: unixMillis(at)})
}

// RoundFinished implements Reporter.
func (p *Publisher) RoundFinished(r RoundResult) {
	p.send(&msgs.RoundFinished{
		StartedAt:    unixMillis(r.StartedAt),
		DurationMs:   uint32(r.Duration / time.Millisecond),
		Player1Score: r.Scores[0],
		Player2Score: r.Scores[1],
		Winner:       int32(r.Winner),
	})
}

func (p *Publisher) send(msg msgs.Message) {
	if err := p.Sender.SendEvent(msg); err != nil {
		glog.Warningf("send %T error: %v", msg, err)
	}
}

func unixMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
