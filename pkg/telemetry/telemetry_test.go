package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/reaction.go/pkg/telemetry/msgs"
)

type testSender struct {
	sent []msgs.Message
	err  error
}

func (s *testSender) SendEvent(msg msgs.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type testReporter struct {
	started  int
	finished []RoundResult
}

func (r *testReporter) RoundStarted(time.Time) { r.started++ }
func (r *testReporter) RoundFinished(res RoundResult) { r.finished = append(r.finished, res) }

var testResult = RoundResult{
	StartedAt: time.Unix(1700000000, 0),
	Duration:  20 * time.Second,
	Scores:    [2]uint32{7, 11},
	Winner:    Player2,
}

func TestPublisher(t *testing.T) {
	sender := &testSender{}
	p := &Publisher{Sender: sender}
	p.RoundStarted(testResult.StartedAt)
	p.RoundFinished(testResult)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, &msgs.RoundStarted{StartedAt: 1700000000000}, sender.sent[0])
	assert.Equal(t, &msgs.RoundFinished{
		StartedAt:    1700000000000,
		DurationMs:   20000,
		Player1Score: 7,
		Player2Score: 11,
		Winner:       2,
	}, sender.sent[1])
}

func TestPublisherIgnoresSendError(t *testing.T) {
	sender := &testSender{err: errors.New("offline")}
	p := &Publisher{Sender: sender}
	p.RoundStarted(time.Now())
	assert.Len(t, sender.sent, 1)
}

func TestMux(t *testing.T) {
	r1, r2 := &testReporter{}, &testReporter{}
	mux := (&Mux{}).Add(r1, r2)
	mux.RoundStarted(time.Now())
	mux.RoundFinished(testResult)
	for _, r := range []*testReporter{r1, r2} {
		assert.Equal(t, 1, r.started)
		assert.Equal(t, []RoundResult{testResult}, r.finished)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RoundStarted(time.Now())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rounds))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.active))

	m.RoundFinished(testResult)
	m.RoundFinished(RoundResult{Scores: [2]uint32{3, 3}, Winner: Tie})
	assert.Equal(t, float64(0), testutil.ToFloat64(m.active))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.hits.WithLabelValues("player1")))
	assert.Equal(t, float64(14), testutil.ToFloat64(m.hits.WithLabelValues("player2")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.lastScore.WithLabelValues("player2")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.results.WithLabelValues("player2")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.results.WithLabelValues("tie")))
}

func TestRef(t *testing.T) {
	ref := Ref{Type: "reaction", ID: "abc"}
	assert.Equal(t, "reaction/abc", ref.Name())
	assert.True(t, ref.IsValid())
	assert.False(t, Ref{Type: "reaction"}.IsValid())
}
