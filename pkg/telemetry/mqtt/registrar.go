package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/reaction.go/pkg/telemetry"
	"github.com/robotalks/reaction.go/pkg/telemetry/msgs"
)

// Topic suffixes under <prefix><type>/<id>/.
const (
	TopicMeta = "meta"
	TopicMsg  = "msg"
)

// DefaultTimeout bounds how long SendEvent waits for the broker.
const DefaultTimeout = 100 * time.Millisecond

// Registrar announces the controller with a retained meta message
// and publishes its events.
type Registrar struct {
	Queue   *Queue
	Info    telemetry.Info
	Timeout time.Duration

	metaJSON []byte
	seq      uint32
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info telemetry.Info) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+Topic(info.Ref, TopicMeta), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("reaction:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		Timeout:  DefaultTimeout,
		metaJSON: meta,
	}
	r.Queue.OnConnect = func(*Queue) { r.publishMeta(r.metaJSON) }
	return r, nil
}

// Topic builds the topic of a controller without prefix.
func Topic(ref telemetry.Ref, suffix string) string {
	return ref.Name() + "/" + suffix
}

// Name implements Named.
func (r *Registrar) Name() string {
	return "mqtt-registrar"
}

// SendEvent implements telemetry.EventSender.
func (r *Registrar) SendEvent(msg msgs.Message) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	typed.Sequence = atomic.AddUint32(&r.seq, 1)
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	token := r.Queue.PubWith(Topic(r.Info.Ref, TopicMsg), pkt, 0, false)
	if !token.WaitTimeout(r.Timeout) {
		return fmt.Errorf("publish %T: timeout", msg)
	}
	return token.Error()
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	<-ctx.Done()
	r.publishMeta(nil).WaitTimeout(r.Timeout)
	return r.Queue.Close()
}

func (r *Registrar) publishMeta(meta []byte) paho.Token {
	return r.Queue.PubWith(Topic(r.Info.Ref, TopicMeta), meta, 1, true)
}
