// Package events publishes entity-change events to NATS. The publisher is
// optional infrastructure: a nil *Publisher is valid and publishes nothing,
// so single-binary deployments need no broker.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

type Event struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher struct {
	nc     *nats.Conn
	prefix string
	log    zerolog.Logger
}

// Connect dials NATS. The subject for an event is prefix.entity.action.
func Connect(url, prefix string, log zerolog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, prefix: prefix, log: log}, nil
}

// Publish is fire-and-forget; marshal or send failures are logged only.
func (p *Publisher) Publish(entity, action, id string, data any) {
	if p == nil || p.nc == nil {
		return
	}
	ev := Event{Entity: entity, Action: action, ID: id, Data: data, Timestamp: time.Now()}
	b, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("event marshal failed")
		return
	}
	subject := p.prefix + "." + entity + "." + action
	if err := p.nc.Publish(subject, b); err != nil {
		p.log.Warn().Err(err).Str("subject", subject).Msg("event publish failed")
	}
}

func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
}
