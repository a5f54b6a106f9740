package queue

import (
	"context"
	"encoding/json"
)

type Driver string

const (
	DriverMemory Driver = "memory"
	DriverRedis  Driver = "redis"
)

// Message is one queued job.
type Message struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Payload, v) //nolint:wrapcheck //caller wraps
}

// Handler processes one message. A returned error is logged; the message is
// not redelivered.
type Handler func(ctx context.Context, msg Message) error

type Publisher interface {
	// Publish enqueues payload encoded as JSON and returns the message id.
	Publish(ctx context.Context, payload any) (string, error)
}

type Queue interface {
	Publisher

	// Subscribe sets the handler of all messages. It must be called before
	// Start.
	Subscribe(handler Handler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
