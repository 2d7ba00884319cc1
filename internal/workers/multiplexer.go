package workers

import (
	"context"
	"encoding/json"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Subscriber is the part of the Kafka consumer the multiplexer needs.
type Subscriber interface {
	Start(ctx context.Context, handler func(key, value []byte))
}

// Route returns the consumer callback that unwraps each envelope and hands
// its payload to the channel registered for its type. Messages are dropped
// when the channel is full.
func Route(routes map[string]chan []byte, logger log.Logger) func(key, value []byte) {
	return func(key, value []byte) {
		var envelope models.Envelope
		if err := json.Unmarshal(value, &envelope); err != nil {
			level.Warn(logger).Log("msg", "invalid message in multiplexer", "key", string(key), "err", err)
			return
		}

		ch, ok := routes[envelope.Type]
		if !ok {
			level.Warn(logger).Log("msg", "unknown message type", "type", envelope.Type)
			return
		}

		select {
		case ch <- envelope.Data:
		default:
			level.Warn(logger).Log("msg", "channel full, dropping message", "type", envelope.Type, "key", string(key))
		}
	}
}

func StartWorkerMultiplexer(ctx context.Context, consumer Subscriber, routes map[string]chan []byte, logger log.Logger) {
	consumer.Start(ctx, Route(routes, logger))
}
