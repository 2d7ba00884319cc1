package workers

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Worker interface {
	Start(ctx context.Context)
}

type GenericWorker[T any] struct {
	messages chan []byte
	handler  WorkerHandler[T]
	sink     Sink[T]
	logger   log.Logger
}

func NewGenericWorker[T any](
	messages chan []byte,
	handler WorkerHandler[T],
	sink Sink[T],
	logger log.Logger,
) *GenericWorker[T] {
	return &GenericWorker[T]{
		messages: messages,
		handler:  handler,
		sink:     sink,
		logger:   log.With(logger, "worker", handler.Type()),
	}
}

func (w *GenericWorker[T]) Start(ctx context.Context) {
	level.Info(w.logger).Log("msg", "worker started")

	for {
		select {
		case data := <-w.messages:
			w.process(ctx, data)

		case <-ctx.Done():
			level.Info(w.logger).Log("msg", "worker stopped")
			return
		}
	}
}

func (w *GenericWorker[T]) process(ctx context.Context, data []byte) {
	v, err := w.handler.Handle(ctx, data)
	if err != nil {
		level.Warn(w.logger).Log("msg", "skipping message", "err", err)
		return
	}
	if err := w.sink.Save(ctx, v); err != nil {
		level.Error(w.logger).Log("msg", "save failed", "err", err)
	}
}
