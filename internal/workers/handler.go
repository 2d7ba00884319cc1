package workers

import "context"

// WorkerHandler decodes one message into a value ready to be stored.
type WorkerHandler[T any] interface {
	Type() string
	Handle(ctx context.Context, data []byte) (T, error)
}

// Sink persists what a handler produced.
type Sink[T any] interface {
	Save(ctx context.Context, v T) error
}
