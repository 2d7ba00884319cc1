package workers

import (
	"context"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
)

type WorkerBundle struct {
	ConversionWorker *GenericWorker[models.ConversionEvent]
}

// StartAllWorkers wires the events consumer to the usage store. It returns nil
// when there is nothing to consume.
func StartAllWorkers(ctx context.Context, consumer Subscriber, usage Sink[models.ConversionEvent], logger log.Logger) *WorkerBundle {
	if consumer == nil || usage == nil {
		return nil
	}

	conversionCh := make(chan []byte, 100)
	StartWorkerMultiplexer(ctx, consumer, map[string]chan []byte{
		models.EventTypeConversion: conversionCh,
	}, logger)

	conversionWorker := NewGenericWorker[models.ConversionEvent](conversionCh, ConversionWorkerHandler{}, usage, logger)
	go conversionWorker.Start(ctx)

	return &WorkerBundle{ConversionWorker: conversionWorker}
}
