package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"currency-converter/internal/models"
)

type ConversionWorkerHandler struct{}

func (ConversionWorkerHandler) Type() string {
	return models.EventTypeConversion
}

func (ConversionWorkerHandler) Handle(_ context.Context, data []byte) (models.ConversionEvent, error) {
	var event models.ConversionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("invalid conversion event: %w", err)
	}
	if !models.ValidCode(event.From) || !models.ValidCode(event.To) {
		return event, fmt.Errorf("invalid currency pair %q -> %q", event.From, event.To)
	}
	if event.ClientID == "" {
		return event, fmt.Errorf("conversion event without client id")
	}
	if event.CreatedAt.IsZero() {
		return event, fmt.Errorf("conversion event without timestamp")
	}
	return event, nil
}
