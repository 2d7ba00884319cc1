package models

import (
	"encoding/json"
	"time"
)

const EventTypeConversion = "conversion"

// ConversionEvent is published for every conversion attempt.
type ConversionEvent struct {
	ClientID  string    `json:"client_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Result    float64   `json:"result"`
	OK        bool      `json:"ok"`
	ErrorKey  string    `json:"error_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Envelope wraps every message on the events topic.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// PopularPair is a currency pair with the number of conversions in the window.
type PopularPair struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}
