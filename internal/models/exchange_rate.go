package models

import "time"

// RateTable is the full currency -> rate mapping from one fetch.
// Every rate is expressed relative to Base, and Rates[Base] is always 1.0.
type RateTable struct {
	Base      string             `json:"base"`
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Rate returns the base-relative rate for code.
func (t RateTable) Rate(code string) (float64, bool) {
	if t.Rates == nil {
		return 0, false
	}
	r, ok := t.Rates[code]
	return r, ok
}

func (t RateTable) Empty() bool {
	return len(t.Rates) == 0
}
