package models

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// displayPrinter renders amounts as "1,234.56" whatever the UI language is.
var displayPrinter = message.NewPrinter(language.English)

type ConversionRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// ConversionResult keeps the unrounded value; rounding only happens for display.
type ConversionResult struct {
	Value float64 `json:"value"`
}

// Rounded returns Value rounded to two decimal places.
func (r ConversionResult) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(r.Value).Round(2)
}

// Formatted renders the value as fixed-point with two fraction digits and grouping separators.
func (r ConversionResult) Formatted() string {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return ""
	}
	return displayPrinter.Sprintf("%.2f", r.Rounded().InexactFloat64())
}
