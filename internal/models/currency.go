package models

import "strings"

const (
	DefaultFrom = "EUR"
	DefaultTo   = "USD"
)

type Currency struct {
	Code string `json:"code"`
	Flag string `json:"flag"`
}

// QuickPick is the short list offered in the currency pickers.
var QuickPick = []Currency{
	{"EUR", "🇪🇺"},
	{"USD", "🇺🇸"},
	{"JPY", "🇯🇵"},
	{"GBP", "🇬🇧"},
	{"AUD", "🇦🇺"},
	{"CAD", "🇨🇦"},
	{"CHF", "🇨🇭"},
	{"CNY", "🇨🇳"},
	{"HKD", "🇭🇰"},
	{"INR", "🇮🇳"},
	{"SGD", "🇸🇬"},
	{"BTC", "🟡"},
	{"VND", "🇻🇳"},
}

// NormalizeCode upper-cases and trims a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is three ASCII upper-case letters.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
