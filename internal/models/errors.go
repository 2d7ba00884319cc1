package models

import "errors"

var (
	ErrInvalidURL      = errors.New("invalid rates url")
	ErrNetwork         = errors.New("network error")
	ErrDecode          = errors.New("decode error")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrRateUnavailable = errors.New("rate unavailable")

	// ErrFetchSuperseded is returned by a fetch that was cancelled because a newer one started.
	ErrFetchSuperseded = errors.New("fetch superseded")

	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrStatsDisabled       = errors.New("usage statistics disabled")
)

// Message keys shown to the user.
const (
	KeyInvalidAmount    = "invalid_amount"
	KeyCannotFetchRates = "cannot_fetch_rates"
	KeyRateUnavailable  = "rate_unavailable"
	KeyFetchSuperseded  = "fetch_superseded"
)

// ErrorKey maps an error to the message key displayed to the user.
func ErrorKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount):
		return KeyInvalidAmount
	case errors.Is(err, ErrRateUnavailable):
		return KeyRateUnavailable
	case errors.Is(err, ErrFetchSuperseded):
		return KeyFetchSuperseded
	default:
		return KeyCannotFetchRates
	}
}

// ErrorKind is the short name of the error used in logs, metrics and events.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "invalidURL"
	case errors.Is(err, ErrNetwork):
		return "networkError"
	case errors.Is(err, ErrDecode):
		return "decodeError"
	case errors.Is(err, ErrInvalidAmount):
		return "invalidAmount"
	case errors.Is(err, ErrRateUnavailable):
		return "rateUnavailable"
	case errors.Is(err, ErrFetchSuperseded):
		return "superseded"
	default:
		return "unknown"
	}
}
