// Package i18n holds the user-facing messages in every supported UI language.
package i18n

import (
	"currency-converter/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

var Languages = []Language{
	{Code: "en", Name: "English", Flag: "🇬🇧"},
	{Code: "vi", Name: "Tiếng Việt", Flag: "🇻🇳"},
}

var translations = map[language.Tag]map[string]string{
	language.English: {
		models.KeyInvalidAmount:    "Please enter a valid amount greater than zero.",
		models.KeyCannotFetchRates: "Cannot fetch exchange rates. Please try again.",
		models.KeyRateUnavailable:  "No exchange rate is available for the selected currency.",
		models.KeyFetchSuperseded:  "A newer request replaced this one.",
	},
	language.Vietnamese: {
		models.KeyInvalidAmount:    "Vui lòng nhập số tiền hợp lệ lớn hơn 0.",
		models.KeyCannotFetchRates: "Không thể tải tỷ giá. Vui lòng thử lại.",
		models.KeyRateUnavailable:  "Không có tỷ giá cho loại tiền đã chọn.",
		models.KeyFetchSuperseded:  "Yêu cầu này đã được thay thế bởi yêu cầu mới hơn.",
	},
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Supported reports whether code is one of the UI languages.
func Supported(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Message returns the text for key in the given language, falling back to English.
// Unknown keys are returned unchanged.
func Message(lang, key string) string {
	if key == "" {
		return ""
	}
	tag := language.English
	if Supported(lang) {
		tag = language.MustParse(lang)
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(key)
}
