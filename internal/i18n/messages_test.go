package i18n

import (
	"testing"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please enter a valid amount greater than zero.", Message("en", models.KeyInvalidAmount))
	assert.Equal(t, "Không thể tải tỷ giá. Vui lòng thử lại.", Message("vi", models.KeyCannotFetchRates))
}

func TestMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, Message("en", models.KeyRateUnavailable), Message("fr", models.KeyRateUnavailable))
	assert.Equal(t, "", Message("en", ""))
	assert.Equal(t, "no_such_key", Message("en", "no_such_key"))
}

func TestEveryKeyIsTranslated(t *testing.T) {
	keys := []string{models.KeyInvalidAmount, models.KeyCannotFetchRates, models.KeyRateUnavailable, models.KeyFetchSuperseded}
	for _, l := range Languages {
		for _, key := range keys {
			assert.NotEqual(t, key, Message(l.Code, key), "%s/%s", l.Code, key)
		}
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("vi"))
	assert.False(t, Supported("fr"))
	assert.False(t, Supported(""))
}
