package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrInvalidURL, http.StatusBadGateway},
		{fmt.Errorf("%w: timeout", models.ErrNetwork), http.StatusBadGateway},
		{fmt.Errorf("%w: bad json", models.ErrDecode), http.StatusBadGateway},
		{fmt.Errorf("%w: -1", models.ErrInvalidAmount), http.StatusBadRequest},
		{models.ErrUnsupportedLanguage, http.StatusBadRequest},
		{fmt.Errorf("%w: XYZ", models.ErrRateUnavailable), http.StatusUnprocessableEntity},
		{models.ErrFetchSuperseded, http.StatusConflict},
		{models.ErrStatsDisabled, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	renderError(rec, req, fmt.Errorf("%w: upstream 101 invalid_access_key", models.ErrNetwork))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.KeyCannotFetchRates, body.Error)
	assert.Equal(t, "networkError", body.Kind)
	assert.NotContains(t, body.Message, "invalid_access_key")

	rec = httptest.NewRecorder()
	renderError(rec, req, errors.New("secret detail"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}
