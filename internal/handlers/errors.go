package handlers

import (
	"errors"
	"net/http"

	"currency-converter/internal/i18n"
	"currency-converter/internal/middleware"
	"currency-converter/internal/models"

	"github.com/go-chi/render"
)

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRateUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrFetchSuperseded):
		return http.StatusConflict
	case errors.Is(err, models.ErrStatsDisabled):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidURL),
		errors.Is(err, models.ErrNetwork),
		errors.Is(err, models.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes a domain error with its message in the request language.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: http.StatusText(status), Message: err.Error()}

	switch status {
	case http.StatusBadGateway, http.StatusUnprocessableEntity, http.StatusConflict:
		resp.Error = models.ErrorKey(err)
		resp.Kind = models.ErrorKind(err)
		resp.Message = i18n.Message(middleware.Language(r.Context()), resp.Error)
	case http.StatusBadRequest:
		if errors.Is(err, models.ErrInvalidAmount) {
			resp.Error = models.KeyInvalidAmount
			resp.Kind = models.ErrorKind(err)
			resp.Message = i18n.Message(middleware.Language(r.Context()), resp.Error)
		}
	case http.StatusInternalServerError:
		resp.Message = "internal error"
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: http.StatusText(http.StatusBadRequest), Message: msg})
}
