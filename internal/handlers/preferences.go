package handlers

import (
	"net/http"

	"currency-converter/internal/middleware"
	"currency-converter/internal/models"
	"currency-converter/internal/services"

	"github.com/go-chi/render"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
)

type PreferencesHandler struct {
	service  *services.PreferencesService
	validate *validator.Validate
	logger   log.Logger
}

func NewPreferencesHandler(service *services.PreferencesService, validate *validator.Validate, logger log.Logger) *PreferencesHandler {
	return &PreferencesHandler{service: service, validate: validate, logger: logger}
}

type preferencesRequest struct {
	DarkMode *bool  `json:"dark_mode" validate:"required"`
	Language string `json:"language" validate:"required"`
}

func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, _ := middleware.GetPreferencesFromContext(r.Context())
	render.JSON(w, r, prefs)
}

func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderBadRequest(w, r, "invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	id, _ := middleware.GetClientIDFromContext(r.Context())
	prefs := models.Preferences{DarkMode: *req.DarkMode, Language: req.Language}
	if err := h.service.Update(r.Context(), id, prefs); err != nil {
		level.Warn(h.logger).Log("msg", "update preferences", "client", id, "err", err)
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, prefs)
}
