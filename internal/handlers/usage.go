package handlers

import (
	"net/http"

	"currency-converter/internal/models"
	"currency-converter/internal/services"

	"github.com/go-chi/render"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type UsageHandler struct {
	service *services.UsageService
	logger  log.Logger
}

func NewUsageHandler(service *services.UsageService, logger log.Logger) *UsageHandler {
	return &UsageHandler{service: service, logger: logger}
}

type popularResponse struct {
	Pairs []models.PopularPair `json:"pairs"`
}

func (h *UsageHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.Popular(r.Context())
	if err != nil {
		level.Error(h.logger).Log("msg", "popular pairs", "err", err)
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, popularResponse{Pairs: pairs})
}
