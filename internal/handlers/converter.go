package handlers

import (
	"net/http"

	"currency-converter/internal/i18n"
	"currency-converter/internal/middleware"
	"currency-converter/internal/models"
	"currency-converter/internal/services"

	"github.com/go-chi/render"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
)

type ConverterHandler struct {
	sessions *services.SessionRegistry
	validate *validator.Validate
	logger   log.Logger
}

func NewConverterHandler(sessions *services.SessionRegistry, validate *validator.Validate, logger log.Logger) *ConverterHandler {
	return &ConverterHandler{sessions: sessions, validate: validate, logger: logger}
}

// The amount is kept as text so that bad input is reported by the session.
type convertRequest struct {
	Amount string `json:"amount"`
	From   string `json:"from" validate:"required,len=3,alpha,uppercase"`
	To     string `json:"to" validate:"required,len=3,alpha,uppercase"`
}

type catalogResponse struct {
	Currencies  []models.Currency `json:"currencies"`
	All         []models.Currency `json:"all"`
	DefaultFrom string            `json:"default_from"`
	DefaultTo   string            `json:"default_to"`
	Languages   []i18n.Language   `json:"languages"`
}

func (h *ConverterHandler) session(r *http.Request) *services.Session {
	id, _ := middleware.GetClientIDFromContext(r.Context())
	return h.sessions.Get(id)
}

func (h *ConverterHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	table, err := h.session(r).Refresh(r.Context())
	if err != nil {
		level.Warn(h.logger).Log("msg", "refresh rates", "err", err)
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

func (h *ConverterHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderBadRequest(w, r, "invalid JSON")
		return
	}
	req.From = models.NormalizeCode(req.From)
	req.To = models.NormalizeCode(req.To)
	if err := h.validate.Struct(req); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	s := h.session(r)
	if _, err := s.Convert(r.Context(), req.Amount, req.From, req.To); err != nil {
		level.Debug(h.logger).Log("msg", "convert", "client", s.ID(), "err", err)
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, s.Snapshot(middleware.Language(r.Context())))
}

func (h *ConverterHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.session(r).Snapshot(middleware.Language(r.Context())))
}

func (h *ConverterHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.Dismiss(r.Context()); err != nil {
		level.Error(h.logger).Log("msg", "dismiss", "client", s.ID(), "err", err)
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, s.Snapshot(middleware.Language(r.Context())))
}

func (h *ConverterHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, catalogResponse{
		Currencies:  models.QuickPick,
		All:         models.AllCurrencies,
		DefaultFrom: models.DefaultFrom,
		DefaultTo:   models.DefaultTo,
		Languages:   i18n.Languages,
	})
}
