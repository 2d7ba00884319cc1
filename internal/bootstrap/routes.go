package bootstrap

import (
	"net/http"

	"currency-converter/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(app *BootstrapBundle, gatherer prometheus.Gatherer, logger log.Logger) chi.Router {
	h := app.Handlers
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log.With(logger, "component", "access")))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.ClientIDHeader},
		ExposedHeaders: []string{middleware.ClientIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/currencies", h.ConverterHandler.Currencies)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ClientID)
		r.Use(middleware.Preferences(app.Preferences, logger))

		r.Get("/rates", h.ConverterHandler.GetRates)
		r.Post("/convert", h.ConverterHandler.Convert)
		r.Get("/session", h.ConverterHandler.GetSession)
		r.Post("/session/dismiss", h.ConverterHandler.Dismiss)

		r.Get("/preferences", h.PreferencesHandler.GetPreferences)
		r.Put("/preferences", h.PreferencesHandler.UpdatePreferences)
	})

	r.Get("/popular", h.UsageHandler.GetPopular)

	return r
}
