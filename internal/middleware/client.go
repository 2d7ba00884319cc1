package middleware

import (
	"context"
	"net/http"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

type contextKey string

const (
	ClientIDKey    contextKey = "client_id"
	PreferencesKey contextKey = "preferences"

	ClientIDHeader = "X-Client-ID"
)

// ClientID reads X-Client-ID or issues a new one, and echoes it back so the
// client can keep using the same session.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ClientIDHeader)
		if id == "" {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			http.Error(w, "Invalid X-Client-ID", http.StatusBadRequest)
			return
		}

		w.Header().Set(ClientIDHeader, id)
		ctx := context.WithValue(r.Context(), ClientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ClientIDKey).(string)
	return id, ok
}

type PreferencesLoader interface {
	Get(ctx context.Context, clientID string) (models.Preferences, error)
}

// Preferences loads the client's preferences into the request context. It
// must run after ClientID.
func Preferences(loader PreferencesLoader, logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, _ := GetClientIDFromContext(ctx)

			prefs, err := loader.Get(ctx, id)
			if err != nil {
				level.Error(logger).Log("msg", "load preferences", "client", id, "err", err)
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}

			ctx = context.WithValue(ctx, PreferencesKey, prefs)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPreferencesFromContext(ctx context.Context) (models.Preferences, bool) {
	prefs, ok := ctx.Value(PreferencesKey).(models.Preferences)
	return prefs, ok
}

// Language is the UI language for the request, "en" when unknown.
func Language(ctx context.Context) string {
	if prefs, ok := GetPreferencesFromContext(ctx); ok && prefs.Language != "" {
		return prefs.Language
	}
	return "en"
}
