package services

import (
	"context"
	"fmt"

	"currency-converter/internal/i18n"
	"currency-converter/internal/models"
	"currency-converter/internal/repositories"
)

type PreferencesService struct {
	repo            repositories.PreferencesRepository
	defaultLanguage string
}

func NewPreferencesService(repo repositories.PreferencesRepository, defaultLanguage string) *PreferencesService {
	if !i18n.Supported(defaultLanguage) {
		defaultLanguage = "en"
	}
	return &PreferencesService{repo: repo, defaultLanguage: defaultLanguage}
}

// Get returns the client's preferences with defaults filled in.
func (s *PreferencesService) Get(ctx context.Context, clientID string) (models.Preferences, error) {
	prefs, err := s.repo.Get(ctx, clientID)
	if err != nil {
		return models.Preferences{}, err
	}
	if !i18n.Supported(prefs.Language) {
		prefs.Language = s.defaultLanguage
	}
	return prefs, nil
}

func (s *PreferencesService) Update(ctx context.Context, clientID string, prefs models.Preferences) error {
	if !i18n.Supported(prefs.Language) {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedLanguage, prefs.Language)
	}
	return s.repo.Save(ctx, clientID, prefs)
}
