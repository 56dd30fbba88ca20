package services

import (
	"go.uber.org/zap"

	"esulat/pkg/errors"
	"esulat/pkg/models"
	"esulat/pkg/repository"
)

// SettingsView is the client-facing settings snapshot.
type SettingsView struct {
	HideWelcome bool            `json:"hideWelcome"`
	Language    models.Language `json:"language"`
}

// Settings handles the welcome flag and UI language selection.
type Settings struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettings creates a new settings service.
func NewSettings(repo *repository.Repository, logger *zap.Logger) *Settings {
	return &Settings{repo: repo, logger: logger}
}

// Get returns the current settings.
func (s *Settings) Get() SettingsView {
	return SettingsView{
		HideWelcome: s.repo.HideWelcome(),
		Language:    s.repo.Language(),
	}
}

// SetHideWelcome persists the welcome screen suppression flag.
func (s *Settings) SetHideWelcome(hide bool) error {
	if err := s.repo.SetHideWelcome(hide); err != nil {
		s.logger.Error("failed to persist welcome flag", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "SETTINGS_WRITE_FAILED", "failed to save settings")
	}
	return nil
}

// SetLanguage persists the UI language after validating the token.
func (s *Settings) SetLanguage(lang models.Language) error {
	if !lang.Valid() {
		return errors.ErrInvalidLanguage.WithContext("language", string(lang))
	}
	if err := s.repo.SetLanguage(lang); err != nil {
		s.logger.Error("failed to persist language", zap.Error(err))
		return errors.Wrap(err, errors.ErrTypeStorage, "SETTINGS_WRITE_FAILED", "failed to save settings")
	}
	return nil
}
