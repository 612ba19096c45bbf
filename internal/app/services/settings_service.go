package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
)

// SettingsStore is the persistence surface for per-account settings
type SettingsStore interface {
	Get(ctx context.Context, userID int64) (models.Settings, error)
	Save(ctx context.Context, userID int64, settings models.Settings) error
}

// SettingsService defines the interface for application settings
type SettingsService interface {
	Get(ctx context.Context, userID int64) (models.Settings, error)
	Update(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (models.Settings, error)
	Reset(ctx context.Context, userID int64) (models.Settings, error)
}

// settingsServiceImpl implements SettingsService
type settingsServiceImpl struct {
	repo   SettingsStore
	logger zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo SettingsStore, logger zerolog.Logger) SettingsService {
	return &settingsServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the account settings, falling back to the defaults
func (s *settingsServiceImpl) Get(ctx context.Context, userID int64) (models.Settings, error) {
	return s.repo.Get(ctx, userID)
}

// Update merges the request onto the stored settings and writes the
// whole document back
func (s *settingsServiceImpl) Update(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (models.Settings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		return models.DefaultSettings(), err
	}

	req.ApplyTo(&settings)

	if err := s.repo.Save(ctx, userID, settings); err != nil {
		return models.DefaultSettings(), err
	}

	return settings, nil
}

// Reset restores the default settings
func (s *settingsServiceImpl) Reset(ctx context.Context, userID int64) (models.Settings, error) {
	settings := models.DefaultSettings()
	if err := s.repo.Save(ctx, userID, settings); err != nil {
		return settings, err
	}
	s.logger.Info().Int64("userID", userID).Msg("Settings reset to defaults")
	return settings, nil
}
