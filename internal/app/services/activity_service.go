package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

// ActivityStore is the persistence surface the activity service needs
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

// ActivityService defines the interface for the activity log
type ActivityService interface {
	Record(ctx context.Context, tipo models.ActivityKind, descripcion string) error
	FetchRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

// activityServiceImpl implements ActivityService
type activityServiceImpl struct {
	repo   ActivityStore
	logger zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo ActivityStore, logger zerolog.Logger) ActivityService {
	return &activityServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Record appends an entry to the activity log
func (s *activityServiceImpl) Record(ctx context.Context, tipo models.ActivityKind, descripcion string) error {
	if !tipo.Valid() {
		return apperrors.NewValidationError("tipo", "unknown activity kind")
	}
	if descripcion == "" {
		return apperrors.NewValidationError("descripcion", "description is required")
	}

	return s.repo.Create(ctx, &models.Activity{
		Tipo:        tipo,
		Descripcion: descripcion,
	})
}

// FetchRecent returns the newest entries first. The log is informational,
// so a read failure degrades to an empty list instead of an error.
func (s *activityServiceImpl) FetchRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	activities, err := s.repo.GetRecent(ctx, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch recent activities, returning empty list")
		return []models.Activity{}, nil
	}

	return activities, nil
}
