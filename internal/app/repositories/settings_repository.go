package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/logger"
)

// SettingsRepository persists per-account application settings as a
// single JSON document
type SettingsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the stored settings, or the defaults when the account has
// never saved any
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (models.Settings, error) {
	sql, args, err := r.sb.Select("settings").
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get settings SQL")
		return models.DefaultSettings(), fmt.Errorf("failed to build get settings query: %w", err)
	}

	var raw []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning settings row")
		return models.DefaultSettings(), fmt.Errorf("error retrieving settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		// A corrupt document falls back to the defaults
		logger.Warn().Err(err).Int64("userID", userID).Msg("Stored settings are not valid JSON, using defaults")
		return models.DefaultSettings(), nil
	}

	return settings, nil
}

// Save writes the whole settings document
func (r *SettingsRepository) Save(ctx context.Context, userID int64, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	sql, args, err := r.sb.Insert("user_settings").
		Columns("user_id", "settings", "updated_at").
		Values(userID, raw, time.Now()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			settings = EXCLUDED.settings,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building save settings SQL")
		return fmt.Errorf("failed to build save settings query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing save settings query")
		return fmt.Errorf("error saving settings: %w", err)
	}

	return nil
}
