package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/apperrors"
	"github.com/edusync/edusync/internal/pkg/logger"
)

// ProfileRepository handles the profiles table, a second copy of the
// account's display fields kept for the mobile clients
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUserID retrieves the profile row for a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	sql, args, err := r.sb.Select("user_id", "full_name", "phone", "bio", "avatar_url", "updated_at").
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	var p models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.UserID, &p.FullName, &p.Phone, &p.Bio, &p.AvatarURL, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &p, nil
}

// Upsert writes the profile row, creating it on first use
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("user_id", "full_name", "phone", "bio", "avatar_url", "updated_at").
		Values(profile.UserID, profile.FullName, profile.Phone, profile.Bio, profile.AvatarURL, time.Now()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			bio = EXCLUDED.bio,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert profile SQL")
		return fmt.Errorf("failed to build upsert profile query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error executing upsert profile query")
		return fmt.Errorf("error writing profile: %w", err)
	}

	return nil
}

// UpdateAvatarURL sets or clears the profile copy of the avatar
func (r *ProfileRepository) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error {
	sql, args, err := r.sb.Update("profiles").
		Set("avatar_url", avatarURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile avatar SQL")
		return fmt.Errorf("failed to build update profile avatar query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update profile avatar query")
		return fmt.Errorf("error updating profile avatar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
