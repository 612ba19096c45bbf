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
	"github.com/edusync/edusync/internal/pkg/dberrors"
	"github.com/edusync/edusync/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "password", "full_name", "phone", "bio", "avatar_url",
	"created_at", "updated_at", "last_login_at",
}

// UserRepository handles account database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.Bio, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user account
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()

	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "full_name", "phone", "bio", "avatar_url", "created_at", "updated_at").
		Values(user.Email, user.Password, user.FullName, user.Phone, user.Bio, user.AvatarURL, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	created := *user
	err = r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to register duplicate email")
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by id SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update password SQL")
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the account's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// UpdateProfileFields writes the profile fields stored on the account record
func (r *UserRepository) UpdateProfileFields(ctx context.Context, userID int64, fullName string, phone, bio *string) error {
	sql, args, err := r.sb.Update("users").
		Set("full_name", fullName).
		Set("phone", phone).
		Set("bio", bio).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update user profile SQL")
		return fmt.Errorf("failed to build update user profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update user profile query")
		return fmt.Errorf("error updating user profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateAvatarURL sets or clears the account avatar
func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error {
	sql, args, err := r.sb.Update("users").
		Set("avatar_url", avatarURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update avatar SQL")
		return fmt.Errorf("failed to build update avatar query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update avatar query")
		return fmt.Errorf("error updating avatar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
