package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edusync/edusync/internal/app/models"
	appRepos "github.com/edusync/edusync/internal/app/repositories"
	"github.com/edusync/edusync/internal/pkg/apperrors"
	"github.com/edusync/edusync/internal/pkg/auth"
)

const defaultAdminEmail = "admin@edusync.app"

// CreateDefaultData creates the default administrator account if it does not
// exist yet. Errors are returned but callers treat them as non-fatal.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err == nil {
		lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin account already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "edusync123"
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		FullName: "Administrador",
	}
	if _, err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account ready")
	return nil
}
