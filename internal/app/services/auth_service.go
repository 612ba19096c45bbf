package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/pkg/apperrors"
	"github.com/edusync/edusync/internal/pkg/auth"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserStore is the account persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore is the refresh token persistence surface
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokenRepo TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and signs it in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !emailRegex.MatchString(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperrors.ErrInvalidPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.NewValidationError("confirmPassword", "passwords do not match")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, apperrors.NewValidationError("fullName", "full name is required")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &models.User{
		Email:    email,
		Password: hashed,
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", email).Msg("User registered")

	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Non-fatal, the session is still issued
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.issueSession(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Rotation: the used token is retired before a new one is issued
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to revoke used refresh token")
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Logout revokes the given refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// GetCurrentUser returns the signed-in account
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdatePassword changes the account password after checking the current one
func (s *authServiceImpl) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return apperrors.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash new password")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	// All existing sessions are cut after a password change
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password updated")
	return nil
}

func (s *authServiceImpl) issueSession(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokens,
		User:  toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) generateTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
