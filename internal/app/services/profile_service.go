package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// DefaultDisplayName is used when neither store carries a name
const DefaultDisplayName = "Usuario"

const avatarSubPath = "avatars"

// maxAvatarBytes caps decoded avatar size at 5 MiB
const maxAvatarBytes = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProfileUserStore is the slice of account persistence the profile service needs
type ProfileUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfileFields(ctx context.Context, userID int64, fullName string, phone, bio *string) error
	UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error
}

// ProfileStore is the profiles table persistence surface
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error
}

// AvatarStorage is the blob storage surface for avatar images
type AvatarStorage interface {
	SaveBytes(data []byte, subPath, filename string) (string, error)
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID int64, base64Data string) (string, error)
	RemoveAvatar(ctx context.Context, userID int64) error
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	userRepo    ProfileUserStore
	profileRepo ProfileStore
	storage     AvatarStorage
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo ProfileUserStore, profileRepo ProfileStore, storage AvatarStorage, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// GetProfile returns the merged profile view. The account record wins
// wherever both stores carry a value; the profiles row fills the gaps.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		UpdatedAt: user.UpdatedAt,
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		if resp.FullName == "" {
			resp.FullName = profile.FullName
		}
		if resp.Phone == nil {
			resp.Phone = profile.Phone
		}
		if resp.Bio == nil {
			resp.Bio = profile.Bio
		}
		if resp.AvatarURL == nil {
			resp.AvatarURL = profile.AvatarURL
		}
		if profile.UpdatedAt.After(resp.UpdatedAt) {
			resp.UpdatedAt = profile.UpdatedAt
		}
	}

	if resp.FullName == "" {
		resp.FullName = DefaultDisplayName
	}

	return resp, nil
}

// UpdateProfile writes the same values to both stores. The account record
// is written first; if the profiles write fails the first write is kept
// and the error is surfaced.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "full name is required")
	}

	if err := s.userRepo.UpdateProfileFields(ctx, userID, fullName, req.Phone, req.Bio); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, &models.Profile{
		UserID:    userID,
		FullName:  fullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: user.AvatarURL,
	}); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Profile table write failed after account write")
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// UploadAvatar decodes a base64 image, stores it and points both stores at it
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, userID int64, base64Data string) (string, error) {
	data, err := decodeBase64Image(base64Data)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", apperrors.NewValidationError("data", fmt.Sprintf("unsupported image type %s", contentType))
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s%s", userID, uuid.New().String(), ext)
	avatarURL, err := s.storage.SaveBytes(data, avatarSubPath, filename)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, &avatarURL); err != nil {
		return "", err
	}
	if err := s.profileRepo.UpdateAvatarURL(ctx, userID, &avatarURL); err != nil {
		// Tolerated: the profiles row may not exist yet
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update profile avatar copy")
	}

	s.logger.Info().Int64("userID", userID).Str("avatar", avatarURL).Msg("Avatar updated")
	return avatarURL, nil
}

// RemoveAvatar clears the avatar references in both stores. Stored
// blobs are left in place, only the links go away.
func (s *profileServiceImpl) RemoveAvatar(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, nil); err != nil {
		return err
	}
	if err := s.profileRepo.UpdateAvatarURL(ctx, userID, nil); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to clear profile avatar copy")
	}

	return nil
}

// decodeBase64Image accepts both raw base64 and data URLs
func decodeBase64Image(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, apperrors.NewValidationError("data", "image data is required")
	}

	if strings.HasPrefix(input, "data:") {
		idx := strings.Index(input, ",")
		if idx < 0 {
			return nil, apperrors.NewValidationError("data", "malformed data URL")
		}
		input = input[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return nil, apperrors.NewValidationError("data", "invalid base64 payload")
	}

	if len(data) == 0 {
		return nil, apperrors.NewValidationError("data", "image data is empty")
	}
	if len(data) > maxAvatarBytes {
		return nil, apperrors.NewValidationError("data", "image exceeds the 5MB limit")
	}

	return data, nil
}
