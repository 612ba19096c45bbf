package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// pngBytes is a minimal payload carrying the PNG magic number.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

// fakeProfileUserStore covers the account side of the dual write.
type fakeProfileUserStore struct {
	mu   sync.Mutex
	user models.User
}

func (f *fakeProfileUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.user.ID {
		return nil, apperrors.ErrUserNotFound
	}
	out := f.user
	return &out, nil
}

func (f *fakeProfileUserStore) UpdateProfileFields(ctx context.Context, userID int64, fullName string, phone, bio *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if userID != f.user.ID {
		return apperrors.ErrUserNotFound
	}
	f.user.FullName = fullName
	f.user.Phone = phone
	f.user.Bio = bio
	f.user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProfileUserStore) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if userID != f.user.ID {
		return apperrors.ErrUserNotFound
	}
	f.user.AvatarURL = avatarURL
	return nil
}

// fakeProfileStore covers the profiles table side of the dual write.
type fakeProfileStore struct {
	mu        sync.Mutex
	profiles  map[int64]models.Profile
	upsertErr error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]models.Profile{}}
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := p
	return &out, nil
}

func (f *fakeProfileStore) Upsert(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	stored := *profile
	stored.UpdatedAt = time.Now()
	f.profiles[profile.UserID] = stored
	return nil
}

func (f *fakeProfileStore) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	p.AvatarURL = avatarURL
	f.profiles[userID] = p
	return nil
}

// fakeAvatarStorage records saved blobs without touching disk.
type fakeAvatarStorage struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newFakeAvatarStorage() *fakeAvatarStorage {
	return &fakeAvatarStorage{saved: map[string][]byte{}}
}

func (f *fakeAvatarStorage) SaveBytes(data []byte, subPath, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := "uploads/" + subPath + "/" + filename
	f.saved[path] = data
	return path, nil
}

func newProfileFixture() (*fakeProfileUserStore, *fakeProfileStore, *fakeAvatarStorage, services.ProfileService) {
	users := &fakeProfileUserStore{user: models.User{
		ID:        1,
		Email:     "ana.garcia@example.com",
		UpdatedAt: time.Now().Add(-time.Hour),
	}}
	profiles := newFakeProfileStore()
	storage := newFakeAvatarStorage()
	svc := services.NewProfileService(users, profiles, storage, zerolog.Nop())
	return users, profiles, storage, svc
}

func TestProfileService_GetProfileDefaultsDisplayName(t *testing.T) {
	_, _, _, svc := newProfileFixture()

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultDisplayName, resp.FullName)
	assert.Equal(t, "ana.garcia@example.com", resp.Email)
}

func TestProfileService_GetProfileMergesBothStores(t *testing.T) {
	users, profiles, _, svc := newProfileFixture()

	// Account carries the name; the profiles row fills phone and bio
	users.user.FullName = "Ana García"
	phone := "+507 6000-0000"
	bio := "Estudiante de ingeniería"
	profiles.profiles[1] = models.Profile{
		UserID:    1,
		FullName:  "Nombre Viejo",
		Phone:     &phone,
		Bio:       &bio,
		UpdatedAt: time.Now(),
	}

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)

	// Account value wins, profiles row fills the gaps
	assert.Equal(t, "Ana García", resp.FullName)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, phone, *resp.Phone)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, bio, *resp.Bio)
}

func TestProfileService_UpdateProfileWritesBothStores(t *testing.T) {
	users, profiles, _, svc := newProfileFixture()

	phone := "+507 6000-0000"
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		FullName: "  Ana García  ",
		Phone:    &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", resp.FullName)

	assert.Equal(t, "Ana García", users.user.FullName)
	stored, ok := profiles.profiles[1]
	require.True(t, ok)
	assert.Equal(t, "Ana García", stored.FullName)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, phone, *stored.Phone)
}

func TestProfileService_UpdateProfileSurfacesSecondWriteFailure(t *testing.T) {
	users, profiles, _, svc := newProfileFixture()
	profiles.upsertErr = errors.New("profiles table unavailable")

	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{FullName: "Ana García"})
	require.Error(t, err)

	// The first write is kept even though the second one failed
	assert.Equal(t, "Ana García", users.user.FullName)
}

func TestProfileService_UpdateProfileRequiresName(t *testing.T) {
	_, _, _, svc := newProfileFixture()

	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{FullName: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestProfileService_UploadAvatar(t *testing.T) {
	users, profiles, storage, svc := newProfileFixture()
	profiles.profiles[1] = models.Profile{UserID: 1}

	encoded := base64.StdEncoding.EncodeToString(pngBytes)
	url, err := svc.UploadAvatar(context.Background(), 1, encoded)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "uploads/avatars/1-"), "unexpected path %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "unexpected extension %q", url)

	require.NotNil(t, users.user.AvatarURL)
	assert.Equal(t, url, *users.user.AvatarURL)
	require.NotNil(t, profiles.profiles[1].AvatarURL)
	assert.Equal(t, url, *profiles.profiles[1].AvatarURL)
	assert.Contains(t, storage.saved, url)
}

func TestProfileService_UploadAvatarAcceptsDataURL(t *testing.T) {
	_, _, _, svc := newProfileFixture()

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	url, err := svc.UploadAvatar(context.Background(), 1, encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestProfileService_UploadAvatarLeavesPreviousBlob(t *testing.T) {
	users, _, storage, svc := newProfileFixture()
	old := "uploads/avatars/1-old.png"
	storage.saved[old] = pngBytes
	users.user.AvatarURL = &old

	encoded := base64.StdEncoding.EncodeToString(pngBytes)
	url, err := svc.UploadAvatar(context.Background(), 1, encoded)
	require.NoError(t, err)

	// Only the references move; the replaced blob stays in storage
	assert.Equal(t, url, *users.user.AvatarURL)
	assert.Contains(t, storage.saved, old)
	assert.Contains(t, storage.saved, url)
}

func TestProfileService_UploadAvatarRejectsBadPayloads(t *testing.T) {
	_, _, _, svc := newProfileFixture()
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, 1, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UploadAvatar(ctx, 1, "!!!not-base64!!!")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Valid base64 but not an image
	_, err = svc.UploadAvatar(ctx, 1, base64.StdEncoding.EncodeToString([]byte("plain text, not an image")))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestProfileService_RemoveAvatar(t *testing.T) {
	users, profiles, storage, svc := newProfileFixture()
	url := "uploads/avatars/1-old.png"
	storage.saved[url] = pngBytes
	users.user.AvatarURL = &url
	profiles.profiles[1] = models.Profile{UserID: 1, AvatarURL: &url}

	require.NoError(t, svc.RemoveAvatar(context.Background(), 1))

	// Both references are cleared but the blob itself is not touched
	assert.Nil(t, users.user.AvatarURL)
	assert.Nil(t, profiles.profiles[1].AvatarURL)
	assert.Contains(t, storage.saved, url)
}
