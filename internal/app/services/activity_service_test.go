package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// fakeActivityStore is an in-memory append-only ActivityStore.
type fakeActivityStore struct {
	mu      sync.Mutex
	entries []models.Activity
	nextID  int64
	readErr error
}

func (f *fakeActivityStore) Create(ctx context.Context, activity *models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *activity
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.entries = append(f.entries, stored)
	return nil
}

func (f *fakeActivityStore) GetRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]models.Activity, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func TestActivityService_RecordAndFetch(t *testing.T) {
	store := &fakeActivityStore{}
	svc := services.NewActivityService(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, models.ActivityCreated, "Estudiante Juan Pérez agregado al sistema"))
	require.NoError(t, svc.Record(ctx, models.ActivityUpdated, "Estudiante Juan Pérez actualizado"))
	require.NoError(t, svc.Record(ctx, models.ActivityDeleted, "Estudiante Juan Pérez eliminado del sistema"))

	recent, err := svc.FetchRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first
	assert.Equal(t, models.ActivityDeleted, recent[0].Tipo)
	assert.Equal(t, models.ActivityUpdated, recent[1].Tipo)
}

func TestActivityService_RecordRejectsUnknownKind(t *testing.T) {
	svc := services.NewActivityService(&fakeActivityStore{}, zerolog.Nop())

	err := svc.Record(context.Background(), models.ActivityKind("renombrado"), "desc")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.Record(context.Background(), models.ActivityCreated, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestActivityService_FetchRecentDefaultsAndClamps(t *testing.T) {
	store := &fakeActivityStore{}
	svc := services.NewActivityService(store, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		require.NoError(t, svc.Record(ctx, models.ActivityCreated, "Estudiante agregado"))
	}

	byDefault, err := svc.FetchRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, byDefault, 10)

	clamped, err := svc.FetchRecent(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, clamped, 100)
}

func TestActivityService_FetchRecentDegradesToEmpty(t *testing.T) {
	store := &fakeActivityStore{readErr: errors.New("relation does not exist")}
	svc := services.NewActivityService(store, zerolog.Nop())

	recent, err := svc.FetchRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.NotNil(t, recent)
}
