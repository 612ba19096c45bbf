package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/logger"
)

// ActivityRepository handles activity log database operations
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends an activity entry
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	sql, args, err := r.sb.Insert("activities").
		Columns("tipo", "descripcion", "created_at").
		Values(activity.Tipo, activity.Descripcion, time.Now()).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create activity SQL")
		return fmt.Errorf("failed to build create activity query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tipo", string(activity.Tipo)).Msg("Error executing create activity query")
		return fmt.Errorf("error creating activity: %w", err)
	}

	return nil
}

// GetRecent returns the newest entries first, up to limit
func (r *ActivityRepository) GetRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	sql, args, err := r.sb.Select("id", "tipo", "descripcion", "created_at").
		From("activities").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building recent activities SQL")
		return nil, fmt.Errorf("failed to build recent activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent activities query")
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0, limit)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Tipo, &a.Descripcion, &a.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning activity row")
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}
