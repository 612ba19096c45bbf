package dto

import (
	"time"

	"github.com/edusync/edusync/internal/app/models"
)

// ActivityResponse represents a single activity log entry
type ActivityResponse struct {
	ID          int64     `json:"id"`
	Tipo        string    `json:"tipo" example:"creado"`
	Descripcion string    `json:"descripcion" example:"Estudiante Juan Pérez agregado al sistema"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityListResponse represents recent activity entries, newest first
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// ToActivityResponse converts an Activity model into its response form
func ToActivityResponse(a *models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Tipo:        string(a.Tipo),
		Descripcion: a.Descripcion,
		CreatedAt:   a.CreatedAt,
	}
}

// ToActivityListResponse converts a slice of activities
func ToActivityListResponse(activities []models.Activity) ActivityListResponse {
	out := ActivityListResponse{Activities: make([]ActivityResponse, 0, len(activities))}
	for i := range activities {
		out.Activities = append(out.Activities, ToActivityResponse(&activities[i]))
	}
	return out
}
