package models

import (
	"time"
)

// ActivityKind defines the audit event type
type ActivityKind string

// Activity kinds, stored verbatim in the 'activities' table
const (
	ActivityCreated ActivityKind = "creado"
	ActivityUpdated ActivityKind = "actualizado"
	ActivityDeleted ActivityKind = "eliminado"
)

// Valid reports whether the kind is one of the known audit event types.
func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityCreated, ActivityUpdated, ActivityDeleted:
		return true
	}
	return false
}

// Activity defines one audit event based on the 'activities' table.
// Entries are append-only; the client never mutates or deletes them.
type Activity struct {
	ID          int64        `json:"id" db:"id" example:"1"`
	Tipo        ActivityKind `json:"tipo" db:"tipo" example:"creado"`
	Descripcion string       `json:"descripcion" db:"descripcion" example:"Estudiante Juan Pérez agregado al sistema"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
