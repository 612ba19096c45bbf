package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// Records are keyed by the national ID (cedula); the numeric id is
// server-assigned and only used internally.
type Student struct {
	ID                  int64     `json:"id" db:"id" example:"1"`                                                // Server-assigned identifier
	Nombre              string    `json:"nombre" db:"nombre" example:"Juan"`                                     // First name (required)
	Apellido            string    `json:"apellido" db:"apellido" example:"Pérez"`                                // Last name (required)
	Cedula              string    `json:"cedula" db:"cedula" example:"8-123-456"`                                // National ID, unique (required)
	Edad                int       `json:"edad" db:"edad" example:"20"`                                           // Age
	FechaDeNacimiento   string    `json:"fecha_de_nacimiento" db:"fecha_de_nacimiento" example:"2004-05-17"`     // Birth date (YYYY-MM-DD)
	Genero              string    `json:"genero" db:"genero" example:"Masculino"`                                // Gender
	HerramientaTecnica  string    `json:"herramienta_tecnica" db:"herramienta_tecnica" example:"Python"`         // Preferred technical tool
	PaisDeOrigen        string    `json:"pais_de_origen" db:"pais_de_origen" example:"Panamá"`                   // Country of origin
	ColegioDeOrigen     *string   `json:"colegio_de_origen,omitempty" db:"colegio_de_origen"`                    // School of origin (nullable)
	CodigoDeGrupo       string    `json:"codigo_de_grupo" db:"codigo_de_grupo" example:"G-2024-01"`              // Academic group code
	Universidad         string    `json:"universidad" db:"universidad" example:"Universidad Tecnológica"`        // University
	Facultad            string    `json:"facultad" db:"facultad" example:"Ingeniería"`                           // Faculty
	MateriaFavorita     *string   `json:"materia_favorita,omitempty" db:"materia_favorita"`                      // Favorite subject (nullable)
	Horario             string    `json:"horario" db:"horario" example:"Diurno"`                                 // Class schedule
	AnioCarrera         string    `json:"anio_carrera" db:"anio_carrera" example:"2"`                            // Class year
	CreatedAt           time.Time `json:"created_at" db:"created_at" example:"2024-01-01T10:00:00Z"`             // Record creation timestamp
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at" example:"2024-01-02T15:30:00Z"`             // Last update timestamp
}

// StudentPatch carries a partial field set for an update. Nil fields are
// left untouched; a non-nil Cedula changes the record's key itself.
type StudentPatch struct {
	Nombre             *string `json:"nombre,omitempty"`
	Apellido           *string `json:"apellido,omitempty"`
	Cedula             *string `json:"cedula,omitempty"`
	Edad               *int    `json:"edad,omitempty"`
	FechaDeNacimiento  *string `json:"fecha_de_nacimiento,omitempty"`
	Genero             *string `json:"genero,omitempty"`
	HerramientaTecnica *string `json:"herramienta_tecnica,omitempty"`
	PaisDeOrigen       *string `json:"pais_de_origen,omitempty"`
	ColegioDeOrigen    *string `json:"colegio_de_origen,omitempty"`
	CodigoDeGrupo      *string `json:"codigo_de_grupo,omitempty"`
	Universidad        *string `json:"universidad,omitempty"`
	Facultad           *string `json:"facultad,omitempty"`
	MateriaFavorita    *string `json:"materia_favorita,omitempty"`
	Horario            *string `json:"horario,omitempty"`
	AnioCarrera        *string `json:"anio_carrera,omitempty"`
}

// IsEmpty reports whether the patch carries no changes at all.
func (p *StudentPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Apellido == nil && p.Cedula == nil && p.Edad == nil &&
		p.FechaDeNacimiento == nil && p.Genero == nil && p.HerramientaTecnica == nil &&
		p.PaisDeOrigen == nil && p.ColegioDeOrigen == nil && p.CodigoDeGrupo == nil &&
		p.Universidad == nil && p.Facultad == nil && p.MateriaFavorita == nil &&
		p.Horario == nil && p.AnioCarrera == nil
}
