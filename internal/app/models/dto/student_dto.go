package dto

import "github.com/edusync/edusync/internal/app/models"

// CreateStudentRequest represents data for registering a new student.
// Field names follow the mobile client payloads.
type CreateStudentRequest struct {
	Nombre             string  `json:"nombre" binding:"required"`
	Apellido           string  `json:"apellido" binding:"required"`
	Cedula             string  `json:"cedula" binding:"required"`
	Edad               int     `json:"edad" binding:"required,gt=0"`
	FechaDeNacimiento  string  `json:"fecha_de_nacimiento" binding:"required"`
	Genero             string  `json:"genero" binding:"required"`
	HerramientaTecnica string  `json:"herramienta_tecnica" binding:"required"`
	PaisDeOrigen       string  `json:"pais_de_origen" binding:"required"`
	ColegioDeOrigen    *string `json:"colegio_de_origen,omitempty"`
	CodigoDeGrupo      string  `json:"codigo_de_grupo" binding:"required"`
	Universidad        string  `json:"universidad" binding:"required"`
	Facultad           string  `json:"facultad" binding:"required"`
	MateriaFavorita    *string `json:"materia_favorita,omitempty"`
	Horario            string  `json:"horario" binding:"required"`
	AnioCarrera        string  `json:"anio_carrera" binding:"required"`
}

// ToModel converts the request into a Student model
func (r *CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		Nombre:             r.Nombre,
		Apellido:           r.Apellido,
		Cedula:             r.Cedula,
		Edad:               r.Edad,
		FechaDeNacimiento:  r.FechaDeNacimiento,
		Genero:             r.Genero,
		HerramientaTecnica: r.HerramientaTecnica,
		PaisDeOrigen:       r.PaisDeOrigen,
		ColegioDeOrigen:    r.ColegioDeOrigen,
		CodigoDeGrupo:      r.CodigoDeGrupo,
		Universidad:        r.Universidad,
		Facultad:           r.Facultad,
		MateriaFavorita:    r.MateriaFavorita,
		Horario:            r.Horario,
		AnioCarrera:        r.AnioCarrera,
	}
}

// UpdateStudentRequest represents a partial student update. Absent fields
// keep their stored values.
type UpdateStudentRequest struct {
	Nombre             *string `json:"nombre,omitempty"`
	Apellido           *string `json:"apellido,omitempty"`
	Cedula             *string `json:"cedula,omitempty"`
	Edad               *int    `json:"edad,omitempty" binding:"omitempty,gt=0"`
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

// ToPatch converts the request into a StudentPatch
func (r *UpdateStudentRequest) ToPatch() *models.StudentPatch {
	return &models.StudentPatch{
		Nombre:             r.Nombre,
		Apellido:           r.Apellido,
		Cedula:             r.Cedula,
		Edad:               r.Edad,
		FechaDeNacimiento:  r.FechaDeNacimiento,
		Genero:             r.Genero,
		HerramientaTecnica: r.HerramientaTecnica,
		PaisDeOrigen:       r.PaisDeOrigen,
		ColegioDeOrigen:    r.ColegioDeOrigen,
		CodigoDeGrupo:      r.CodigoDeGrupo,
		Universidad:        r.Universidad,
		Facultad:           r.Facultad,
		MateriaFavorita:    r.MateriaFavorita,
		Horario:            r.Horario,
		AnioCarrera:        r.AnioCarrera,
	}
}

// StudentListResponse represents a list of students
type StudentListResponse struct {
	Students []models.Student `json:"students"`
	Total    int              `json:"total"`
}
