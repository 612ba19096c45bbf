package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
)

// studentDocumentTemplate renders one student as a standalone printable page
const studentDocumentTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Ficha de estudiante - {{.Nombre}} {{.Apellido}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 2rem; color: #222; }
  h1 { font-size: 1.4rem; border-bottom: 2px solid #444; padding-bottom: .4rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  th, td { text-align: left; padding: .45rem .6rem; border-bottom: 1px solid #ddd; }
  th { width: 14rem; color: #555; font-weight: 600; }
  footer { margin-top: 2rem; font-size: .8rem; color: #888; }
</style>
</head>
<body>
<h1>Ficha de estudiante</h1>
<table>
  <tr><th>Nombre</th><td>{{.Nombre}} {{.Apellido}}</td></tr>
  <tr><th>Cédula</th><td>{{.Cedula}}</td></tr>
  <tr><th>Edad</th><td>{{.Edad}}</td></tr>
  <tr><th>Fecha de nacimiento</th><td>{{.FechaDeNacimiento}}</td></tr>
  <tr><th>Género</th><td>{{.Genero}}</td></tr>
  <tr><th>Herramienta técnica</th><td>{{.HerramientaTecnica}}</td></tr>
  <tr><th>País de origen</th><td>{{.PaisDeOrigen}}</td></tr>
  {{if .ColegioDeOrigen}}<tr><th>Colegio de origen</th><td>{{.ColegioDeOrigen}}</td></tr>{{end}}
  <tr><th>Código de grupo</th><td>{{.CodigoDeGrupo}}</td></tr>
  <tr><th>Universidad</th><td>{{.Universidad}}</td></tr>
  <tr><th>Facultad</th><td>{{.Facultad}}</td></tr>
  {{if .MateriaFavorita}}<tr><th>Materia favorita</th><td>{{.MateriaFavorita}}</td></tr>{{end}}
  <tr><th>Horario</th><td>{{.Horario}}</td></tr>
  <tr><th>Año de carrera</th><td>{{.AnioCarrera}}</td></tr>
</table>
<footer>Generado el {{.CreatedAt.Format "2006-01-02"}} · EduSync</footer>
</body>
</html>
`

// ExportService renders student records as printable documents
type ExportService interface {
	StudentDocument(ctx context.Context, cedula string) ([]byte, error)
}

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	students StudentStore
	tmpl     *template.Template
	logger   zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(students StudentStore, logger zerolog.Logger) (ExportService, error) {
	tmpl, err := template.New("student_document").Parse(studentDocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse student document template: %w", err)
	}

	return &exportServiceImpl{
		students: students,
		tmpl:     tmpl,
		logger:   logger,
	}, nil
}

// StudentDocument renders the student identified by cedula as HTML
func (s *exportServiceImpl) StudentDocument(ctx context.Context, cedula string) ([]byte, error) {
	student, err := s.students.GetByCedula(ctx, cedula)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, student); err != nil {
		s.logger.Error().Err(err).Str("cedula", cedula).Msg("Failed to render student document")
		return nil, fmt.Errorf("failed to render student document: %w", err)
	}

	return buf.Bytes(), nil
}
