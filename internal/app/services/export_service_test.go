package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

func TestExportService_StudentDocument(t *testing.T) {
	store := newFakeStudentStore()
	svc, err := services.NewExportService(store, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	student := newStudent("Juan", "Pérez", "8-123-456")
	student.Universidad = "Universidad Tecnológica"
	student.Horario = "Diurno"
	colegio := "Instituto Nacional"
	student.ColegioDeOrigen = &colegio
	_, err = store.Create(ctx, student)
	require.NoError(t, err)

	doc, err := svc.StudentDocument(ctx, "8-123-456")
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "<title>Ficha de estudiante - Juan Pérez</title>")
	assert.Contains(t, html, "8-123-456")
	assert.Contains(t, html, "Universidad Tecnológica")
	assert.Contains(t, html, "Instituto Nacional")
	assert.Contains(t, html, "EduSync")
}

func TestExportService_StudentDocumentOmitsEmptyOptionalRows(t *testing.T) {
	store := newFakeStudentStore()
	svc, err := services.NewExportService(store, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Create(ctx, newStudent("Ana", "García", "8-9"))
	require.NoError(t, err)

	doc, err := svc.StudentDocument(ctx, "8-9")
	require.NoError(t, err)

	html := string(doc)
	assert.NotContains(t, html, "Colegio de origen")
	assert.NotContains(t, html, "Materia favorita")
}

func TestExportService_StudentDocumentEscapesMarkup(t *testing.T) {
	store := newFakeStudentStore()
	svc, err := services.NewExportService(store, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	student := newStudent("<script>alert(1)</script>", "Pérez", "8-7")
	_, err = store.Create(ctx, student)
	require.NoError(t, err)

	doc, err := svc.StudentDocument(ctx, "8-7")
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(doc), "<script>alert(1)</script>"))
}

func TestExportService_StudentDocumentNotFound(t *testing.T) {
	svc, err := services.NewExportService(newFakeStudentStore(), zerolog.Nop())
	require.NoError(t, err)

	_, err = svc.StudentDocument(context.Background(), "no-such")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
