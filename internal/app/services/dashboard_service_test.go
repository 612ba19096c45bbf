package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/services"
)

func seedStudents(t *testing.T, store *fakeStudentStore, genero string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		s := newStudent("Nombre", "Apellido", genero+"-"+string(rune('a'+i)))
		s.Genero = genero
		_, err := store.Create(context.Background(), s)
		require.NoError(t, err)
	}
}

func TestDashboardService_Summary(t *testing.T) {
	store := newFakeStudentStore()
	activities := &recordingActivityService{}
	svc := services.NewDashboardService(store, activities, zerolog.Nop())

	seedStudents(t, store, "Masculino", 2)
	seedStudents(t, store, "Femenino", 1)

	require.NoError(t, activities.Record(context.Background(), models.ActivityCreated, "Estudiante agregado"))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalStudents)
	assert.Equal(t, 2, summary.MaleCount)
	assert.Equal(t, 1, summary.FemaleCount)
	// Percentages carry one decimal place
	assert.InDelta(t, 66.7, summary.MalePercentage, 0.001)
	assert.InDelta(t, 33.3, summary.FemalePercentage, 0.001)
	assert.Len(t, summary.RecentActivities, 1)
}

func TestDashboardService_SummaryFoldsGenderSpellings(t *testing.T) {
	store := newFakeStudentStore()
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())
	ctx := context.Background()

	for i, genero := range []string{"M", "masculino", "F", "fem", "Otro"} {
		s := newStudent("Nombre", "Apellido", "8-"+string(rune('a'+i)))
		s.Genero = genero
		_, err := store.Create(ctx, s)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalStudents)
	assert.Equal(t, 2, summary.MaleCount)
	assert.Equal(t, 2, summary.FemaleCount)
}

func TestDashboardService_SummaryEmptyDatabase(t *testing.T) {
	store := newFakeStudentStore()
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalStudents)
	assert.Zero(t, summary.MalePercentage)
	assert.Zero(t, summary.FemalePercentage)
}

func TestDashboardService_StatisticsCoversAllFields(t *testing.T) {
	store := newFakeStudentStore()
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		s := newStudent("Nombre", "Apellido", fmt.Sprintf("8-%d", i))
		s.Genero = "Femenino"
		s.Universidad = "Universidad Tecnológica"
		s.AnioCarrera = "2"
		s.Horario = "Diurno"
		s.HerramientaTecnica = "Python"
		_, err := store.Create(ctx, s)
		require.NoError(t, err)
	}
	s := newStudent("Nombre", "Apellido", "8-x")
	s.Genero = "Masculino"
	s.Universidad = "Universidad de Panamá"
	s.AnioCarrera = "4"
	s.Horario = "Nocturno"
	s.HerramientaTecnica = "Excel"
	_, err := store.Create(ctx, s)
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStudents)
	for _, field := range []string{"genero", "universidad", "facultad", "anio_carrera", "horario", "herramienta_tecnica"} {
		assert.Contains(t, stats.Fields, field)
	}

	universidad := stats.Fields["universidad"]
	require.Len(t, universidad, 2)
	// Largest group first, shares rounded to one decimal
	assert.Equal(t, "Universidad Tecnológica", universidad[0].Value)
	assert.Equal(t, 2, universidad[0].Count)
	assert.InDelta(t, 66.7, universidad[0].Percentage, 0.001)
	assert.Equal(t, "Universidad de Panamá", universidad[1].Value)
	assert.InDelta(t, 33.3, universidad[1].Percentage, 0.001)

	horario := stats.Fields["horario"]
	require.Len(t, horario, 2)
	assert.Equal(t, "Diurno", horario[0].Value)
	assert.InDelta(t, 66.7, horario[0].Percentage, 0.001)

	herramienta := stats.Fields["herramienta_tecnica"]
	require.Len(t, herramienta, 2)
	assert.Equal(t, "Python", herramienta[0].Value)

	anio := stats.Fields["anio_carrera"]
	require.Len(t, anio, 2)
	assert.Equal(t, "2", anio[0].Value)
	assert.Equal(t, 2, anio[0].Count)
}

func TestDashboardService_StatisticsEmptyDatabase(t *testing.T) {
	store := newFakeStudentStore()
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalStudents)
	assert.Len(t, stats.Fields, 6)
	assert.Empty(t, stats.Fields["universidad"])
}

func TestDashboardService_StatisticsSurfacesStoreError(t *testing.T) {
	store := newFakeStudentStore()
	store.failWith = errors.New("connection refused")
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())

	_, err := svc.Statistics(context.Background())
	assert.Error(t, err)
}

func TestDashboardService_SummarySurfacesStatsError(t *testing.T) {
	store := newFakeStudentStore()
	store.failWith = errors.New("connection refused")
	svc := services.NewDashboardService(store, &recordingActivityService{}, zerolog.Nop())

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
