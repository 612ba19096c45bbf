package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// StudentStore is the persistence surface the student service needs
type StudentStore interface {
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByCedula(ctx context.Context, cedula string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, cedula string, patch *models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, cedula string) error
	SearchByName(ctx context.Context, term string) ([]models.Student, error)
	GetByFacultad(ctx context.Context, facultad string) ([]models.Student, error)
	GetByGrupo(ctx context.Context, grupo string) ([]models.Student, error)
	CountAll(ctx context.Context) (int, error)
	GetStatsByField(ctx context.Context, field string) (map[string]int, error)
}

// StudentService defines the interface for student operations
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, cedula string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, cedula string, patch *models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, cedula string) error
	Search(ctx context.Context, term string) ([]models.Student, error)
	ListByFacultad(ctx context.Context, facultad string) ([]models.Student, error)
	ListByGrupo(ctx context.Context, grupo string) ([]models.Student, error)
	StatsByGender(ctx context.Context) (map[string]int, error)
	StatsByFacultad(ctx context.Context) (map[string]int, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	repo       StudentStore
	activities ActivityService
	logger     zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(repo StudentStore, activities ActivityService, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		repo:       repo,
		activities: activities,
		logger:     logger,
	}
}

// List returns every student ordered by first name
func (s *studentServiceImpl) List(ctx context.Context) ([]models.Student, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a single student by national ID
func (s *studentServiceImpl) Get(ctx context.Context, cedula string) (*models.Student, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return nil, apperrors.NewValidationError("cedula", "cedula is required")
	}
	return s.repo.GetByCedula(ctx, cedula)
}

// Create registers a new student and records the event in the activity log
func (s *studentServiceImpl) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.notify(models.ActivityCreated,
		fmt.Sprintf("Estudiante %s %s agregado al sistema", created.Nombre, created.Apellido))

	return created, nil
}

// Update applies a partial update to the student identified by cedula
func (s *studentServiceImpl) Update(ctx context.Context, cedula string, patch *models.StudentPatch) (*models.Student, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return nil, apperrors.NewValidationError("cedula", "cedula is required")
	}
	if patch == nil || patch.IsEmpty() {
		return nil, apperrors.NewValidationError("body", "no fields to update")
	}
	if patch.Cedula != nil && strings.TrimSpace(*patch.Cedula) == "" {
		return nil, apperrors.NewValidationError("cedula", "cedula cannot be emptied")
	}

	updated, err := s.repo.Update(ctx, cedula, patch)
	if err != nil {
		return nil, err
	}

	s.notify(models.ActivityUpdated,
		fmt.Sprintf("Estudiante %s %s actualizado", updated.Nombre, updated.Apellido))

	return updated, nil
}

// Delete removes the student identified by cedula
func (s *studentServiceImpl) Delete(ctx context.Context, cedula string) error {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return apperrors.NewValidationError("cedula", "cedula is required")
	}

	// The record is fetched first so the log entry can carry the name
	student, err := s.repo.GetByCedula(ctx, cedula)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cedula); err != nil {
		return err
	}

	s.notify(models.ActivityDeleted,
		fmt.Sprintf("Estudiante %s %s eliminado del sistema", student.Nombre, student.Apellido))

	return nil
}

// Search returns students whose first or last name matches the term
func (s *studentServiceImpl) Search(ctx context.Context, term string) ([]models.Student, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.SearchByName(ctx, term)
}

// ListByFacultad returns students belonging to a faculty
func (s *studentServiceImpl) ListByFacultad(ctx context.Context, facultad string) ([]models.Student, error) {
	if strings.TrimSpace(facultad) == "" {
		return nil, apperrors.NewValidationError("facultad", "facultad is required")
	}
	return s.repo.GetByFacultad(ctx, facultad)
}

// ListByGrupo returns students belonging to a group code
func (s *studentServiceImpl) ListByGrupo(ctx context.Context, grupo string) ([]models.Student, error) {
	if strings.TrimSpace(grupo) == "" {
		return nil, apperrors.NewValidationError("grupo", "grupo is required")
	}
	return s.repo.GetByGrupo(ctx, grupo)
}

// StatsByGender returns student counts grouped by gender
func (s *studentServiceImpl) StatsByGender(ctx context.Context) (map[string]int, error) {
	return s.repo.GetStatsByField(ctx, "genero")
}

// StatsByFacultad returns student counts grouped by faculty
func (s *studentServiceImpl) StatsByFacultad(ctx context.Context) (map[string]int, error) {
	return s.repo.GetStatsByField(ctx, "facultad")
}

// notify records an activity entry without blocking the caller. Logging is
// best effort; a failed write must never fail the student operation.
func (s *studentServiceImpl) notify(tipo models.ActivityKind, descripcion string) {
	if s.activities == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.activities.Record(ctx, tipo, descripcion); err != nil {
			s.logger.Warn().Err(err).
				Str("tipo", string(tipo)).
				Str("descripcion", descripcion).
				Msg("Failed to record activity")
		}
	}()
}

func validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("body", "student payload is required")
	}
	if strings.TrimSpace(student.Nombre) == "" {
		return apperrors.NewValidationError("nombre", "nombre is required")
	}
	if strings.TrimSpace(student.Apellido) == "" {
		return apperrors.NewValidationError("apellido", "apellido is required")
	}
	if strings.TrimSpace(student.Cedula) == "" {
		return apperrors.NewValidationError("cedula", "cedula is required")
	}
	if student.Edad <= 0 {
		return apperrors.NewValidationError("edad", "edad must be positive")
	}
	return nil
}
