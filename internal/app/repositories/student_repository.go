package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/pkg/apperrors"
	"github.com/edusync/edusync/internal/pkg/dberrors"
	"github.com/edusync/edusync/internal/pkg/logger"
)

// studentColumns is the column list shared by every student query
var studentColumns = []string{
	"id", "nombre", "apellido", "cedula", "edad", "fecha_de_nacimiento",
	"genero", "herramienta_tecnica", "pais_de_origen", "colegio_de_origen",
	"codigo_de_grupo", "universidad", "facultad", "materia_favorita",
	"horario", "anio_carrera", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Nombre, &s.Apellido, &s.Cedula, &s.Edad, &s.FechaDeNacimiento,
		&s.Genero, &s.HerramientaTecnica, &s.PaisDeOrigen, &s.ColegioDeOrigen,
		&s.CodigoDeGrupo, &s.Universidad, &s.Facultad, &s.MateriaFavorita,
		&s.Horario, &s.AnioCarrera, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Student, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student list SQL")
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student list query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// GetAll returns every student ordered by first name
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("nombre ASC")

	return r.queryStudents(ctx, builder)
}

// GetByCedula retrieves a single student by national ID
func (r *StudentRepository) GetByCedula(ctx context.Context, cedula string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"cedula": cedula}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("cedula", cedula).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// Create inserts a new student and returns the stored record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	now := time.Now()

	sql, args, err := r.sb.Insert("students").
		Columns(
			"nombre", "apellido", "cedula", "edad", "fecha_de_nacimiento",
			"genero", "herramienta_tecnica", "pais_de_origen", "colegio_de_origen",
			"codigo_de_grupo", "universidad", "facultad", "materia_favorita",
			"horario", "anio_carrera", "created_at", "updated_at",
		).
		Values(
			student.Nombre, student.Apellido, student.Cedula, student.Edad, student.FechaDeNacimiento,
			student.Genero, student.HerramientaTecnica, student.PaisDeOrigen, student.ColegioDeOrigen,
			student.CodigoDeGrupo, student.Universidad, student.Facultad, student.MateriaFavorita,
			student.Horario, student.AnioCarrera, now, now,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	created := *student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_cedula_key") {
			logger.Warn().Str("cedula", student.Cedula).Msg("Attempted to register duplicate cedula")
			return nil, apperrors.ErrCedulaExists
		}
		logger.Error().Err(err).Str("cedula", student.Cedula).Msg("Error executing create student query")
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return &created, nil
}

// Update applies a partial update to the student identified by cedula.
// A non-nil patch.Cedula changes the record's key itself.
func (r *StudentRepository) Update(ctx context.Context, cedula string, patch *models.StudentPatch) (*models.Student, error) {
	builder := r.sb.Update("students").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"cedula": cedula})

	if patch.Nombre != nil {
		builder = builder.Set("nombre", *patch.Nombre)
	}
	if patch.Apellido != nil {
		builder = builder.Set("apellido", *patch.Apellido)
	}
	if patch.Cedula != nil {
		builder = builder.Set("cedula", *patch.Cedula)
	}
	if patch.Edad != nil {
		builder = builder.Set("edad", *patch.Edad)
	}
	if patch.FechaDeNacimiento != nil {
		builder = builder.Set("fecha_de_nacimiento", *patch.FechaDeNacimiento)
	}
	if patch.Genero != nil {
		builder = builder.Set("genero", *patch.Genero)
	}
	if patch.HerramientaTecnica != nil {
		builder = builder.Set("herramienta_tecnica", *patch.HerramientaTecnica)
	}
	if patch.PaisDeOrigen != nil {
		builder = builder.Set("pais_de_origen", *patch.PaisDeOrigen)
	}
	if patch.ColegioDeOrigen != nil {
		builder = builder.Set("colegio_de_origen", *patch.ColegioDeOrigen)
	}
	if patch.CodigoDeGrupo != nil {
		builder = builder.Set("codigo_de_grupo", *patch.CodigoDeGrupo)
	}
	if patch.Universidad != nil {
		builder = builder.Set("universidad", *patch.Universidad)
	}
	if patch.Facultad != nil {
		builder = builder.Set("facultad", *patch.Facultad)
	}
	if patch.MateriaFavorita != nil {
		builder = builder.Set("materia_favorita", *patch.MateriaFavorita)
	}
	if patch.Horario != nil {
		builder = builder.Set("horario", *patch.Horario)
	}
	if patch.AnioCarrera != nil {
		builder = builder.Set("anio_carrera", *patch.AnioCarrera)
	}

	sql, args, err := builder.
		Suffix("RETURNING " + joinColumns(studentColumns)).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "students_cedula_key") {
			logger.Warn().Str("cedula", cedula).Msg("Attempted to change cedula to an existing one")
			return nil, apperrors.ErrCedulaExists
		}
		logger.Error().Err(err).Str("cedula", cedula).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// Delete removes the student identified by cedula
func (r *StudentRepository) Delete(ctx context.Context, cedula string) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"cedula": cedula}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("cedula", cedula).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SearchByName returns students whose first or last name matches the term
func (r *StudentRepository) SearchByName(ctx context.Context, term string) ([]models.Student, error) {
	pattern := "%" + term + "%"
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Or{
			squirrel.ILike{"nombre": pattern},
			squirrel.ILike{"apellido": pattern},
		}).
		OrderBy("nombre ASC")

	return r.queryStudents(ctx, builder)
}

// GetByFacultad returns students belonging to a faculty
func (r *StudentRepository) GetByFacultad(ctx context.Context, facultad string) ([]models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"facultad": facultad}).
		OrderBy("nombre ASC")

	return r.queryStudents(ctx, builder)
}

// GetByGrupo returns students belonging to a group code
func (r *StudentRepository) GetByGrupo(ctx context.Context, grupo string) ([]models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"codigo_de_grupo": grupo}).
		OrderBy("nombre ASC")

	return r.queryStudents(ctx, builder)
}

// CountAll returns the total number of students
func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// groupableColumns whitelists the student columns statistics may group
// by. The column name is interpolated into the query, so nothing
// outside this set is accepted.
var groupableColumns = map[string]bool{
	"genero":              true,
	"universidad":         true,
	"facultad":            true,
	"anio_carrera":        true,
	"horario":             true,
	"herramienta_tecnica": true,
}

// GetStatsByField returns student counts grouped by the given column
func (r *StudentRepository) GetStatsByField(ctx context.Context, field string) (map[string]int, error) {
	if !groupableColumns[field] {
		return nil, fmt.Errorf("cannot group students by %q", field)
	}
	return r.countGrouped(ctx, field)
}

func (r *StudentRepository) countGrouped(ctx context.Context, column string) (map[string]int, error) {
	sql, args, err := r.sb.Select(column, "COUNT(*)").
		From("students").
		GroupBy(column).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Str("column", column).Msg("Error building grouped count SQL")
		return nil, fmt.Errorf("failed to build grouped count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("column", column).Msg("Error executing grouped count query")
		return nil, fmt.Errorf("error counting students by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning grouped count row: %w", err)
		}
		counts[key] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grouped count rows: %w", err)
	}

	return counts, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
