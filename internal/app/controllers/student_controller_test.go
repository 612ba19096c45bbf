package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/controllers"
	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// stubStudentService backs the controller with canned data.
type stubStudentService struct {
	students map[string]models.Student
}

func newStubStudentService() *stubStudentService {
	return &stubStudentService{students: map[string]models.Student{}}
}

func (s *stubStudentService) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *stubStudentService) Get(ctx context.Context, cedula string) (*models.Student, error) {
	st, ok := s.students[cedula]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &st, nil
}

func (s *stubStudentService) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	if _, exists := s.students[student.Cedula]; exists {
		return nil, apperrors.ErrCedulaExists
	}
	created := *student
	created.ID = int64(len(s.students) + 1)
	s.students[created.Cedula] = created
	return &created, nil
}

func (s *stubStudentService) Update(ctx context.Context, cedula string, patch *models.StudentPatch) (*models.Student, error) {
	st, ok := s.students[cedula]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if patch.Nombre != nil {
		st.Nombre = *patch.Nombre
	}
	s.students[cedula] = st
	return &st, nil
}

func (s *stubStudentService) Delete(ctx context.Context, cedula string) error {
	if _, ok := s.students[cedula]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, cedula)
	return nil
}

func (s *stubStudentService) Search(ctx context.Context, term string) ([]models.Student, error) {
	var out []models.Student
	for _, st := range s.students {
		if st.Nombre == term {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubStudentService) ListByFacultad(ctx context.Context, facultad string) ([]models.Student, error) {
	var out []models.Student
	for _, st := range s.students {
		if st.Facultad == facultad {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubStudentService) ListByGrupo(ctx context.Context, grupo string) ([]models.Student, error) {
	return nil, nil
}

func (s *stubStudentService) StatsByGender(ctx context.Context) (map[string]int, error) {
	stats := map[string]int{}
	for _, st := range s.students {
		stats[st.Genero]++
	}
	return stats, nil
}

func (s *stubStudentService) StatsByFacultad(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

// stubExportService returns a fixed document.
type stubExportService struct{}

func (stubExportService) StudentDocument(ctx context.Context, cedula string) ([]byte, error) {
	if cedula != "8-123-456" {
		return nil, apperrors.ErrStudentNotFound
	}
	return []byte("<!DOCTYPE html><html><body>Ficha</body></html>"), nil
}

func newStudentRouter(svc *stubStudentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := controllers.NewStudentController(svc, stubExportService{}, zerolog.Nop())

	router := gin.New()
	students := router.Group("/students")
	{
		students.GET("", controller.List)
		students.POST("", controller.Create)
		students.GET("/stats/genero", controller.StatsByGender)
		students.GET("/:cedula", controller.Get)
		students.PUT("/:cedula", controller.Update)
		students.DELETE("/:cedula", controller.Delete)
		students.GET("/:cedula/export", controller.Export)
	}
	return router
}

func createPayload() map[string]interface{} {
	return map[string]interface{}{
		"nombre":              "Juan",
		"apellido":            "Pérez",
		"cedula":              "8-123-456",
		"edad":                20,
		"fecha_de_nacimiento": "2004-05-17",
		"genero":              "Masculino",
		"herramienta_tecnica": "Python",
		"pais_de_origen":      "Panamá",
		"codigo_de_grupo":     "G-2024-01",
		"universidad":         "Universidad Tecnológica",
		"facultad":            "Ingeniería",
		"horario":             "Diurno",
		"anio_carrera":        "2",
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStudentController_CreateAndGet(t *testing.T) {
	router := newStudentRouter(newStubStudentService())

	w := doJSON(t, router, http.MethodPost, "/students", createPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Student `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "Juan", created.Data.Nombre)
	assert.NotZero(t, created.Data.ID)

	w = doJSON(t, router, http.MethodGet, "/students/8-123-456", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Data models.Student `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "8-123-456", got.Data.Cedula)
}

func TestStudentController_CreateRejectsMissingFields(t *testing.T) {
	router := newStudentRouter(newStubStudentService())

	payload := createPayload()
	delete(payload, "nombre")

	w := doJSON(t, router, http.MethodPost, "/students", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestStudentController_DuplicateCedulaConflicts(t *testing.T) {
	router := newStudentRouter(newStubStudentService())

	w := doJSON(t, router, http.MethodPost, "/students", createPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/students", createPayload())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStudentController_GetUnknownIs404(t *testing.T) {
	router := newStudentRouter(newStubStudentService())

	w := doJSON(t, router, http.MethodGet, "/students/no-such", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentController_UpdateAndDelete(t *testing.T) {
	svc := newStubStudentService()
	router := newStudentRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/students", createPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, "/students/8-123-456", map[string]interface{}{"nombre": "Carlos"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Carlos", svc.students["8-123-456"].Nombre)

	w = doJSON(t, router, http.MethodDelete, "/students/8-123-456", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/students/8-123-456", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentController_StatsRouteCoexistsWithParamRoute(t *testing.T) {
	svc := newStubStudentService()
	router := newStudentRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/students", createPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/students/stats/genero", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.StatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Data.Counts["Masculino"])
}

func TestStudentController_Export(t *testing.T) {
	svc := newStubStudentService()
	router := newStudentRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/students/8-123-456/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Ficha")

	w = doJSON(t, router, http.MethodGet, "/students/other/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
