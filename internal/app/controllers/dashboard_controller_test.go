package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/controllers"
	"github.com/edusync/edusync/internal/app/models/dto"
)

// stubDashboardService serves canned aggregates.
type stubDashboardService struct {
	summary *dto.DashboardSummaryResponse
	stats   *dto.StatisticsResponse
}

func (s *stubDashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	return s.summary, nil
}

func (s *stubDashboardService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	return s.stats, nil
}

func newDashboardRouter(svc *stubDashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := controllers.NewDashboardController(svc, zerolog.Nop())
	router := gin.New()
	router.GET("/dashboard/summary", ctrl.Summary)
	router.GET("/dashboard/statistics", ctrl.Statistics)
	return router
}

func TestDashboardController_Statistics(t *testing.T) {
	svc := &stubDashboardService{
		stats: &dto.StatisticsResponse{
			TotalStudents: 3,
			Fields: map[string][]dto.DistributionEntry{
				"genero": {
					{Value: "Femenino", Count: 2, Percentage: 66.7},
					{Value: "Masculino", Count: 1, Percentage: 33.3},
				},
				"universidad": {
					{Value: "Universidad Tecnológica", Count: 3, Percentage: 100},
				},
				"facultad":            {},
				"anio_carrera":        {},
				"horario":             {},
				"herramienta_tecnica": {},
			},
		},
	}
	router := newDashboardRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/dashboard/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dto.StatisticsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 3, body.Data.TotalStudents)
	require.Contains(t, body.Data.Fields, "universidad")
	require.Len(t, body.Data.Fields["universidad"], 1)
	assert.InDelta(t, 100, body.Data.Fields["universidad"][0].Percentage, 0.001)
	require.Contains(t, body.Data.Fields, "genero")
	assert.Equal(t, "Femenino", body.Data.Fields["genero"][0].Value)
}

func TestDashboardController_Summary(t *testing.T) {
	svc := &stubDashboardService{
		summary: &dto.DashboardSummaryResponse{
			TotalStudents:    3,
			MaleCount:        1,
			FemaleCount:      2,
			MalePercentage:   33.3,
			FemalePercentage: 66.7,
			RecentActivities: []dto.ActivityResponse{},
		},
	}
	router := newDashboardRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dto.DashboardSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalStudents)
	assert.InDelta(t, 66.7, body.Data.FemalePercentage, 0.001)
}
