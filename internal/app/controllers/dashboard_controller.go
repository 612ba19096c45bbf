package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
)

// DashboardController serves the home screen aggregates
type DashboardController struct {
	dashboardService services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary returns the dashboard numbers
// @Summary Dashboard summary
// @Description Totals, gender split with percentages and recent activity.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummaryResponse}
// @Router /dashboard/summary [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.dashboardService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// Statistics returns per-field student breakdowns
// @Summary Student statistics
// @Description Counts and percentage shares per demographic field.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatisticsResponse}
// @Router /dashboard/statistics [get]
func (c *DashboardController) Statistics(ctx *gin.Context) {
	stats, err := c.dashboardService.Statistics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
