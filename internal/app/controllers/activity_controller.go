package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
)

// ActivityController handles activity log reads
type ActivityController struct {
	activityService services.ActivityService
	logger          zerolog.Logger
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService, logger zerolog.Logger) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		logger:          logger,
	}
}

// Recent returns the newest activity entries
// @Summary Recent activity
// @Description Lists recent audit entries, newest first. Defaults to 10.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse}
// @Router /activities [get]
func (c *ActivityController) Recent(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "limit must be an integer").WithField("limit")))
			return
		}
		limit = parsed
	}

	activities, err := c.activityService.FetchRecent(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToActivityListResponse(activities)))
}
