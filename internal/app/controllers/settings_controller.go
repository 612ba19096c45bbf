package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
)

// SettingsController handles per-account application settings
type SettingsController struct {
	settingsService services.SettingsService
	logger          zerolog.Logger
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService services.SettingsService, logger zerolog.Logger) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get returns the account settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Router /settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	settings, err := c.settingsService.Get(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToSettingsResponse(settings)))
}

// Update merges the request onto the stored settings
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Settings to change"
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Router /settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	settings, err := c.settingsService.Update(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToSettingsResponse(settings)))
}

// Reset restores the default settings
// @Summary Reset settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Router /settings/reset [post]
func (c *SettingsController) Reset(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	settings, err := c.settingsService.Reset(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ToSettingsResponse(settings)))
}
