package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
)

// ProfileController handles profile and avatar operations
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// Get returns the merged profile of the signed-in user
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// Update writes the profile to both stores
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UploadAvatar stores a base64 avatar image
// @Summary Upload avatar
// @Description Accepts a base64 image (raw or data URL) and stores it
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadAvatarRequest true "Base64 image"
// @Success 200 {object} dto.APIResponse{data=dto.AvatarResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed or unsupported image"
// @Router /profile/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UploadAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	avatarURL, err := c.profileService.UploadAvatar(ctx.Request.Context(), userID, req.Data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AvatarResponse{AvatarURL: avatarURL}))
}

// RemoveAvatar clears the stored avatar
// @Summary Remove avatar
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /profile/avatar [delete]
func (c *ProfileController) RemoveAvatar(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.profileService.RemoveAvatar(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Avatar removed"}))
}
