package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, 404, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found"))
	case errors.Is(err, apperrors.ErrCedulaExists):
		respondError(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Cedula already registered"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Permission denied"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, 400, dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, "Invalid email format").WithField("email"))
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, 400, dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, "Password must be at least 6 characters").WithField("password"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, 401, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, 401, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			detail = detail.WithDetails(custom.Message)
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		respondError(c, 400, detail)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Bad request"))
	default:
		respondError(c, 500, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respondError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}
