package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a gin binding error into an ErrorDetail
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
	}

	first := verrs[0]
	detail := NewErrorDetail(ErrorCodeValidationFailed, validationMessage(first)).
		WithField(strings.ToLower(first.Field()))

	if len(verrs) > 1 {
		all := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			all = append(all, validationMessage(fe))
		}
		detail = detail.WithDetails(all)
	}

	return detail
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
