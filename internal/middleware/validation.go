package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
)

// ValidationErrorDetail turns a request binding error into an ErrorDetail.
// Field-level validation failures are reported per field; anything else
// (malformed JSON, type mismatches) is passed through as-is.
func ValidationErrorDetail(message string, err error) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, formatValidationError(fieldError))
		}
		return errorDetail.WithDetails(messages)
	}

	return errorDetail.WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
