package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into the standard error envelope.
// Every controller funnels its error paths through here so the status code
// and error code for a given failure are the same on every endpoint.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	case errors.Is(err, apperrors.ErrCapacityExhausted):
		respondError(c, http.StatusConflict, dto.ErrorCodeCapacityExhausted, err)
	case errors.Is(err, apperrors.ErrCapacityBelowAssigned):
		respondError(c, http.StatusConflict, dto.ErrorCodeCapacityBelowAssigned, err)
	case errors.Is(err, apperrors.ErrDuplicateAssociation):
		respondError(c, http.StatusConflict, dto.ErrorCodeDuplicateAssociation, err)
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrDuplicatePark),
		errors.Is(err, apperrors.ErrParkHasServers),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	case errors.Is(err, apperrors.ErrInvalidAssociation):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidAssociation, err)
	case errors.Is(err, apperrors.ErrInvalidAttendanceType):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidAttendanceType, err)
	case errors.Is(err, apperrors.ErrMissingPhoto):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeMissingPhoto, err)
	case errors.Is(err, apperrors.ErrParkMismatch):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeParkMismatch, err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrStorageFailure):
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeStorageFailure, err)

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, err.Error())))
}
