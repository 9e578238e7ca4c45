package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
)

// AttendanceController handles attendance recording and listing
type AttendanceController struct {
	attendanceService services.AttendanceService
	configService     services.AppConfigService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService, configService services.AppConfigService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		configService:     configService,
	}
}

// RecordAttendance registers a check-in or check-out
// @Summary Record attendance
// @Description Registers an attendance event for a social server identified by email. Without an explicit type the event alternates from the latest recorded one. The photo travels as a multipart file under "photo".
// @Tags attendances
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Social server email"
// @Param parkId formData int true "Park where the event happens"
// @Param type formData string false "Explicit event type (CHECK_IN or CHECK_OUT)"
// @Param latitude formData number false "Latitude of the submission"
// @Param longitude formData number false "Longitude of the submission"
// @Param address formData string false "Resolved street address"
// @Param photo formData file false "Evidence photo"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or photo too large"
// @Failure 404 {object} dto.ErrorResponse "Social server or park not found"
// @Router /attendances [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var req dto.AttendanceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid attendance data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photo, err := ctx.FormFile("photo")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		errorDetail := middleware.ValidationErrorDetail("Invalid photo upload", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if photo != nil {
		limitMB, err := c.configService.GetPhotoSizeLimit(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if photo.Size > int64(limitMB)*1024*1024 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo too large").
				WithDetails(fmt.Sprintf("photo exceeds the %d MB limit", limitMB))
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	attendance, err := c.attendanceService.RecordAttendance(ctx, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: attendance, Timestamp: time.Now()})
}

// GetAttendances lists a social server's attendance events
// @Summary List attendance events
// @Description Lists a social server's attendance events, newest first
// @Tags attendances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Social server ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Attendance events retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Social server not found"
// @Router /social-servers/{id}/attendances [get]
func (c *AttendanceController) GetAttendances(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	attendances, err := c.attendanceService.GetAttendances(ctx, id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: attendances, Timestamp: time.Now()})
}
