package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
)

// SocialServerController handles social server enrollment operations
type SocialServerController struct {
	enrollmentService services.EnrollmentService
}

// NewSocialServerController creates a new SocialServerController
func NewSocialServerController(enrollmentService services.EnrollmentService) *SocialServerController {
	return &SocialServerController{enrollmentService: enrollmentService}
}

// CreateSocialServer enrolls a new social server
// @Summary Enroll a social server
// @Description Enrolls a social server; an ACTIVE server with a schedule takes a seat in that schedule
// @Tags social-servers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SocialServerRequest true "Social server information"
// @Success 201 {object} dto.APIResponse{data=dto.SocialServerResponse} "Social server enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Park or schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Email already enrolled or schedule full"
// @Router /social-servers [post]
func (c *SocialServerController) CreateSocialServer(ctx *gin.Context) {
	var req dto.SocialServerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid social server data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	server, err := c.enrollmentService.CreateSocialServer(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: server, Timestamp: time.Now()})
}

// GetSocialServerByID retrieves a social server by ID
// @Summary Get social server by ID
// @Description Retrieves a specific social server
// @Tags social-servers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Social server ID"
// @Success 200 {object} dto.APIResponse{data=dto.SocialServerResponse} "Social server retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Social server not found"
// @Router /social-servers/{id} [get]
func (c *SocialServerController) GetSocialServerByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	server, err := c.enrollmentService.GetSocialServerByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: server, Timestamp: time.Now()})
}

// GetAllSocialServers lists social servers
// @Summary List social servers
// @Description Lists social servers with optional park and status filters, newest enrollment first
// @Tags social-servers
// @Produce json
// @Security BearerAuth
// @Param parkId query int false "Filter by park ID"
// @Param status query string false "Filter by status (ACTIVE or INACTIVE)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Social servers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Router /social-servers [get]
func (c *SocialServerController) GetAllSocialServers(ctx *gin.Context) {
	var parkID *int64
	if parkIDStr := ctx.Query("parkId"); parkIDStr != "" {
		id, err := strconv.ParseInt(parkIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid parkId parameter").
				WithDetails("parkId must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		parkID = &id
	}

	page, size := helpers.ParsePaginationParams(ctx)
	servers, err := c.enrollmentService.GetAllSocialServers(ctx, parkID, ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: servers, Timestamp: time.Now()})
}

// UpdateSocialServer updates a social server
// @Summary Update a social server
// @Description Updates a social server; status and schedule changes move seats accordingly
// @Tags social-servers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Social server ID"
// @Param request body dto.SocialServerRequest true "Social server information"
// @Success 200 {object} dto.APIResponse{data=dto.SocialServerResponse} "Social server updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Social server, park or schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Destination schedule full"
// @Router /social-servers/{id} [put]
func (c *SocialServerController) UpdateSocialServer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SocialServerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid social server data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	server, err := c.enrollmentService.UpdateSocialServer(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: server, Timestamp: time.Now()})
}

// DeleteSocialServer removes a social server
// @Summary Delete a social server
// @Description Removes a social server, releasing its seat when it occupied one
// @Tags social-servers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Social server ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Social server deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Social server not found"
// @Router /social-servers/{id} [delete]
func (c *SocialServerController) DeleteSocialServer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteSocialServer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Social server deleted successfully"},
		Timestamp: time.Now(),
	})
}
