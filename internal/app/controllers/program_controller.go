package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

// ProgramController handles program and schedule catalog operations
type ProgramController struct {
	catalogService services.CatalogService
}

// NewProgramController creates a new ProgramController
func NewProgramController(catalogService services.CatalogService) *ProgramController {
	return &ProgramController{catalogService: catalogService}
}

// CreateProgram handles program creation
// @Summary Create a new program
// @Description Creates a program and associates it with the given parks
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=dto.ProgramResponse} "Program created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Park not found"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid program data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	program, err := c.catalogService.CreateProgram(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// GetProgramByID retrieves a program by ID
// @Summary Get program by ID
// @Description Retrieves a program with its parks, schedules and aggregated capacities
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgramByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	program, err := c.catalogService.GetProgramByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// GetAllPrograms retrieves all programs
// @Summary Get all programs
// @Description Retrieves every program in aggregate view
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramResponse} "Programs retrieved successfully"
// @Router /programs [get]
func (c *ProgramController) GetAllPrograms(ctx *gin.Context) {
	programs, err := c.catalogService.GetAllPrograms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: programs, Timestamp: time.Now()})
}

// UpdateProgram updates a program
// @Summary Update a program
// @Description Renames a program and reconciles its park associations with the request
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.ProgramRequest true "Program information"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program or park not found"
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid program data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	program, err := c.catalogService.UpdateProgram(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: program, Timestamp: time.Now()})
}

// DeleteProgram deletes a program
// @Summary Delete a program
// @Description Deletes a program with its schedules and reports the social servers that lost their assignment
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.AffectedServersResponse} "Program deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	affected, err := c.catalogService.DeleteProgram(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.AffectedServersResponse{AffectedSocialServers: affected},
		Timestamp: time.Now(),
	})
}

// AddSchedule creates a schedule under a program
// @Summary Add a schedule to a program
// @Description Creates a schedule for the program at the given park; the park must already be associated
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.ScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleInfo} "Schedule created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid slot or park not associated"
// @Failure 409 {object} dto.ErrorResponse "Schedule slot already exists"
// @Router /programs/{id}/schedules [post]
func (c *ProgramController) AddSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid schedule data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	schedule, err := c.catalogService.AddSchedule(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: schedule, Timestamp: time.Now()})
}

// UpdateSchedule updates a schedule of a program
// @Summary Update a schedule
// @Description Updates a schedule's slot and details; a capacity change preserves the assigned seats
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param scheduleId path int true "Schedule ID"
// @Param request body dto.ScheduleRequest true "Schedule information"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleInfo} "Schedule updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid slot or schedule not under program"
// @Failure 409 {object} dto.ErrorResponse "Capacity below assigned seats"
// @Router /programs/{id}/schedules/{scheduleId} [put]
func (c *ProgramController) UpdateSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(ctx, "scheduleId")
	if !ok {
		return
	}

	var req dto.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid schedule data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	schedule, err := c.catalogService.UpdateSchedule(ctx, id, scheduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedule, Timestamp: time.Now()})
}

// DeleteSchedule deletes a schedule of a program
// @Summary Delete a schedule
// @Description Deletes a schedule and reports the social servers that lost their assignment
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param scheduleId path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.AffectedServersResponse} "Schedule deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /programs/{id}/schedules/{scheduleId} [delete]
func (c *ProgramController) DeleteSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(ctx, "scheduleId")
	if !ok {
		return
	}

	affected, err := c.catalogService.DeleteSchedule(ctx, id, scheduleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.AffectedServersResponse{AffectedSocialServers: affected},
		Timestamp: time.Now(),
	})
}
