package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

// ParkController handles park-related operations
type ParkController struct {
	parkService services.ParkService
}

// NewParkController creates a new ParkController
func NewParkController(parkService services.ParkService) *ParkController {
	return &ParkController{parkService: parkService}
}

// CreatePark handles park creation
// @Summary Create a new park
// @Description Creates a new park with the provided name and abbreviation
// @Tags parks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ParkRequest true "Park information"
// @Success 201 {object} dto.APIResponse{data=models.Park} "Park created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Park already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parks [post]
func (c *ParkController) CreatePark(ctx *gin.Context) {
	var req dto.ParkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid park data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	park, err := c.parkService.CreatePark(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: park, Timestamp: time.Now()})
}

// GetParkByID retrieves a park by ID
// @Summary Get park by ID
// @Description Retrieves a specific park by its ID
// @Tags parks
// @Produce json
// @Param id path int true "Park ID"
// @Success 200 {object} dto.APIResponse{data=models.Park} "Park retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid park ID"
// @Failure 404 {object} dto.ErrorResponse "Park not found"
// @Router /parks/{id} [get]
func (c *ParkController) GetParkByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	park, err := c.parkService.GetParkByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: park, Timestamp: time.Now()})
}

// GetAllParks retrieves all parks
// @Summary Get all parks
// @Description Retrieves a list of all parks
// @Tags parks
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Park} "Parks retrieved successfully"
// @Router /parks [get]
func (c *ParkController) GetAllParks(ctx *gin.Context) {
	parks, err := c.parkService.GetAllParks(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: parks, Timestamp: time.Now()})
}

// UpdatePark updates a park
// @Summary Update a park
// @Description Updates a park's name and abbreviation
// @Tags parks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Park ID"
// @Param request body dto.ParkRequest true "Park information"
// @Success 200 {object} dto.APIResponse{data=models.Park} "Park updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Park not found"
// @Router /parks/{id} [put]
func (c *ParkController) UpdatePark(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ParkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid park data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	park, err := c.parkService.UpdatePark(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: park, Timestamp: time.Now()})
}

// DeletePark deletes a park
// @Summary Delete a park
// @Description Deletes a park without assigned social servers
// @Tags parks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Park ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Park deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Park not found"
// @Failure 409 {object} dto.ErrorResponse "Park has assigned social servers"
// @Router /parks/{id} [delete]
func (c *ParkController) DeletePark(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.parkService.DeletePark(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Park deleted successfully"},
		Timestamp: time.Now(),
	})
}

// pathID parses an int64 path parameter, responding with a validation error
// when it is not a number.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
