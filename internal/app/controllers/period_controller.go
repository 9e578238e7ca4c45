package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

// PeriodController handles service-term operations
type PeriodController struct {
	periodService services.PeriodService
}

// NewPeriodController creates a new PeriodController
func NewPeriodController(periodService services.PeriodService) *PeriodController {
	return &PeriodController{periodService: periodService}
}

// CreatePeriod creates a service period
// @Summary Create a period
// @Description Creates a service period with a name and date range
// @Tags periods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PeriodRequest true "Period information"
// @Success 201 {object} dto.APIResponse{data=models.Period} "Period created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /periods [post]
func (c *PeriodController) CreatePeriod(ctx *gin.Context) {
	var req dto.PeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid period data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	period, err := c.periodService.CreatePeriod(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: period, Timestamp: time.Now()})
}

// GetPeriodByID retrieves a period by ID
// @Summary Get period by ID
// @Description Retrieves a specific service period
// @Tags periods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Period ID"
// @Success 200 {object} dto.APIResponse{data=models.Period} "Period retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Period not found"
// @Router /periods/{id} [get]
func (c *PeriodController) GetPeriodByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	period, err := c.periodService.GetPeriodByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: period, Timestamp: time.Now()})
}

// GetAllPeriods retrieves all periods
// @Summary List periods
// @Description Retrieves all service periods, most recent first
// @Tags periods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Period} "Periods retrieved successfully"
// @Router /periods [get]
func (c *PeriodController) GetAllPeriods(ctx *gin.Context) {
	periods, err := c.periodService.GetAllPeriods(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: periods, Timestamp: time.Now()})
}
