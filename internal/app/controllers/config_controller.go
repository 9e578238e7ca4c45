package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

// ConfigController handles runtime setting operations
type ConfigController struct {
	configService services.AppConfigService
}

// NewConfigController creates a new ConfigController
func NewConfigController(configService services.AppConfigService) *ConfigController {
	return &ConfigController{configService: configService}
}

// GetPhotoSizeLimit reports the attendance photo size limit
// @Summary Get photo size limit
// @Description Reports the configured attendance photo size limit in megabytes
// @Tags config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PhotoSizeLimitResponse} "Limit retrieved successfully"
// @Router /config/photo-size-limit [get]
func (c *ConfigController) GetPhotoSizeLimit(ctx *gin.Context) {
	limit, err := c.configService.GetPhotoSizeLimit(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PhotoSizeLimitResponse{SizeMB: limit},
		Timestamp: time.Now(),
	})
}

// SetPhotoSizeLimit updates the attendance photo size limit
// @Summary Set photo size limit
// @Description Updates the attendance photo size limit in megabytes (SUPER_ADMIN only)
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PhotoSizeLimitRequest true "New limit"
// @Success 200 {object} dto.APIResponse{data=dto.PhotoSizeLimitResponse} "Limit updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /config/photo-size-limit [put]
func (c *ConfigController) SetPhotoSizeLimit(ctx *gin.Context) {
	var req dto.PhotoSizeLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.ValidationErrorDetail("Invalid limit data", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.configService.SetPhotoSizeLimit(ctx, req.SizeMB); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PhotoSizeLimitResponse{SizeMB: req.SizeMB},
		Timestamp: time.Now(),
	})
}
