package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportExportController moves the social server roster in and out of xlsx files
type ImportExportController struct {
	importExportService services.ImportExportService
}

// NewImportExportController creates a new ImportExportController
func NewImportExportController(importExportService services.ImportExportService) *ImportExportController {
	return &ImportExportController{importExportService: importExportService}
}

// ImportSocialServers imports a roster workbook
// @Summary Import social servers
// @Description Imports social servers from an xlsx roster. Failing rows are reported without aborting the rest.
// @Tags social-servers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Roster workbook (.xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid workbook"
// @Router /social-servers/import [post]
func (c *ImportExportController) ImportSocialServers(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing workbook").
			WithDetails("A file must be uploaded under the \"file\" form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unreadable workbook").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	report, err := c.importExportService.ImportSocialServers(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// ExportSocialServers downloads the roster workbook
// @Summary Export social servers
// @Description Downloads the full social server roster as an xlsx workbook
// @Tags social-servers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Roster workbook"
// @Router /social-servers/export [get]
func (c *ImportExportController) ExportSocialServers(ctx *gin.Context) {
	workbook, err := c.importExportService.ExportSocialServers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("social-servers-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Content-Type", xlsxContentType)
	ctx.Status(http.StatusOK)

	if err := workbook.Write(ctx.Writer); err != nil {
		// Headers already went out; just log through gin's error list.
		_ = ctx.Error(err)
	}
}
