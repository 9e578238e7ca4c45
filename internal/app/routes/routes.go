package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mikelitos05/asistencias/internal/app/controllers"
	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	parkController *controllers.ParkController,
	programController *controllers.ProgramController,
	socialServerController *controllers.SocialServerController,
	attendanceController *controllers.AttendanceController,
	periodController *controllers.PeriodController,
	configController *controllers.ConfigController,
	importExportController *controllers.ImportExportController,
	authMiddleware *middleware.AuthMiddleware,
	photoDir string,
) {
	// Attendance photos are served as static files under /uploads.
	router.Static("/uploads", photoDir)

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	// The attendance kiosk at each park runs unauthenticated; it only
	// needs the park list and the recording endpoint.
	v1.POST("/auth/login", authController.Login)
	v1.GET("/parks", parkController.GetAllParks)
	v1.GET("/parks/:id", parkController.GetParkByID)
	v1.POST("/attendances", attendanceController.RecordAttendance)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	admin := authenticated.Group("")
	admin.Use(authMiddleware.RolesRequired(string(models.RoleAdmin), string(models.RoleSuperAdmin)))
	{
		parks := admin.Group("/parks")
		{
			parks.POST("", parkController.CreatePark)
			parks.PUT("/:id", parkController.UpdatePark)
			parks.DELETE("/:id", parkController.DeletePark)
		}

		programs := admin.Group("/programs")
		{
			programs.GET("", programController.GetAllPrograms)
			programs.GET("/:id", programController.GetProgramByID)
			programs.POST("", programController.CreateProgram)
			programs.PUT("/:id", programController.UpdateProgram)
			programs.DELETE("/:id", programController.DeleteProgram)

			programs.POST("/:id/schedules", programController.AddSchedule)
			programs.PUT("/:id/schedules/:scheduleId", programController.UpdateSchedule)
			programs.DELETE("/:id/schedules/:scheduleId", programController.DeleteSchedule)
		}

		socialServers := admin.Group("/social-servers")
		{
			socialServers.GET("", socialServerController.GetAllSocialServers)
			socialServers.GET("/export", importExportController.ExportSocialServers)
			socialServers.POST("/import", importExportController.ImportSocialServers)
			socialServers.GET("/:id", socialServerController.GetSocialServerByID)
			socialServers.POST("", socialServerController.CreateSocialServer)
			socialServers.PUT("/:id", socialServerController.UpdateSocialServer)
			socialServers.DELETE("/:id", socialServerController.DeleteSocialServer)

			socialServers.GET("/:id/attendances", attendanceController.GetAttendances)
		}

		periods := admin.Group("/periods")
		{
			periods.GET("", periodController.GetAllPeriods)
			periods.GET("/:id", periodController.GetPeriodByID)
			periods.POST("", periodController.CreatePeriod)
		}

		admin.GET("/config/photo-size-limit", configController.GetPhotoSizeLimit)
	}

	superAdmin := authenticated.Group("")
	superAdmin.Use(authMiddleware.RolesRequired(string(models.RoleSuperAdmin)))
	{
		superAdmin.POST("/users", authController.CreateUser)
		superAdmin.GET("/users", authController.GetAllUsers)
		superAdmin.PUT("/config/photo-size-limit", configController.SetPhotoSizeLimit)
	}
}
