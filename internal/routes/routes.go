package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suilog/internal/handlers"
	"suilog/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	projectHandler *handlers.ProjectHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/auth/connect", authHandler.Connect)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		tasks.POST("/:id/complete", taskHandler.Complete)
		tasks.POST("/:id/assign", taskHandler.Assign)
	}

	// PROJECT
	project := r.Group("/project")
	{
		project.GET("/", projectHandler.Get)
		project.PUT("/", projectHandler.Update)
		project.POST("/members", projectHandler.AddMember)
		project.DELETE("/members/:address", projectHandler.RemoveMember)
		project.POST("/complete/request-code", projectHandler.RequestCompletionCode)
		project.POST("/complete", projectHandler.Complete)
		project.GET("/certificate", projectHandler.Certificate)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/contribution", reportHandler.Contribution)
		reports.GET("/schedule", reportHandler.Schedule)
		reports.GET("/weekly-hours", reportHandler.WeeklyHours)
		reports.GET("/gantt", reportHandler.Gantt)
		reports.GET("/summary", reportHandler.Summary)
	}

	return r
}
