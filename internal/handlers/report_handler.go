package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"suilog/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Contribution godoc
// @Summary Contribution score report
// @Description Aggregated contribution score over completed tasks, optionally filtered by assignee
// @Tags reports
// @Produce json
// @Param assigned_to query string false "Assignee wallet address, or 'me' for the connected wallet"
// @Success 200 {object} contribution.Summary
// @Router /reports/contribution [get]
func (h *ReportHandler) Contribution(c *gin.Context) {
	var assignedTo *string
	if addr := c.Query("assigned_to"); addr != "" {
		if addr == "me" {
			connected, ok := getWalletAddress(c)
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "No connected wallet"})
				return
			}
			addr = connected
		}
		assignedTo = &addr
	}

	summary, err := h.service.Contribution(c.Request.Context(), assignedTo)
	if err != nil {
		log.Printf("[report][contribution] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build contribution report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Schedule godoc
// @Summary Two-week schedule
// @Description Scheduled and actual minutes per day for the next 14 days
// @Tags reports
// @Produce json
// @Success 200 {array} schedule.Day
// @Router /reports/schedule [get]
func (h *ReportHandler) Schedule(c *gin.Context) {
	days, err := h.service.Schedule(c.Request.Context())
	if err != nil {
		log.Printf("[report][schedule] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build schedule"})
		return
	}
	c.JSON(http.StatusOK, days)
}

// WeeklyHours godoc
// @Summary Weekly work hours
// @Description Estimated minutes per due date over the next 7 days
// @Tags reports
// @Produce json
// @Success 200 {array} schedule.WorkHoursDay
// @Router /reports/weekly-hours [get]
func (h *ReportHandler) WeeklyHours(c *gin.Context) {
	days, err := h.service.WeeklyHours(c.Request.Context())
	if err != nil {
		log.Printf("[report][weekly-hours] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build weekly hours"})
		return
	}
	c.JSON(http.StatusOK, days)
}

// Gantt godoc
// @Summary Gantt chart layout
// @Tags reports
// @Produce json
// @Success 200 {object} gantt.Chart
// @Router /reports/gantt [get]
func (h *ReportHandler) Gantt(c *gin.Context) {
	chart, err := h.service.Gantt(c.Request.Context())
	if err != nil {
		log.Printf("[report][gantt] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build gantt chart"})
		return
	}
	c.JSON(http.StatusOK, chart)
}

// Summary godoc
// @Summary Dashboard summary
// @Tags reports
// @Produce json
// @Success 200 {object} services.Summary
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		log.Printf("[report][summary] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
