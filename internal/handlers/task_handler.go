package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"suilog/internal/models"
	"suilog/internal/repositories"
	"suilog/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// parseDate accepts plain dates and full RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type taskRequest struct {
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	Priority           string  `json:"priority" binding:"required"`
	EstimatedTime      int     `json:"estimated_time"`
	ScheduledDate      string  `json:"scheduled_date" binding:"required"`
	ScheduledStartTime string  `json:"scheduled_start_time"`
	ScheduledEndTime   string  `json:"scheduled_end_time"`
	IsRecurring        bool    `json:"is_recurring"`
	RecurringPattern   string  `json:"recurring_pattern"`
	RecurringEndDate   *string `json:"recurring_end_date"`
	RecurringDayOfWeek *int    `json:"recurring_day_of_week"`
	StartDate          string  `json:"start_date"`
	DueDate            string  `json:"due_date" binding:"required"`
	AssignedTo         *string `json:"assigned_to"`
}

func (r taskRequest) toTask() (models.Task, error) {
	scheduled, err := parseDate(r.ScheduledDate)
	if err != nil {
		return models.Task{}, errors.New("invalid scheduled_date")
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return models.Task{}, errors.New("invalid due_date")
	}
	start := scheduled
	if r.StartDate != "" {
		start, err = parseDate(r.StartDate)
		if err != nil {
			return models.Task{}, errors.New("invalid start_date")
		}
	}

	task := models.Task{
		Title:              r.Title,
		Description:        r.Description,
		Priority:           models.TaskPriority(r.Priority),
		EstimatedTime:      r.EstimatedTime,
		ScheduledDate:      scheduled,
		ScheduledStartTime: r.ScheduledStartTime,
		ScheduledEndTime:   r.ScheduledEndTime,
		IsRecurring:        r.IsRecurring,
		RecurringPattern:   r.RecurringPattern,
		RecurringDayOfWeek: r.RecurringDayOfWeek,
		StartDate:          start,
		DueDate:            due,
		Status:             models.StatusPending,
		AssignedTo:         r.AssignedTo,
	}
	if r.RecurringEndDate != nil && *r.RecurringEndDate != "" {
		end, err := parseDate(*r.RecurringEndDate)
		if err != nil {
			return models.Task{}, errors.New("invalid recurring_end_date")
		}
		task.RecurringEndDate = &end
	}
	return task, nil
}

// Create godoc
// @Summary Create a task
// @Description Creates a task; weekly recurring tasks are expanded into one instance per occurrence
// @Tags tasks
// @Accept json
// @Produce json
// @Param input body taskRequest true "Task data"
// @Success 201 {array} models.Task
// @Failure 400 {object} map[string]string
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	task, err := req.toTask()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &task)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[task][create] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	log.Printf("[task][create] created %d task(s): %s", len(created), req.Title)
	c.JSON(http.StatusCreated, created)
}

// GetAll godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assigned_to query string false "Filter by assignee wallet address"
// @Param unassigned query bool false "Only unassigned tasks"
// @Param recurring_parent_id query string false "Filter by recurring series parent"
// @Success 200 {array} models.Task
// @Router /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	filter := models.TaskFilter{
		Unassigned: c.Query("unassigned") == "true",
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		filter.Priority = &p
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		filter.AssignedTo = &assignedTo
	}
	if parentID := c.Query("recurring_parent_id"); parentID != "" {
		filter.RecurringParentID = &parentID
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetByID godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("[task][get] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param input body taskRequest true "Task data"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	task, err := req.toTask()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), &task)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[task][update] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("[task][delete] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// UpdateStatus godoc
// @Summary Change task status
// @Description Moves a task between pending, in-progress and completed
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param input body object true "New status"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), models.TaskStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[task][status] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// Complete godoc
// @Summary Complete a task
// @Description Marks a task completed, recording actual time spent
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param input body object false "Actual time in minutes"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	var req struct {
		ActualTime *int `json:"actual_time"`
	}
	// body is optional; actual time falls back to the estimate
	_ = c.ShouldBindJSON(&req)

	task, err := h.service.Complete(c.Request.Context(), c.Param("id"), req.ActualTime)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[task][complete] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// Assign godoc
// @Summary Assign a task
// @Description Assigns a task to a wallet address, or unassigns it when address is empty
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param input body object true "Assignee wallet address"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/assign [post]
func (h *TaskHandler) Assign(c *gin.Context) {
	var req struct {
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	task, err := h.service.Assign(c.Request.Context(), c.Param("id"), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[task][assign] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign task"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}
