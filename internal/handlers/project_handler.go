package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"suilog/internal/services"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Get godoc
// @Summary Get the project
// @Tags project
// @Produce json
// @Success 200 {object} models.Project
// @Router /project [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.service.Get(c.Request.Context())
	if err != nil {
		log.Printf("[project][get] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Update godoc
// @Summary Update project name and description
// @Tags project
// @Accept json
// @Produce json
// @Param input body object true "Project data"
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]string
// @Router /project [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	project, err := h.service.Update(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrProjectCompleted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Project is already completed"})
			return
		}
		log.Printf("[project][update] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// AddMember godoc
// @Summary Add a project member
// @Tags project
// @Accept json
// @Produce json
// @Param input body object true "Member wallet address"
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /project/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	project, err := h.service.AddMember(c.Request.Context(), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Member already exists"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[project][member][add] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}
	c.JSON(http.StatusOK, project)
}

// RemoveMember godoc
// @Summary Remove a project member
// @Tags project
// @Produce json
// @Param address path string true "Member wallet address"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /project/members/{address} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, err := h.service.RemoveMember(c.Request.Context(), c.Param("address"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		log.Printf("[project][member][remove] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// RequestCompletionCode godoc
// @Summary Request a completion confirmation code
// @Description Sends a one-time confirmation code to the given email
// @Tags project
// @Accept json
// @Produce json
// @Param input body object true "Email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /project/complete/request-code [post]
func (h *ProjectHandler) RequestCompletionCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.service.RequestCompletionCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrResendThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many codes requested, try again later"})
		case errors.Is(err, services.ErrProjectCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Project is already completed"})
		default:
			log.Printf("[project][request-code] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send confirmation code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Confirmation code sent"})
}

// Complete godoc
// @Summary Complete the project
// @Description Mints a completion proof NFT to the recipient wallet, then marks the project completed
// @Tags project
// @Accept json
// @Produce json
// @Param input body object true "Recipient wallet, optional email and confirmation code"
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /project/complete [post]
func (h *ProjectHandler) Complete(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required"`
		Email     string `json:"email"`
		Code      string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	project, err := h.service.Complete(c.Request.Context(), services.CompleteRequest{
		Recipient: req.Recipient,
		Email:     req.Email,
		Code:      req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Project is already completed"})
		case errors.Is(err, services.ErrConfirmationMissing),
			errors.Is(err, services.ErrCodeInvalid),
			errors.Is(err, services.ErrCodeExpired),
			errors.Is(err, services.ErrTooManyAttempts),
			errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[project][complete] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete project"})
		}
		return
	}
	c.JSON(http.StatusOK, project)
}

// Certificate godoc
// @Summary Download the completion certificate
// @Tags project
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /project/certificate [get]
func (h *ProjectHandler) Certificate(c *gin.Context) {
	path, err := h.service.CertificatePath(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoCertificate) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No certificate available"})
			return
		}
		log.Printf("[project][certificate] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get certificate"})
		return
	}

	filename := filepath.Base(path)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
