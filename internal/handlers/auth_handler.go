package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"suilog/internal/middleware"
	"suilog/internal/wallet"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Connect godoc
// @Summary Connect a wallet
// @Description Validates a Sui wallet address and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body object true "Wallet address"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/connect [post]
func (h *AuthHandler) Connect(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !wallet.IsValidAddress(req.Address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
		return
	}

	address := wallet.Normalize(req.Address)
	token, err := middleware.GenerateToken(address)
	if err != nil {
		log.Printf("[auth][connect] token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	log.Printf("[auth][connect] wallet connected: %s", wallet.Truncate(address))
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"address": address,
	})
}
