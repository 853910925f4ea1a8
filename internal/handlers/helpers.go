package handlers

import "github.com/gin-gonic/gin"

// getWalletAddress pulls the address stored by the auth middleware.
func getWalletAddress(c *gin.Context) (string, bool) {
	v, ok := c.Get("wallet_address")
	if !ok {
		return "", false
	}
	addr, ok := v.(string)
	if !ok || addr == "" {
		return "", false
	}
	return addr, true
}
