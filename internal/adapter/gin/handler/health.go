package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. No auth, no dependencies.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now(),
	})
}
