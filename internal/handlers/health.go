package handlers

import (
	"github.com/gin-gonic/gin"
)

// HealthCheck reports that the server is up.
func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
}
