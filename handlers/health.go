package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is a liveness endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
