package handlers

import (
	"net/http"

	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the last dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}
