package handlers

import (
	"net/http"

	"lexbook/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest dependency health snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	// The monitor runs on a timer; before its first tick the snapshot is
	// zero-valued and the server is simply reported as up.
	if !status.CheckedAt.IsZero() && !status.Backend {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": "ok", "health": status})
}
