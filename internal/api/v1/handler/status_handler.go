package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sid-client/internal/features/heartbeat/domain"
)

// StatusProvider exposes the heartbeat reporter snapshot
type StatusProvider interface {
	State() domain.State
	LastReport() (domain.Report, bool)
}

// StatusHandler serves the heartbeat status
type StatusHandler struct {
	provider StatusProvider
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(provider StatusProvider) *StatusHandler {
	return &StatusHandler{
		provider: provider,
	}
}

// SetupRoutes configures the routes for this handler
func (h *StatusHandler) SetupRoutes(router *gin.Engine) {
	statusGroup := router.Group("/api/v1/status")
	{
		statusGroup.GET("/heartbeat", h.getHeartbeat)
	}
}

// getHeartbeat returns the reporter state and its last report
func (h *StatusHandler) getHeartbeat(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "heartbeat reporting is disabled",
		})
		return
	}

	response := gin.H{
		"state": h.provider.State(),
	}
	if report, ok := h.provider.LastReport(); ok {
		response["lastReport"] = report
	}

	c.JSON(http.StatusOK, response)
}
