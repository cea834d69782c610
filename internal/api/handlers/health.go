package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propedge/propedge/internal/services"
)

type HealthHandler struct {
	store *services.ResultStore
}

func NewHealthHandler(store *services.ResultStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "propedge",
		"time":    time.Now().UTC(),
	})
}

// GetReady returns 200 only once the first run has published a page.
func (h *HealthHandler) GetReady(c *gin.Context) {
	if _, ok := h.store.Page(); ok {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
}
