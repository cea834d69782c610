package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propedge/propedge/internal/services"
	"github.com/propedge/propedge/pkg/utils"
)

type DashboardHandler struct {
	store *services.ResultStore
}

func NewDashboardHandler(store *services.ResultStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GetDashboard serves the latest rendered page.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	page, ok := h.store.Page()
	if !ok {
		utils.SendUnavailable(c, "dashboard not generated yet")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
