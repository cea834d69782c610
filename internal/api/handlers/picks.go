package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/services"
	"github.com/propedge/propedge/pkg/utils"
)

type PicksHandler struct {
	store *services.ResultStore
}

func NewPicksHandler(store *services.ResultStore) *PicksHandler {
	return &PicksHandler{store: store}
}

// GetPicks returns the latest run's picks. An optional ?league= query
// narrows the response to one league.
func (h *PicksHandler) GetPicks(c *gin.Context) {
	if raw := c.Query("league"); raw != "" {
		league := models.League(strings.ToLower(raw))
		if league != models.LeagueNBA && league != models.LeagueNFL {
			utils.SendValidationError(c, "unsupported league: "+raw)
			return
		}
		result, ok := h.store.Result(league)
		if !ok {
			utils.SendNotFound(c, "no results for league yet")
			return
		}
		utils.SendSuccess(c, result)
		return
	}

	results, updatedAt := h.store.Results()
	if len(results) == 0 {
		utils.SendUnavailable(c, "no run has completed yet")
		return
	}
	utils.SendSuccess(c, gin.H{
		"leagues":    results,
		"updated_at": updatedAt.UTC(),
	})
}
