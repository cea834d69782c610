package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/api/handlers"
	"github.com/propedge/propedge/internal/api/middleware"
	"github.com/propedge/propedge/internal/services"
)

// NewRouter builds the HTTP surface over the latest published run.
func NewRouter(store *services.ResultStore, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	healthHandler := handlers.NewHealthHandler(store)
	picksHandler := handlers.NewPicksHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.GET("/api/picks", picksHandler.GetPicks)
	router.GET("/", dashboardHandler.GetDashboard)

	return router
}
