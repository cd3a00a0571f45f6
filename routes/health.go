package routes

import (
	"github.com/gin-gonic/gin"

	confighandler "github.com/tau-lavender/graffity-report/handlers/config"
	healthhandler "github.com/tau-lavender/graffity-report/handlers/health"
)

func HealthRoutes(r *gin.Engine, h *healthhandler.Handler) {
	r.GET("/health", h.Live)

	api := r.Group("/api")
	{
		api.GET("/db/health", h.Database)
		api.GET("/storage/health", h.Storage)
		api.GET("/config", confighandler.GetConfig)
	}
}
