package routes

import (
	"github.com/gin-gonic/gin"

	reportshandler "github.com/tau-lavender/graffity-report/handlers/reports"
)

func ReportsRoutes(r *gin.Engine, h *reportshandler.Handler) {
	api := r.Group("/api")
	{
		api.POST("/apply", h.Apply)
		api.GET("/applications", h.List)
		api.POST("/applications/moderate", h.Moderate)
	}
}
