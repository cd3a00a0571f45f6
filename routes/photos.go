package routes

import (
	"github.com/gin-gonic/gin"

	photoshandler "github.com/tau-lavender/graffity-report/handlers/photos"
)

func PhotosRoutes(r *gin.Engine, h *photoshandler.Handler) {
	api := r.Group("/api")
	{
		api.POST("/upload/photo", h.Upload)
		api.GET("/photo/download/:id", h.Download)
		api.GET("/photo/:id", h.GetURL)
		api.GET("/report/:id/photos", h.ReportPhotos)
	}
}
