package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	healthhandler "github.com/tau-lavender/graffity-report/handlers/health"
	photoshandler "github.com/tau-lavender/graffity-report/handlers/photos"
	reportshandler "github.com/tau-lavender/graffity-report/handlers/reports"
	"github.com/tau-lavender/graffity-report/middleware"
	reportsvc "github.com/tau-lavender/graffity-report/services/reports"
)

// SetupRouter wires the HTTP surface around the report service. The
// wide-open CORS policy is intentional: the Telegram mini-app is
// served from a different origin.
func SetupRouter(service *reportsvc.Service, health *healthhandler.Handler) *gin.Engine {

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.BodySizeLimit(middleware.MaxUploadSize()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	reports := reportshandler.NewHandler(service)
	photos := photoshandler.NewHandler(service)

	ReportsRoutes(r, reports)
	PhotosRoutes(r, photos)
	HealthRoutes(r, health)

	return r
}
