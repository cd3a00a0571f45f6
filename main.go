package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tau-lavender/graffity-report/db"
	_ "github.com/tau-lavender/graffity-report/docs"
	healthhandler "github.com/tau-lavender/graffity-report/handlers/health"
	"github.com/tau-lavender/graffity-report/routes"
	reportsvc "github.com/tau-lavender/graffity-report/services/reports"
	"github.com/tau-lavender/graffity-report/store"
	"github.com/tau-lavender/graffity-report/utils"
)

// @title Graffiti Report API
// @version 1.0
// @description Backend for the graffiti report Telegram mini-app
// @host localhost:8080
// @BasePath /
func main() {

	gin.SetMode(gin.ReleaseMode)

	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file, reading configuration from the system environment")
	}

	var reportStore store.ReportStore
	if db.Configured() {
		db.InitDB()
		reportStore = store.NewGormStore(db.DB)
	} else {
		utils.LogInfo("DB_URL is not set, running on the in-memory store (no durability)")
		reportStore = store.NewMemoryStore()
	}

	storage := utils.NewStorageFromEnv()
	storage.EnsureBucket(context.Background())

	service := reportsvc.New(
		reportStore,
		utils.NewDadataClient(),
		storage,
		os.Getenv("ADMIN_PASSWORD"),
	)

	r := routes.SetupRouter(service, healthhandler.NewHandler(reportStore, storage))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
