package db

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tau-lavender/graffity-report/models"
	"github.com/tau-lavender/graffity-report/utils"
)

var DB *gorm.DB

// Configured reports whether a database connection string is present.
// Without one the service runs on the in-memory fallback store.
func Configured() bool {
	return os.Getenv("DB_URL") != ""
}

// InitDB connects to Postgres and migrates the schema. The DB_URL
// check belongs to the caller: an unset DB_URL selects the fallback
// store, a set-but-broken one is a startup failure.
func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "DB_URL is not set")
		panic("database URL is not configured")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("could not connect to the database")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		utils.LogError(err, "Error accessing the underlying connection pool")
		panic("could not configure the connection pool")
	}
	sqlDB.SetMaxOpenConns(15)
	sqlDB.SetMaxIdleConns(5)

	err = DB.AutoMigrate(
		&models.User{},
		&models.GraffitiReport{},
		&models.ReportPhoto{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("could not migrate database")
	}

	utils.LogSuccess("Database connection successful")
}
