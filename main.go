package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/database"
	"github.com/Ferdismit7/qmstool-sub000/router"
	"github.com/Ferdismit7/qmstool-sub000/services"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_NAME", "qmstool"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Migration failed: %v", err)
	}

	utils.InitDB(db)

	// Overdue document review alerts
	monitor := services.NewReviewMonitor(db)
	monitor.CheckOverdue()
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db)

	port := envOr("PORT", "8080")
	utils.InfoLogger.Printf("Starting QMS tool on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
