package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"restaurant-core/config"
	"restaurant-core/database"
	"restaurant-core/router"
	"restaurant-core/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("database init failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}

	r := router.SetupRouter(db)

	addr := ":" + envOr("PORT", "8080")
	utils.InfoLogger.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
