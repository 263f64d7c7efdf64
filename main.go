// @title TaxMaster Backend API
// @version 1.0
// @description Course progress tracking service for the TaxMaster learning platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"taxmaster_backend/internal/app"
	"taxmaster_backend/internal/config"
	"taxmaster_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
