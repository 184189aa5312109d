// @title Gesture Presentation API
// @version 1.0
// @description Backend for the gesture-controlled presentation tool: gesture
// @description event ingestion, session registry and detection analytics.

// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"gesture_presentation_backend/internal/app"
	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	setupDemo := flag.Bool("setup-demo", false, "seed demo user, session and gesture logs, then exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly
	cfg.SetupDemo = *setupDemo

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	if *setupDemo {
		if err := application.SetupDemo(); err != nil {
			log.Fatalf("Failed to setup demo data: %v", err)
		}
		log.Println("Demo data ready, exiting")
		return
	}

	application.Run()
}
