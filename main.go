// @title TRIZ Edu API
// @version 1.0
// @description Backend for the TRIZ course: modules, tests, progress, trainer and the GigaChat tutor.

// @host localhost:8080
// @BasePath /

package main

import (
	"flag"
	"log"
	"triz_edu_backend/internal/app"
	"triz_edu_backend/internal/config"
	"triz_edu_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
