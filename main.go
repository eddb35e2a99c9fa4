package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"docintake/cmd"
	"docintake/internal/config"
	"docintake/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Initialize logger; fall back to defaults when the full configuration
	// is incomplete so subcommands can report what is missing
	cfg, err := config.Load()
	if err != nil {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	mainLog := logger.WithComponent("main")
	mainLog.Info().Msg("Starting document intake application")

	cmd.Execute()

	mainLog.Info().Msg("Document intake application shutdown")
	os.Exit(0)
}
