package main

import (
	"log"
	"net/http"
	"os"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/handlers"
	"portfolio-gallery/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	services.InitService(cfg)
	svc := services.Default()

	// Set up HTTP handlers
	server := handlers.NewServer(cfg, svc, services.NewSessions(svc))

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), server.Routes()); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
