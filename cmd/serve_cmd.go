package cmd

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/handlers"
	"portfolio-gallery/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the portfolio pages and their JSON API via HTTP.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustInit()
			serveWebsite(cfg)
		},
	}
}

// serveWebsite runs the web server
func serveWebsite(cfg *config.Config) {
	svc := services.Default()
	server := handlers.NewServer(cfg, svc, services.NewSessions(svc))

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), server.Routes()); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
