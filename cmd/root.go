package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/services"
)

// Configuration flags
var (
	configFile  string
	secretKey   string
	bucketName  string
	catalogFile string
	portNumber  string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolio-gallery",
		Short: "Portfolio Gallery serves a filterable photo and video portfolio",
		Long: `Portfolio Gallery is a command line application that serves a catalog of
photo sets, films and hybrid projects stored in a local file or in Google Cloud
Storage. Visitors browse the catalog by category and open entries in a lightbox.`,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (overrides GALLERY_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&secretKey, "secret-key", "s", "", "Set the SECRET_KEY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "f", "", "Set the CATALOG_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newListEntriesCmd())
	rootCmd.AddCommand(newShowEntryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if configFile != "" {
		os.Setenv(config.ConfigFileEnv, configFile)
	}

	if secretKey != "" {
		os.Setenv("SECRET_KEY", secretKey)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if catalogFile != "" {
		os.Setenv("CATALOG_FILE", catalogFile)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	// Load configuration from defaults, config file and environment variables
	return config.Load()
}

// mustInit loads configuration and initializes the catalog service
func mustInit() *config.Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	services.InitService(cfg)
	return cfg
}
