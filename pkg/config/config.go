package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"portfolio-gallery/pkg/breakpoint"
	"portfolio-gallery/pkg/gallery"
)

// Config holds all configuration for the application
type Config struct {
	SecretKey     string `mapstructure:"secret_key"`
	BucketName    string `mapstructure:"bucket_name"`
	CatalogPrefix string `mapstructure:"catalog_prefix"`
	CatalogFile   string `mapstructure:"catalog_file"`
	Port          string `mapstructure:"port"`
	ViewsDir      string `mapstructure:"views_dir"`
	PublicDir     string `mapstructure:"public_dir"`

	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	MediumWidth    int           `mapstructure:"medium_width"`
	WideWidth      int           `mapstructure:"wide_width"`
	ResizeDebounce time.Duration `mapstructure:"resize_debounce"`

	RowsNarrow int `mapstructure:"rows_narrow"`
	RowsMedium int `mapstructure:"rows_medium"`
	RowsWide   int `mapstructure:"rows_wide"`
}

// ErrCatalogNotSet is returned when neither BUCKET_NAME nor CATALOG_FILE is set
var ErrCatalogNotSet = errors.New("BUCKET_NAME or CATALOG_FILE must be set")

// ErrInvalidBreakpoints is returned when the breakpoint widths are out of order
var ErrInvalidBreakpoints = errors.New("MEDIUM_WIDTH must be positive and below WIDE_WIDTH")

// ErrInvalidRows is returned when a breakpoint is configured with no rows
var ErrInvalidRows = errors.New("ROWS_NARROW, ROWS_MEDIUM and ROWS_WIDE must be at least 1")

// ConfigFileEnv names the environment variable pointing at a config file
const ConfigFileEnv = "GALLERY_CONFIG"

func setDefaults(v *viper.Viper) {
	v.SetDefault("secret_key", "")
	v.SetDefault("bucket_name", "")
	v.SetDefault("catalog_prefix", "catalog/")
	v.SetDefault("catalog_file", "data/projects.json")
	v.SetDefault("port", "8080")
	v.SetDefault("views_dir", "./views")
	v.SetDefault("public_dir", "./public")

	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("session_ttl", 30*time.Minute)

	v.SetDefault("medium_width", breakpoint.DefaultThresholds.Medium)
	v.SetDefault("wide_width", breakpoint.DefaultThresholds.Wide)
	v.SetDefault("resize_debounce", 150*time.Millisecond)

	v.SetDefault("rows_narrow", gallery.DefaultRows[breakpoint.Narrow])
	v.SetDefault("rows_medium", gallery.DefaultRows[breakpoint.Medium])
	v.SetDefault("rows_wide", gallery.DefaultRows[breakpoint.Wide])
}

// Load loads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gallery")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BucketName == "" && c.CatalogFile == "" {
		return ErrCatalogNotSet
	}
	if c.MediumWidth <= 0 || c.MediumWidth >= c.WideWidth {
		return fmt.Errorf("%w: got %d and %d", ErrInvalidBreakpoints, c.MediumWidth, c.WideWidth)
	}
	if c.RowsNarrow < 1 || c.RowsMedium < 1 || c.RowsWide < 1 {
		return ErrInvalidRows
	}
	return nil
}

// Thresholds returns the configured breakpoint widths
func (c *Config) Thresholds() breakpoint.Thresholds {
	return breakpoint.Thresholds{Medium: c.MediumWidth, Wide: c.WideWidth}
}

// Rows returns the configured initial rows per breakpoint
func (c *Config) Rows() gallery.Rows {
	return gallery.Rows{
		breakpoint.Narrow: c.RowsNarrow,
		breakpoint.Medium: c.RowsMedium,
		breakpoint.Wide:   c.RowsWide,
	}
}

// FeedPath returns the path of the JSON catalog feed
func (c *Config) FeedPath() string {
	if c.SecretKey == "" {
		return "/feed"
	}
	return fmt.Sprintf("/%s/feed", c.SecretKey)
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Portfolio URL: http://localhost:%s/portfolio/portfolio\n", c.Port)
	fmt.Printf("Feed URL: http://localhost:%s%s\n", c.Port, c.FeedPath())
}
