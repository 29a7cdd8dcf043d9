package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"catalogo-tienda/models"
)

// Config holds runtime configuration read from the environment (prefix CATALOG_)
type Config struct {
	Env     string `default:"development"`
	Port    string `default:"8080"`
	BaseURL string `split_words:"true" default:"http://localhost:8080"`

	DatabaseURL     string `split_words:"true"`
	RedisURL        string `split_words:"true"`
	GoogleCredsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	ChromePath      string `split_words:"true"`
	SettingsFile    string `split_words:"true" default:"catalog.yaml"`

	Images ImageConfig
}

// ImageConfig tunes the per-build image preload
type ImageConfig struct {
	Workers      int           `default:"8"`
	FetchTimeout time.Duration `split_words:"true" default:"10s"`
	MaxDimension int           `split_words:"true" default:"200"`
	JPEGQuality  int           `envconfig:"JPEG_QUALITY" default:"80"`
	MaxBytes     int64         `split_words:"true" default:"15728640"`
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address. PORT values with a leading colon are accepted.
func (c *Config) Addr() string {
	port := c.Port
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	return "0.0.0.0:" + port
}

// LoadEnvFile loads .env outside production. Values in the file override
// the process environment, which matches how the service is run locally.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if os.Getenv("CATALOG_ENV") == "production" {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("catalog", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if cfg.Images.Workers < 1 {
		cfg.Images.Workers = 1
	}
	if cfg.Images.MaxDimension < 16 {
		return nil, fmt.Errorf("image max dimension too small: %d", cfg.Images.MaxDimension)
	}
	if cfg.Images.JPEGQuality < 1 || cfg.Images.JPEGQuality > 100 {
		return nil, fmt.Errorf("jpeg quality must be within 1-100, got %d", cfg.Images.JPEGQuality)
	}
	return &cfg, nil
}

// LoadSettings reads default catalog settings from a YAML file. Unknown
// keys are rejected. A missing file yields the built-in defaults.
func LoadSettings(path string) (models.CatalogSettings, error) {
	settings := models.DefaultCatalogSettings()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}
	if len(data) == 0 {
		return settings, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &settings, yaml.Strict()); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("settings file %s: %w", path, err)
	}
	return settings, nil
}
