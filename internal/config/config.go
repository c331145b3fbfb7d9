package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// MediaMode selects which half of the catalog the carousel browses
type MediaMode string

const (
	MediaModeScenes MediaMode = "scenes"
	MediaModeImages MediaMode = "images"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog server configuration
type ServerConfig struct {
	URL    string `mapstructure:"url"`     // Base URL, e.g. http://localhost:9999
	APIKey string `mapstructure:"api_key"` // Sent as the ApiKey header, empty for open servers
}

// CatalogConfig holds search and pagination configuration
type CatalogConfig struct {
	Media     MediaMode `mapstructure:"media"`     // "scenes" or "images"
	PageSize  int       `mapstructure:"page_size"` // Items requested per page
	Sort      string    `mapstructure:"sort"`      // Default sort field
	Direction string    `mapstructure:"direction"` // "asc" or "desc"
}

// PlayerConfig holds external player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds presentation configuration
type UIConfig struct {
	OverlayTimeoutMS int `mapstructure:"overlay_timeout_ms"` // Idle window before the overlay hides
	SearchDebounceMS int `mapstructure:"search_debounce_ms"` // Quiet interval before a search commits
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{},
		Catalog: CatalogConfig{
			Media:     MediaModeScenes,
			PageSize:  40,
			Sort:      "date",
			Direction: "desc",
		},
		Player: PlayerConfig{
			Command: "mpv",
		},
		UI: UIConfig{
			OverlayTimeoutMS: 2000,
			SearchDebounceMS: 500,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// DefaultDataPath returns the directory for the session database
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	// Environment variable overrides
	v.SetEnvPrefix("REEL")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate normalizes and checks configuration values
func (c *Config) Validate() error {
	switch c.Catalog.Media {
	case MediaModeScenes, MediaModeImages:
	case "":
		c.Catalog.Media = MediaModeScenes
	default:
		return fmt.Errorf("catalog.media must be %q or %q, got %q",
			MediaModeScenes, MediaModeImages, c.Catalog.Media)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog.page_size must be positive, got %d", c.Catalog.PageSize)
	}
	if c.UI.OverlayTimeoutMS <= 0 {
		c.UI.OverlayTimeoutMS = 2000
	}
	if c.UI.SearchDebounceMS <= 0 {
		c.UI.SearchDebounceMS = 500
	}
	return nil
}

// IsConfigured returns true if the server URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}
