/*
Package configs is responsible for loading and parsing the relay's configuration settings.

All values come from operating system environment variables: the running environment,
the listening port, CORS/WebSocket allowed origins, the static asset directory,
the chat history capacity, and an optional log level override.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultPort is the port the relay listens on when PORT is unset.
	DefaultPort = 3000

	// DefaultHistoryCapacity is the number of chat messages replayed to new joiners.
	DefaultHistoryCapacity = 200

	// DefaultStaticDir is the directory holding the browser client.
	DefaultStaticDir = "public"
)

// AppConfig contains all configuration parameters required for the relay to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int
	LogLevel    string

	// Security Settings
	AllowedOrigins []string

	// Chat Settings
	StaticDir       string
	HistoryCapacity int
}

// IsDevelopment reports whether the relay runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the relay configuration from environment variables.
// Each item falls back to a default; numeric items are converted and range-checked.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intFromEnv("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the valid range (%d-%d)", port, 1, 65535)
	}
	cfg.Port = port

	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))

	// --- Security Settings ---
	cfg.AllowedOrigins = []string{}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	// --- Chat Settings ---
	cfg.StaticDir = os.Getenv("STATIC_DIR")
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}

	capacity, err := intFromEnv("HISTORY_CAPACITY", DefaultHistoryCapacity)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", capacity)
	}
	cfg.HistoryCapacity = capacity

	return cfg, nil
}

// intFromEnv parses the named variable as an int, returning def when it is unset.
func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
