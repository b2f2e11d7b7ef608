// Package config loads server configuration from the environment,
// with a .env file honored when present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration.
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	MaxUploadBytes int64
}

// Load reads configuration from the environment. A missing .env file
// is not an error; defaults cover local development.
func Load() *Config {
	_ = godotenv.Load()

	// PORT accepts either a bare port ("8080") or a listen address
	// (":8080", "0.0.0.0:8080").
	port := os.Getenv("PORT")
	switch {
	case port == "":
		port = ":8080"
	case !strings.Contains(port, ":"):
		port = ":" + port
	}

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = "debug"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	maxUpload := int64(64 << 20) // 64MB upload cap
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			maxUpload = v
		}
	}

	return &Config{
		Port:           port,
		GinMode:        mode,
		LogLevel:       level,
		MaxUploadBytes: maxUpload,
	}
}
