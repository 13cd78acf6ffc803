package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Design tool API
	FigmaToken  string
	FigmaFileID string
	FigmaAPIURL string
	GroupName   string
	APITimeout  time.Duration

	// SVG download
	FetchTimeout     time.Duration
	FetchMaxAttempts int
	FetchBackoffStep time.Duration
	FetchWorkers     int

	// Outputs
	CragsOutput     string
	MetricsTextfile string

	LogLevel string

	// Preview server
	Port          string
	ArtifactsDir  string
	PreviewAPIKey string
}

func Load() Config {
	cfg := Config{
		FigmaToken:  os.Getenv("FIGMA_TOKEN"),
		FigmaFileID: envOr("FIGMA_FILE_ID", "OcCwkLCqY0MmlPyQe6uSJ7"),
		FigmaAPIURL: envOr("FIGMA_API_URL", "https://api.figma.com"),
		GroupName:   envOr("GROUP_NAME", "Crags"),
		APITimeout:  envDuration("API_TIMEOUT", 60*time.Second),

		FetchTimeout:     envDuration("FETCH_TIMEOUT", 5*time.Second),
		FetchMaxAttempts: envInt("FETCH_MAX_ATTEMPTS", 3),
		FetchBackoffStep: envDuration("FETCH_BACKOFF_STEP", 2*time.Second),
		FetchWorkers:     envInt("FETCH_WORKERS", 1),

		CragsOutput:     envOr("CRAGS_OUTPUT", "./src/map-data/crags.ts"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),

		LogLevel: envOr("LOG_LEVEL", "info"),

		Port:          envOr("PORT", "8090"),
		ArtifactsDir:  envOr("ARTIFACTS_DIR", "."),
		PreviewAPIKey: os.Getenv("PREVIEW_API_KEY"),
	}

	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 60 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}
	if cfg.FetchMaxAttempts <= 0 {
		cfg.FetchMaxAttempts = 3
	}
	if cfg.FetchBackoffStep < 0 {
		cfg.FetchBackoffStep = 2 * time.Second
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 1
	}

	return cfg
}

// Validate checks the settings the crag extraction run depends on.
func (c Config) Validate() error {
	if c.FigmaToken == "" {
		return fmt.Errorf("FIGMA_TOKEN is required")
	}
	if c.FigmaFileID == "" {
		return fmt.Errorf("FIGMA_FILE_ID is required")
	}
	if c.GroupName == "" {
		return fmt.Errorf("GROUP_NAME is required")
	}
	if c.CragsOutput == "" {
		return fmt.Errorf("CRAGS_OUTPUT is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
