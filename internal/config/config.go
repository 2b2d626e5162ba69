package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Textbook bundle location (modules/ and collections/ live under it).
	BundlePath string

	// Auth
	APIKey string

	// Batch parsing
	WorkerCount int

	// Recursion guard for section/list nesting.
	MaxDepth int
}

func Load() Config {
	cfg := Config{
		Port:        envOr("PORT", "8090"),
		BundlePath:  envOr("BUNDLE_PATH", "./osbooks-biology-bundle"),
		APIKey:      os.Getenv("STUDYLINK_API_KEY"),
		WorkerCount: envInt("WORKER_COUNT", 4),
		MaxDepth:    envInt("MAX_SECTION_DEPTH", 64),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 64
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STUDYLINK_API_KEY is required")
	}
	if c.BundlePath == "" {
		return fmt.Errorf("BUNDLE_PATH is required")
	}
	if _, err := os.Stat(c.BundlePath); err != nil {
		return fmt.Errorf("BUNDLE_PATH %s: %w", c.BundlePath, err)
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
