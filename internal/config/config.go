// Package config loads process-wide configuration: CPPDOC_* environment
// variables (via godotenv + os.Getenv, adapted from the teacher's
// internal/config/config.go LoadConfig), and the project/component
// declaration file referenced by spec §6's initProject(cfgPath).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's environment-derived configuration.
type Config struct {
	OutputDir     string
	MaxIncludeDep int
	TabWidth      int
	NoIgnore      bool
}

// Load reads a .env file if present, then applies CPPDOC_* environment
// variables over documented defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		OutputDir:     os.Getenv("CPPDOC_OUTPUT_DIR"),
		MaxIncludeDep: 10,
		TabWidth:      4,
		NoIgnore:      false,
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if v := os.Getenv("CPPDOC_MAX_INCLUDE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxIncludeDep = n
		}
	}
	if v := os.Getenv("CPPDOC_TAB_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TabWidth = n
		}
	}
	if v := os.Getenv("CPPDOC_NO_IGNORE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoIgnore = b
		}
	}

	return cfg
}
