package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by applyEnv.
const (
	EnvOutDir       = "ROSECONV_OUT_DIR"
	EnvRasterFormat = "ROSECONV_RASTER_FORMAT"
	EnvStrict       = "ROSECONV_STRICT"
	EnvLogLevel     = "ROSECONV_LOG_LEVEL"
	EnvLogFile      = "ROSECONV_LOG_FILE"
)

// loadDotEnv loads variables from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnv applies ROSECONV_* environment overrides to the config.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvOutDir); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv(EnvRasterFormat); v != "" {
		cfg.Output.RasterFormat = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Map.Strict = strict
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.LogFile = v
	}
	return nil
}
