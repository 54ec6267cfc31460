// Package config reads process settings from the environment and an optional
// .env file, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables.
const (
	EnvLogLevel        = "PHOTOFX_LOG_LEVEL"
	EnvCacheCapacity   = "PHOTOFX_CACHE_CAPACITY"
	EnvCacheEvictBatch = "PHOTOFX_CACHE_EVICT_BATCH"
	EnvPreviewMaxDim   = "PHOTOFX_PREVIEW_MAX_DIM"
	EnvJPEGQuality     = "PHOTOFX_JPEG_QUALITY"
)

// Config holds the server settings.
type Config struct {
	LogLevel zerolog.Level

	// CacheCapacity and CacheEvictBatch bound the preview cache.
	CacheCapacity   int
	CacheEvictBatch int

	// PreviewMaxDim is the longest side previews are scaled down to before
	// filtering.
	PreviewMaxDim int

	// JPEGQuality is used for JPEG output, in [1,100].
	JPEGQuality int
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		LogLevel:        zerolog.InfoLevel,
		CacheCapacity:   50,
		CacheEvictBatch: 10,
		PreviewMaxDim:   512,
		JPEGQuality:     100,
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are not an
// error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv builds a Config from lookup, starting from Defaults. Values that do
// not parse or are out of range keep their default and are described in the
// returned warnings.
func FromEnv(lookup func(string) (string, bool)) (Config, []string) {
	cfg := Defaults()
	var warnings []string

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: invalid log level %q, using %s", EnvLogLevel, v, cfg.LogLevel))
		} else {
			cfg.LogLevel = level
		}
	}

	ints := []struct {
		name   string
		target *int
		min    int
		max    int
	}{
		{EnvCacheCapacity, &cfg.CacheCapacity, 1, 1 << 20},
		{EnvCacheEvictBatch, &cfg.CacheEvictBatch, 1, 1 << 20},
		{EnvPreviewMaxDim, &cfg.PreviewMaxDim, 16, 1 << 15},
		{EnvJPEGQuality, &cfg.JPEGQuality, 1, 100},
	}
	for _, f := range ints {
		v, ok := lookup(f.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < f.min || n > f.max {
			warnings = append(warnings, fmt.Sprintf("%s: invalid value %q (want %d..%d), using %d", f.name, v, f.min, f.max, *f.target))
			continue
		}
		*f.target = n
	}
	return cfg, warnings
}

// Load reads the optional .env file and then the process environment.
func Load() (Config, []string, error) {
	if err := LoadDotEnv(); err != nil {
		return Defaults(), nil, err
	}
	cfg, warnings := FromEnv(os.LookupEnv)
	return cfg, warnings, nil
}

// NewLogger returns a timestamped JSON logger writing to w at level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "photo-fx-mcp").Logger()
}
