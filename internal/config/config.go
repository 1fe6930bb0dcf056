// Package config loads the nurical configuration file. Configuration is
// stored as TOML under the nurical home directory (~/.nurical by default),
// alongside the OAuth credentials and the cached token. A missing file
// just means defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/haneul-labs/nurical/internal/crawler"
	"github.com/haneul-labs/nurical/internal/filter"
	"github.com/haneul-labs/nurical/internal/gcal"
)

// Config is the nurical configuration.
type Config struct {
	// BaseURL is the listing site.
	BaseURL string `toml:"base_url"`
	// PageUnit is the listing page size.
	PageUnit int `toml:"page_unit"`
	// MaxPages caps listing pagination.
	MaxPages int `toml:"max_pages"`
	// CalendarID skips the interactive picker when set.
	CalendarID string `toml:"calendar_id"`
	// RequestsPerSecond throttles every Calendar API call.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// Burst is the rate limiter burst size.
	Burst int `toml:"burst"`
	// Filter overrides the built-in personal criteria.
	Filter Filter `toml:"filter"`
}

// Filter holds the personal-mode criteria overrides.
type Filter struct {
	Regions []string `toml:"regions"`
	Genres  []string `toml:"genres"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:           crawler.DefaultBaseURL,
		PageUnit:          crawler.DefaultPageUnit,
		MaxPages:          crawler.DefaultMaxPages,
		RequestsPerSecond: gcal.DefaultRateLimit.RequestsPerSecond,
		Burst:             gcal.DefaultRateLimit.BurstSize,
	}
}

// Load reads the config file at path, returning defaults when the file
// does not exist. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Criteria returns the personal-mode filter: the configured override when
// present, the built-in personal criteria otherwise.
func (c Config) Criteria() *filter.Criteria {
	if len(c.Filter.Regions) == 0 && len(c.Filter.Genres) == 0 {
		return filter.Personal()
	}

	crit := filter.Personal()
	if len(c.Filter.Regions) > 0 {
		crit.Regions = c.Filter.Regions
	}
	if len(c.Filter.Genres) > 0 {
		crit.Genres = c.Filter.Genres
	}
	return crit
}

// RateLimit returns the store rate limit from the config.
func (c Config) RateLimit() gcal.RateLimitConfig {
	return gcal.RateLimitConfig{RequestsPerSecond: c.RequestsPerSecond, BurstSize: c.Burst}
}

// Dir returns the nurical home directory (~/.nurical), creating it when
// missing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(home, ".nurical")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the config file path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, "config.toml")
}

// CredentialsPath returns the OAuth client file path inside dir.
func CredentialsPath(dir string) string {
	return filepath.Join(dir, "credentials.json")
}

// TokenPath returns the cached token path inside dir.
func TokenPath(dir string) string {
	return filepath.Join(dir, "token.json")
}
