package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration for errors
func Validate(cfg *Config) error {
	if cfg.Server.CacheTTL.ToDuration() <= 0 {
		return fmt.Errorf("server config: %w", ErrInvalidCacheTTL)
	}

	if len(cfg.Fetchers) == 0 {
		return fmt.Errorf("%w", ErrNoFetchersConfigured)
	}
	for i, fetcher := range cfg.Fetchers {
		if err := validateFetcherConfig(&fetcher); err != nil {
			return fmt.Errorf("fetcher %d (%s.%s): %w", i, fetcher.Type, fetcher.Name, err)
		}
	}

	for i, preset := range cfg.Snapshot.Presets {
		if preset.Destination == "" || preset.CheckIn == "" || preset.CheckOut == "" {
			return fmt.Errorf("snapshot preset %d: %w", i, ErrInvalidSnapshotPreset)
		}
	}

	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateFetcherConfig(cfg *FetcherConfig) error {
	validTypes := []string{"ota", "derived", "scrape", "mock"}
	typeValid := false
	for _, t := range validTypes {
		if strings.ToLower(cfg.Type) == t {
			typeValid = true
			break
		}
	}
	if !typeValid {
		return fmt.Errorf("%w: %s (must be one of: %s)", ErrInvalidFetcherType, cfg.Type, strings.Join(validTypes, ", "))
	}

	if cfg.Name == "" {
		return fmt.Errorf("%w", ErrFetcherNameRequired)
	}

	return nil
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	levelValid := false
	for _, l := range validLevels {
		if strings.ToLower(cfg.Level) == l {
			levelValid = true
			break
		}
	}
	if !levelValid {
		return fmt.Errorf("%w: %s (must be one of: %s)", ErrInvalidLogLevel, cfg.Level, strings.Join(validLevels, ", "))
	}

	formatValid := strings.ToLower(cfg.Format) == "json" || strings.ToLower(cfg.Format) == "text"
	if !formatValid {
		return fmt.Errorf("%w: %s (must be 'json' or 'text')", ErrInvalidLogFormat, cfg.Format)
	}

	return nil
}
