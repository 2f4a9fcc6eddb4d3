// Package config provides configuration loading and validation for price-checker.
package config

import "errors"

var (
	// ErrNoFetchersConfigured indicates that no price fetchers are configured.
	ErrNoFetchersConfigured = errors.New("at least one price fetcher must be configured")
	// ErrInvalidFetcherType indicates that the fetcher type is invalid.
	ErrInvalidFetcherType = errors.New("invalid fetcher type")
	// ErrFetcherNameRequired indicates that fetcher name is required.
	ErrFetcherNameRequired = errors.New("fetcher name is required")
	// ErrInvalidCacheTTL indicates that the cache TTL is invalid.
	ErrInvalidCacheTTL = errors.New("cache_ttl must be positive")
	// ErrInvalidLogLevel indicates that the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates that the log format is invalid.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidSnapshotPreset indicates that a snapshot preset is incomplete.
	ErrInvalidSnapshotPreset = errors.New("snapshot preset requires destination, checkin and checkout")
)
