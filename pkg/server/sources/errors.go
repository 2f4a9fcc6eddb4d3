// Package sources provides price fetcher interfaces and implementations.
package sources

import "errors"

var (
	// ErrUnexpectedStatus indicates an unexpected HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status code")
	// ErrRateLimitExceeded indicates that a rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidResponse indicates an invalid response from the source.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrInvalidConfig indicates that the fetcher configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrAPIKeyRequired indicates that an API key is required.
	ErrAPIKeyRequired = errors.New("API key is required")
	// ErrDelegateRequired indicates that a derived fetcher has no delegate.
	ErrDelegateRequired = errors.New("delegate fetcher is required")
	// ErrNoRecordsExtracted indicates that no price records were extracted.
	ErrNoRecordsExtracted = errors.New("no price records extracted")
	// ErrLoggerNotProvided indicates that no logger was provided in config.
	ErrLoggerNotProvided = errors.New("logger not provided in config")
)
