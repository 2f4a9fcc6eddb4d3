// Package ota provides online travel agency price fetchers: the
// official partner pricing API and sources derived from it.
package ota

import "errors"

var (
	// ErrAPIKeyRequiredExpedia indicates that an API key is required for Expedia.
	ErrAPIKeyRequiredExpedia = errors.New("api_key is required for Expedia")
	// ErrDelegateRequiredDespegar indicates that Despegar requires a delegate fetcher.
	ErrDelegateRequiredDespegar = errors.New("delegate fetcher is required for Despegar")
	// ErrInvalidMarkup indicates that the markup percentage is invalid.
	ErrInvalidMarkup = errors.New("markup_percent must be greater than -100")
)
