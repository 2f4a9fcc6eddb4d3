package ota

import (
	"tc.com/price-checker/pkg/server/sources"
)

func init() {
	// Register all OTA fetchers
	sources.Register("ota.expedia", NewExpediaFetcherFromConfig)
	sources.Register("derived.despegar", NewDespegarFetcherFromConfig)
}
