package scrape

import "tc.com/price-checker/pkg/server/sources"

func init() {
	sources.Register("scrape.booking", NewBookingFetcherFromConfig)
}
