package mock

import "tc.com/price-checker/pkg/server/sources"

func init() {
	sources.Register("mock.static", NewFetcherFromConfig)
}
