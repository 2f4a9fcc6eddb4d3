package sources

import (
	"tc.com/price-checker/pkg/server/hotels"
)

// Resolver selects the applicable fetchers for a query. A destination
// that matches the hotel alias table gets the live fetchers (official
// API, derived, scrape); anything else gets the mock fetcher alone.
type Resolver struct {
	live []Fetcher
	mock Fetcher
}

// NewResolver creates a resolver over the configured fetchers. Fetchers
// of type mock become the fallback; everything else is a live fetcher.
func NewResolver(fetchers []Fetcher) *Resolver {
	r := &Resolver{}
	for _, f := range fetchers {
		if f.Type() == FetcherTypeMock {
			r.mock = f
			continue
		}
		r.live = append(r.live, f)
	}
	return r
}

// Resolve returns the fetchers applicable to the query.
func (r *Resolver) Resolve(query PriceQuery) []Fetcher {
	if _, ok := hotels.Resolve(query.Destination); ok && len(r.live) > 0 {
		out := make([]Fetcher, len(r.live))
		copy(out, r.live)
		return out
	}
	if r.mock == nil {
		return nil
	}
	return []Fetcher{r.mock}
}

// Mock returns the fallback mock fetcher, if configured.
func (r *Resolver) Mock() Fetcher {
	return r.mock
}
