// Package aggregator fans a price query out to the applicable fetchers
// and merges their results into one comparison.
package aggregator

import (
	"context"
	"sync"
	"time"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/metrics"
	"tc.com/price-checker/pkg/server/sources"
)

// Aggregator runs fetchers concurrently with independent failure
// isolation: one fetcher's failure never prevents the others' results
// from being used. Fetchers are never canceled early; the aggregation
// waits for all of them.
type Aggregator struct {
	resolver *sources.Resolver
	logger   *logging.Logger
}

// New creates a new Aggregator.
func New(resolver *sources.Resolver, logger *logging.Logger) *Aggregator {
	return &Aggregator{
		resolver: resolver,
		logger:   logger,
	}
}

// Compare fetches prices from all applicable fetchers and builds the
// comparison. It never fails: when every fetcher comes back empty the
// mock fetcher substitutes a synthetic result.
func (a *Aggregator) Compare(ctx context.Context, query sources.PriceQuery) *PriceComparison {
	start := time.Now()
	defer func() {
		metrics.RecordAggregation(time.Since(start))
	}()

	fetchers := a.resolver.Resolve(query)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []sources.PriceRecord
	)

	for _, fetcher := range fetchers {
		wg.Add(1)
		go func(f sources.Fetcher) {
			defer wg.Done()

			recs, err := f.Fetch(ctx, query)
			metrics.RecordFetch(f.Name(), len(recs), err != nil)
			if err != nil {
				// Upstream failures stay local to the fetcher.
				a.logger.Warn("Fetcher failed", "fetcher", f.Name(), "destination", query.Destination, "error", err.Error())
				return
			}
			if len(recs) == 0 {
				return
			}

			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
		}(fetcher)
	}

	wg.Wait()

	if len(records) == 0 {
		records = a.mockFallback(ctx, query)
	}

	lowest, average := computeStats(records)

	return &PriceComparison{
		Destination:  query.Destination,
		CheckIn:      query.CheckIn.Format(sources.DateFormat),
		CheckOut:     query.CheckOut.Format(sources.DateFormat),
		Guests:       query.Guests,
		Rooms:        query.Rooms,
		Nights:       query.Nights(),
		Results:      records,
		LowestPrice:  lowest,
		AveragePrice: average,
		GeneratedAt:  time.Now(),
	}
}

// mockFallback substitutes synthetic records so the comparison is
// never empty.
func (a *Aggregator) mockFallback(ctx context.Context, query sources.PriceQuery) []sources.PriceRecord {
	mock := a.resolver.Mock()
	if mock == nil {
		return nil
	}

	a.logger.Warn("All fetchers returned empty, falling back to mock data", "destination", query.Destination)
	metrics.RecordMockFallback()

	recs, err := mock.Fetch(ctx, query)
	if err != nil {
		a.logger.Error("Mock fallback failed", "error", err.Error())
		return nil
	}
	return recs
}
