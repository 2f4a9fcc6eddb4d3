// Package mock provides a deterministic synthetic price fetcher used
// when no real hotel mapping exists for a query, and as the fallback
// when every live fetcher comes back empty.
package mock

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/server/sources"
)

// Fetcher produces synthetic records covering every known source name,
// so a comparison built from it is never empty.
type Fetcher struct {
	name   string
	logger *logging.Logger
}

// base prices per destination, default applies to unknown destinations
var basePrices = map[string]int64{
	"cancun":         180,
	"cabo san lucas": 210,
	"punta cana":     160,
}

const defaultBasePrice = 150

// one profile per known source name
var profiles = []struct {
	source    string
	factor    string
	hotelName string
	searchURL string
}{
	{"Booking.com", "1.10", "Dreams Resort", "https://booking.com/search?dest=%s"},
	{"Hotels.com", "1.15", "Secrets Resort", "https://hotels.com/search?dest=%s"},
	{"Expedia", "0.95", "Breathless Resort", "https://expedia.com/search?dest=%s"},
}

// NewFetcherFromConfig creates a new mock Fetcher from config.
func NewFetcherFromConfig(config map[string]interface{}) (sources.Fetcher, error) {
	logger := sources.GetLoggerFromConfig(config)

	f := &Fetcher{
		name:   "mock",
		logger: logger,
	}

	f.logger.Info("Initializing mock fetcher", "sources", len(profiles))
	return f, nil
}

// Name returns the fetcher name.
func (f *Fetcher) Name() string {
	return f.name
}

// Type returns the fetcher type.
func (f *Fetcher) Type() sources.FetcherType {
	return sources.FetcherTypeMock
}

// Fetch produces one record per known source name. Deterministic for a
// given query, aside from the retrieval timestamp.
func (f *Fetcher) Fetch(_ context.Context, query sources.PriceQuery) ([]sources.PriceRecord, error) {
	nights := decimal.NewFromInt(int64(query.Nights()))
	base := decimal.NewFromInt(basePriceFor(query.Destination))
	now := time.Now()

	records := make([]sources.PriceRecord, 0, len(profiles))
	for _, p := range profiles {
		factor, err := decimal.NewFromString(p.factor)
		if err != nil {
			return nil, fmt.Errorf("invalid price factor for %s: %w", p.source, err)
		}

		perNight := base.Mul(factor).Round(2)
		records = append(records, sources.PriceRecord{
			Source:        p.source,
			HotelName:     fmt.Sprintf("%s - %s", p.hotelName, query.Destination),
			PricePerNight: perNight,
			TotalPrice:    perNight.Mul(nights).Round(2),
			Currency:      "USD",
			URL:           fmt.Sprintf(p.searchURL, url.QueryEscape(query.Destination)),
			RetrievedAt:   now,
		})
	}

	f.logger.Debug("Generated mock prices", "destination", query.Destination, "records", len(records))
	return records, nil
}

func basePriceFor(destination string) int64 {
	if base, ok := basePrices[strings.ToLower(strings.TrimSpace(destination))]; ok {
		return base
	}
	return defaultBasePrice
}
