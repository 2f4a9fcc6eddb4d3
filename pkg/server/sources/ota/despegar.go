package ota

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/server/sources"
)

// sourceLabelDespegar is the source name attached to Despegar records.
const sourceLabelDespegar = "Despegar"

const defaultMarkupPercent = 8.0

// DespegarFetcher models Despegar as a source sharing the official API
// fetcher's inventory with a fixed percentage markup. It constructs new
// records; the delegate's records are never mutated.
type DespegarFetcher struct {
	name     string
	delegate sources.Fetcher
	factor   decimal.Decimal
	logger   *logging.Logger
}

// NewDespegarFetcherFromConfig creates a new DespegarFetcher from config.
// The delegate fetcher is passed through the config map, like the logger.
func NewDespegarFetcherFromConfig(config map[string]interface{}) (sources.Fetcher, error) {
	delegate := sources.GetDelegateFromConfig(config)
	if delegate == nil {
		return nil, fmt.Errorf("%w", ErrDelegateRequiredDespegar)
	}

	markup := sources.GetFloatFromConfig(config, "markup_percent", defaultMarkupPercent)
	if markup <= -100 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMarkup, markup)
	}

	logger := sources.GetLoggerFromConfig(config)

	f := &DespegarFetcher{
		name:     "despegar",
		delegate: delegate,
		factor:   decimal.NewFromInt(1).Add(decimal.NewFromFloat(markup).Div(decimal.NewFromInt(100))),
		logger:   logger,
	}

	f.logger.Info("Initializing Despegar fetcher", "delegate", delegate.Name(), "markup_percent", markup)
	return f, nil
}

// Name returns the fetcher name.
func (f *DespegarFetcher) Name() string {
	return f.name
}

// Type returns the fetcher type.
func (f *DespegarFetcher) Type() sources.FetcherType {
	return sources.FetcherTypeDerived
}

// Fetch reuses the delegate's records and applies the markup.
func (f *DespegarFetcher) Fetch(ctx context.Context, query sources.PriceQuery) ([]sources.PriceRecord, error) {
	base, err := f.delegate.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("delegate fetch: %w", err)
	}
	if len(base) == 0 {
		return nil, nil
	}

	now := time.Now()
	records := make([]sources.PriceRecord, 0, len(base))
	for _, rec := range base {
		records = append(records, sources.PriceRecord{
			Source:        sourceLabelDespegar,
			HotelName:     rec.HotelName,
			PricePerNight: rec.PricePerNight.Mul(f.factor).Round(2),
			TotalPrice:    rec.TotalPrice.Mul(f.factor).Round(2),
			Currency:      rec.Currency,
			URL:           fmt.Sprintf("https://www.despegar.com/hoteles/search?dest=%s", url.QueryEscape(query.Destination)),
			RetrievedAt:   now,
		})
	}

	f.logger.Debug("Derived Despegar prices", "records", len(records))
	return records, nil
}
