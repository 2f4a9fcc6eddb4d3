package sources

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FetcherType represents the type of price fetcher
type FetcherType string

const (
	FetcherTypeOTA     FetcherType = "ota"
	FetcherTypeDerived FetcherType = "derived"
	FetcherTypeScrape  FetcherType = "scrape"
	FetcherTypeMock    FetcherType = "mock"
)

// DateFormat is the wire format for check-in/check-out dates.
const DateFormat = "2006-01-02"

// KnownSourceNames lists the source labels the mock fetcher guarantees
// coverage for, and the rotation used by the scrape fallback.
var KnownSourceNames = []string{"Booking.com", "Hotels.com", "Expedia"}

// PriceQuery describes one price lookup. Immutable once constructed;
// CheckIn must precede CheckOut (enforced by the request handler).
type PriceQuery struct {
	Destination  string
	CheckIn      time.Time
	CheckOut     time.Time
	Guests       int
	Rooms        int
	ForceRefresh bool
}

// Nights returns the stay length in whole days.
func (q PriceQuery) Nights() int {
	return int(q.CheckOut.Sub(q.CheckIn).Hours() / 24)
}

// CacheKey returns the deterministic cache key for this query.
// Field order is fixed by the schema; ForceRefresh is not part of the key.
func (q PriceQuery) CacheKey() string {
	return strings.Join([]string{
		q.Destination,
		q.CheckIn.Format(DateFormat),
		q.CheckOut.Format(DateFormat),
		strconv.Itoa(q.Guests),
		strconv.Itoa(q.Rooms),
	}, "|")
}

// PriceRecord is one price found at one source for a query.
// Records are never mutated after creation; derived fetchers must
// construct new records instead of aliasing a shared one.
type PriceRecord struct {
	Source        string          `json:"source"`
	HotelName     string          `json:"hotel_name"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	URL           string          `json:"url"`
	RetrievedAt   time.Time       `json:"last_updated"`
}

// Fetcher defines the capability all price fetchers implement: given a
// query, produce zero or more price records. A returned error is logged
// by the aggregator but never propagated to the caller; upstream
// failures degrade to "no records".
type Fetcher interface {
	// Name returns the unique name of this fetcher
	Name() string

	// Type returns the type of this fetcher
	Type() FetcherType

	// Fetch produces price records for the query
	Fetch(ctx context.Context, query PriceQuery) ([]PriceRecord, error)
}

// FetcherFactory is a function that creates a new Fetcher instance
type FetcherFactory func(config map[string]interface{}) (Fetcher, error)
