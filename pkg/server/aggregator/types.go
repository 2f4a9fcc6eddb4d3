package aggregator

import (
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/server/sources"
)

// PriceComparison is the merged, statistic-annotated result of fetching
// from all applicable sources for one query. Results appear in fetcher
// completion order; the order is not stable between runs.
type PriceComparison struct {
	Destination  string                `json:"destination"`
	CheckIn      string                `json:"checkin"`
	CheckOut     string                `json:"checkout"`
	Guests       int                   `json:"guests"`
	Rooms        int                   `json:"rooms"`
	Nights       int                   `json:"nights"`
	Results      []sources.PriceRecord `json:"results"`
	LowestPrice  *decimal.Decimal      `json:"lowest_price"`
	AveragePrice *decimal.Decimal      `json:"average_price"`
	GeneratedAt  time.Time             `json:"timestamp"`
}
