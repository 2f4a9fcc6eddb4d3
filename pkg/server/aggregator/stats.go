package aggregator

import (
	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/server/sources"
)

// computeStats returns the lowest and average price-per-night over
// records with a strictly positive price, rounded to 2 decimal places.
// Both are nil when no record qualifies.
func computeStats(records []sources.PriceRecord) (lowest, average *decimal.Decimal) {
	var (
		min   decimal.Decimal
		sum   decimal.Decimal
		count int64
	)

	for _, rec := range records {
		if !rec.PricePerNight.IsPositive() {
			continue
		}
		if count == 0 || rec.PricePerNight.LessThan(min) {
			min = rec.PricePerNight
		}
		sum = sum.Add(rec.PricePerNight)
		count++
	}

	if count == 0 {
		return nil, nil
	}

	low := min.Round(2)
	avg := sum.Div(decimal.NewFromInt(count)).Round(2)
	return &low, &avg
}
