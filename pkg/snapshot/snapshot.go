// Package snapshot generates a static price cache file for frequently
// requested destinations, so the frontend can render without waiting on
// live fetches. It is run offline, typically from cron.
package snapshot

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/server/sources"
)

const currency = "USD"

// variation is the relative spread applied per source to simulate
// dispersion between comparison sites.
type variation struct {
	low  float64
	high float64
}

var sourceVariation = map[string]variation{
	"booking":  {0.97, 1.05},
	"expedia":  {0.95, 1.03},
	"hotels":   {0.98, 1.06},
	"despegar": {0.96, 1.04},
}

var basePriceByDestination = map[string]decimal.Decimal{
	"cancun":         decimal.NewFromInt(180),
	"cabo san lucas": decimal.NewFromInt(210),
	"punta cana":     decimal.NewFromInt(160),
}

var defaultBasePrice = decimal.NewFromInt(190)

// SourcePrice is a single source's quote within an entry.
type SourcePrice struct {
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// EntryMetrics summarizes the quotes of one entry.
type EntryMetrics struct {
	LowestPrice  decimal.Decimal `json:"lowest_price"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

// Entry holds the generated prices for one destination and stay.
type Entry struct {
	Destination string                 `json:"destination"`
	CheckIn     string                 `json:"checkin"`
	CheckOut    string                 `json:"checkout"`
	Nights      int                    `json:"nights"`
	Sources     map[string]SourcePrice `json:"sources"`
	Metrics     EntryMetrics           `json:"metrics"`
}

// File is the on-disk cache document.
type File struct {
	GeneratedAt string  `json:"generated_at"`
	Entries     []Entry `json:"entries"`
}

// Generator produces snapshot entries. The random source is injectable
// so tests can be deterministic.
type Generator struct {
	rng    *rand.Rand
	logger *logging.Logger
	now    func() time.Time
}

// NewGenerator creates a Generator seeded from the current time.
func NewGenerator(logger *logging.Logger) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
		now:    time.Now,
	}
}

// NewGeneratorWithSeed creates a Generator with a fixed seed.
func NewGeneratorWithSeed(logger *logging.Logger, seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		now:    time.Now,
	}
}

// Generate builds one entry for the given destination and stay dates.
func (g *Generator) Generate(destination, checkIn, checkOut string) (Entry, error) {
	ci, err := time.Parse(sources.DateFormat, checkIn)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: checkin %q", ErrInvalidDate, checkIn)
	}
	co, err := time.Parse(sources.DateFormat, checkOut)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: checkout %q", ErrInvalidDate, checkOut)
	}
	if !co.After(ci) {
		return Entry{}, ErrInvalidStay
	}

	nights := int(co.Sub(ci).Hours() / 24)
	base := basePrice(destination)

	quotes := make(map[string]SourcePrice, len(sourceVariation))
	prices := make([]decimal.Decimal, 0, len(sourceVariation))

	// Iterate in a stable order so a seeded generator reproduces.
	for _, name := range sourceNames() {
		v := sourceVariation[name]
		factor := v.low + g.rng.Float64()*(v.high-v.low)
		price := base.Mul(decimal.NewFromFloat(factor)).Round(0)

		quotes[name] = SourcePrice{Price: price, Currency: currency}
		prices = append(prices, price)
	}

	lowest := prices[0]
	sum := decimal.Zero
	for _, p := range prices {
		if p.LessThan(lowest) {
			lowest = p
		}
		sum = sum.Add(p)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2)

	g.logger.Debug("Generated snapshot entry",
		"destination", destination,
		"nights", nights,
		"lowest", lowest.String())

	return Entry{
		Destination: destination,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      nights,
		Sources:     quotes,
		Metrics: EntryMetrics{
			LowestPrice:  lowest,
			AveragePrice: average,
		},
	}, nil
}

// Write marshals the entries into the cache document and writes it to
// the given path.
func (g *Generator) Write(path string, entries []Entry) error {
	doc := File{
		GeneratedAt: g.now().UTC().Format(time.RFC3339),
		Entries:     entries,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	g.logger.Info("Snapshot written", "path", path, "entries", len(entries))
	return nil
}

func basePrice(destination string) decimal.Decimal {
	if base, ok := basePriceByDestination[strings.ToLower(destination)]; ok {
		return base
	}
	return defaultBasePrice
}

func sourceNames() []string {
	names := make([]string, 0, len(sourceVariation))
	for name := range sourceVariation {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
