package ota

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/server/hotels"
	"tc.com/price-checker/pkg/server/sources"
	"tc.com/price-checker/pkg/version"
)

// sourceLabelExpedia is the source name attached to Expedia records.
const sourceLabelExpedia = "Expedia"

const defaultExpediaBaseURL = "https://partner.expedia.example.com"

// ExpediaFetcher fetches prices from the Expedia partner pricing API
// for pre-registered properties. Requires API key.
type ExpediaFetcher struct {
	name    string
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  *logging.Logger
}

type expediaResponse struct {
	Properties []struct {
		PropertyID string `json:"propertyId"`
		Name       string `json:"name"`
		Offers     []struct {
			TotalPrice struct {
				Value    float64 `json:"value"`
				Currency string  `json:"currency"`
			} `json:"totalPrice"`
		} `json:"offers"`
	} `json:"properties"`
}

// NewExpediaFetcherFromConfig creates a new ExpediaFetcher from config.
func NewExpediaFetcherFromConfig(config map[string]interface{}) (sources.Fetcher, error) {
	apiKey, ok := config["api_key"].(string)
	if !ok || apiKey == "" {
		return nil, fmt.Errorf("%w", ErrAPIKeyRequiredExpedia)
	}

	baseURL := sources.GetStringFromConfig(config, "base_url", defaultExpediaBaseURL)
	timeout := sources.GetTimeoutFromConfig(config, 10*time.Second)
	logger := sources.GetLoggerFromConfig(config)

	f := &ExpediaFetcher{
		name:    "expedia",
		apiKey:  apiKey,
		baseURL: baseURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}

	f.logger.Info("Initializing Expedia fetcher", "base_url", baseURL)
	return f, nil
}

// Name returns the fetcher name.
func (f *ExpediaFetcher) Name() string {
	return f.name
}

// Type returns the fetcher type.
func (f *ExpediaFetcher) Type() sources.FetcherType {
	return sources.FetcherTypeOTA
}

// Fetch looks up the availability price for the hotel mapped to the
// query destination. Returns no records when the destination has no
// hotel mapping or the property is absent from the API response.
func (f *ExpediaFetcher) Fetch(ctx context.Context, query sources.PriceQuery) ([]sources.PriceRecord, error) {
	hotel, ok := hotels.Resolve(query.Destination)
	if !ok {
		f.logger.Debug("No hotel mapping for destination", "destination", query.Destination)
		return nil, nil
	}

	params := url.Values{}
	params.Set("propertyId", hotel.ID)
	params.Set("checkIn", query.CheckIn.Format(sources.DateFormat))
	params.Set("checkOut", query.CheckOut.Format(sources.DateFormat))
	params.Set("adults", strconv.Itoa(query.Guests))
	params.Set("rooms", strconv.Itoa(query.Rooms))

	reqURL := fmt.Sprintf("%s/v3/properties/availability?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", f.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.AgentString())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		f.logger.Warn("Rate limit exceeded", "fetcher", f.name)
		return nil, fmt.Errorf("%w", sources.ErrRateLimitExceeded)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", sources.ErrUnexpectedStatus, resp.StatusCode)
	}

	var data expediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, property := range data.Properties {
		if property.PropertyID != hotel.ID {
			continue
		}
		if len(property.Offers) == 0 {
			f.logger.Debug("Property has no offers", "property", hotel.Name)
			return nil, nil
		}

		offer := property.Offers[0]
		total := decimal.NewFromFloat(offer.TotalPrice.Value)
		if !total.IsPositive() {
			return nil, nil
		}

		nights := query.Nights()
		perNight := total.Div(decimal.NewFromInt(int64(nights))).Round(2)

		currency := offer.TotalPrice.Currency
		if currency == "" {
			currency = "USD"
		}

		name := property.Name
		if name == "" {
			name = hotel.Name
		}

		record := sources.PriceRecord{
			Source:        sourceLabelExpedia,
			HotelName:     name,
			PricePerNight: perNight,
			TotalPrice:    total.Round(2),
			Currency:      currency,
			URL:           reqURL,
			RetrievedAt:   time.Now(),
		}

		f.logger.Debug("Fetched Expedia price", "property", hotel.Name, "per_night", perNight.String())
		return []sources.PriceRecord{record}, nil
	}

	f.logger.Debug("Property absent from API response", "property", hotel.Name)
	return nil, nil
}
