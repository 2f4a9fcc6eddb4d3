package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tc.com/price-checker/pkg/server/sources"
)

func testQuery(destination string) sources.PriceQuery {
	checkIn, _ := time.Parse(sources.DateFormat, "2026-06-01")
	checkOut, _ := time.Parse(sources.DateFormat, "2026-06-05")
	return sources.PriceQuery{
		Destination: destination,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      2,
		Rooms:       1,
	}
}

const structuredPage = `<!DOCTYPE html>
<html><body>
<div data-testid="property-card">
  <h3 data-testid="title">Dreams Riviera Cancun</h3>
  <span data-testid="price-and-discounted-price">US$ 720</span>
</div>
<div data-testid="property-card">
  <h3 data-testid="title">Secrets The Vine</h3>
  <span data-testid="price-and-discounted-price">US$ 1,080.50</span>
</div>
<div data-testid="property-card">
  <h3 data-testid="title">Cheap Hostel</h3>
  <span data-testid="price-and-discounted-price">US$ 20</span>
</div>
</body></html>`

const unstructuredPage = `<!DOCTYPE html>
<html><body>
<p>Great deals from US$ 450 per stay, or USD 512.75 with breakfast.</p>
<p>Budget option: US$ 30 (parking only). Premium suite USD 999.</p>
</body></html>`

func TestBookingFetcher_StructuredExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ss") != "Cancun" {
			t.Errorf("Unexpected ss param: %s", r.URL.Query().Get("ss"))
		}
		fmt.Fprint(w, structuredPage)
	}))
	defer server.Close()

	fetcher, err := NewBookingFetcherFromConfig(map[string]interface{}{
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("NewBookingFetcherFromConfig failed: %v", err)
	}

	if fetcher.Type() != sources.FetcherTypeScrape {
		t.Errorf("Expected type scrape, got %v", fetcher.Type())
	}

	records, err := fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// The 20-unit card is below the price floor.
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Source != "Booking.com" {
		t.Errorf("Expected source Booking.com, got %s", first.Source)
	}
	if first.HotelName != "Dreams Riviera Cancun" {
		t.Errorf("Unexpected hotel name: %s", first.HotelName)
	}
	if !first.TotalPrice.Equal(decimal.NewFromInt(720)) {
		t.Errorf("Expected total 720, got %s", first.TotalPrice)
	}
	// 720 over 4 nights
	if !first.PricePerNight.Equal(decimal.NewFromInt(180)) {
		t.Errorf("Expected per-night 180, got %s", first.PricePerNight)
	}

	second := records[1]
	if !second.TotalPrice.Equal(decimal.NewFromFloat(1080.50)) {
		t.Errorf("Expected total 1080.50, got %s", second.TotalPrice)
	}
}

func TestBookingFetcher_RegexFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, unstructuredPage)
	}))
	defer server.Close()

	fetcher, err := NewBookingFetcherFromConfig(map[string]interface{}{
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("NewBookingFetcherFromConfig failed: %v", err)
	}

	records, err := fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// 450, 512.75 and 999 pass the floor; 30 does not.
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Source names rotate by position.
	expectedSources := []string{"Booking.com", "Hotels.com", "Expedia"}
	for i, rec := range records {
		if rec.Source != expectedSources[i] {
			t.Errorf("Record %d: expected source %s, got %s", i, expectedSources[i], rec.Source)
		}
		if rec.HotelName != "Hotel in Cancun" {
			t.Errorf("Record %d: unexpected hotel name %s", i, rec.HotelName)
		}
	}

	if !records[0].TotalPrice.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Expected first total 450, got %s", records[0].TotalPrice)
	}
	if !records[1].TotalPrice.Equal(decimal.NewFromFloat(512.75)) {
		t.Errorf("Expected second total 512.75, got %s", records[1].TotalPrice)
	}
}

func TestBookingFetcher_NothingExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><p>No prices here.</p></body></html>")
	}))
	defer server.Close()

	fetcher, err := NewBookingFetcherFromConfig(map[string]interface{}{
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("NewBookingFetcherFromConfig failed: %v", err)
	}

	_, err = fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if !errors.Is(err, sources.ErrNoRecordsExtracted) {
		t.Fatalf("Expected ErrNoRecordsExtracted, got %v", err)
	}
}

func TestBookingFetcher_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher, err := NewBookingFetcherFromConfig(map[string]interface{}{
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("NewBookingFetcherFromConfig failed: %v", err)
	}

	_, err = fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if !errors.Is(err, sources.ErrUnexpectedStatus) {
		t.Fatalf("Expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"US$ 1,080.50", "1080.5", true},
		{"720", "720", true},
		{"no numbers", "", false},
	}

	for _, c := range cases {
		got, ok := parsePrice(c.input)
		if ok != c.ok {
			t.Errorf("parsePrice(%q): ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got.String() != c.want {
			t.Errorf("parsePrice(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}
