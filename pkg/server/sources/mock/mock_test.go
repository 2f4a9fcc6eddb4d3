package mock

import (
	"context"
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

func TestMockFetcher_CoversKnownSources(t *testing.T) {
	fetcher, err := NewFetcherFromConfig(map[string]interface{}{})
	if err != nil {
		t.Fatalf("NewFetcherFromConfig failed: %v", err)
	}

	if fetcher.Name() != "mock" {
		t.Errorf("Expected name 'mock', got '%s'", fetcher.Name())
	}
	if fetcher.Type() != sources.FetcherTypeMock {
		t.Errorf("Expected type mock, got %v", fetcher.Type())
	}

	records, err := fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(records) != len(sources.KnownSourceNames) {
		t.Fatalf("Expected %d records, got %d", len(sources.KnownSourceNames), len(records))
	}

	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.Source] = true
		if !rec.PricePerNight.IsPositive() {
			t.Errorf("Non-positive per-night price for %s: %s", rec.Source, rec.PricePerNight)
		}
		if rec.Currency != "USD" {
			t.Errorf("Expected USD, got %s", rec.Currency)
		}
	}
	for _, name := range sources.KnownSourceNames {
		if !seen[name] {
			t.Errorf("Missing record for source %s", name)
		}
	}
}

func TestMockFetcher_KnownDestinationBasePrice(t *testing.T) {
	fetcher, err := NewFetcherFromConfig(map[string]interface{}{})
	if err != nil {
		t.Fatalf("NewFetcherFromConfig failed: %v", err)
	}

	records, err := fetcher.Fetch(context.Background(), testQuery("Cancun"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Cancun base is 180; Booking.com factor is 1.10.
	for _, rec := range records {
		if rec.Source != "Booking.com" {
			continue
		}
		expected := decimal.NewFromInt(198)
		if !rec.PricePerNight.Equal(expected) {
			t.Errorf("Expected per-night %s, got %s", expected, rec.PricePerNight)
		}
		// 4 nights
		if !rec.TotalPrice.Equal(expected.Mul(decimal.NewFromInt(4))) {
			t.Errorf("Unexpected total price %s", rec.TotalPrice)
		}
	}
}

func TestMockFetcher_UnknownDestinationUsesDefault(t *testing.T) {
	fetcher, err := NewFetcherFromConfig(map[string]interface{}{})
	if err != nil {
		t.Fatalf("NewFetcherFromConfig failed: %v", err)
	}

	records, err := fetcher.Fetch(context.Background(), testQuery("Mars"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Default base is 150; Expedia factor is 0.95.
	for _, rec := range records {
		if rec.Source != "Expedia" {
			continue
		}
		expected := decimal.NewFromFloat(142.50)
		if !rec.PricePerNight.Equal(expected) {
			t.Errorf("Expected per-night %s, got %s", expected, rec.PricePerNight)
		}
	}
}

func TestMockFetcher_Deterministic(t *testing.T) {
	fetcher, err := NewFetcherFromConfig(map[string]interface{}{})
	if err != nil {
		t.Fatalf("NewFetcherFromConfig failed: %v", err)
	}

	first, err := fetcher.Fetch(context.Background(), testQuery("Punta Cana"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	second, err := fetcher.Fetch(context.Background(), testQuery("Punta Cana"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Record counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].PricePerNight.Equal(second[i].PricePerNight) {
			t.Errorf("Prices differ for %s: %s vs %s", first[i].Source, first[i].PricePerNight, second[i].PricePerNight)
		}
		if first[i].HotelName != second[i].HotelName {
			t.Errorf("Hotel names differ: %s vs %s", first[i].HotelName, second[i].HotelName)
		}
	}
}
