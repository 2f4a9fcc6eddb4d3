package sources

import (
	"context"
	"testing"
	"time"

	"tc.com/price-checker/pkg/logging"
)

func TestGetLoggerFromConfig(t *testing.T) {
	logger := logging.NewNoopLogger()

	got := GetLoggerFromConfig(map[string]interface{}{"logger": logger})
	if got != logger {
		t.Error("Expected configured logger to be returned")
	}

	got = GetLoggerFromConfig(map[string]interface{}{})
	if got == nil {
		t.Error("Expected noop logger fallback, got nil")
	}

	got = GetLoggerFromConfig(map[string]interface{}{"logger": "not a logger"})
	if got == nil {
		t.Error("Expected noop logger fallback for wrong type, got nil")
	}
}

func TestGetTimeoutFromConfig(t *testing.T) {
	def := 10 * time.Second

	if got := GetTimeoutFromConfig(map[string]interface{}{"timeout": 5000}, def); got != 5*time.Second {
		t.Errorf("Expected 5s, got %v", got)
	}
	if got := GetTimeoutFromConfig(map[string]interface{}{}, def); got != def {
		t.Errorf("Expected default, got %v", got)
	}
}

func TestGetStringFromConfig(t *testing.T) {
	cfg := map[string]interface{}{"base_url": "https://example.com", "empty": ""}

	if got := GetStringFromConfig(cfg, "base_url", "def"); got != "https://example.com" {
		t.Errorf("Expected configured value, got %s", got)
	}
	if got := GetStringFromConfig(cfg, "empty", "def"); got != "def" {
		t.Errorf("Empty string should fall back to default, got %s", got)
	}
	if got := GetStringFromConfig(cfg, "missing", "def"); got != "def" {
		t.Errorf("Expected default, got %s", got)
	}
}

func TestGetFloatFromConfig(t *testing.T) {
	cfg := map[string]interface{}{"a": 1.5, "b": 2, "c": int64(3)}

	if got := GetFloatFromConfig(cfg, "a", 0); got != 1.5 {
		t.Errorf("Expected 1.5, got %v", got)
	}
	if got := GetFloatFromConfig(cfg, "b", 0); got != 2 {
		t.Errorf("Expected 2, got %v", got)
	}
	if got := GetFloatFromConfig(cfg, "c", 0); got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
	if got := GetFloatFromConfig(cfg, "missing", 8); got != 8 {
		t.Errorf("Expected default, got %v", got)
	}
}

func TestPriceQuery_Nights(t *testing.T) {
	checkIn, _ := time.Parse(DateFormat, "2026-06-01")
	checkOut, _ := time.Parse(DateFormat, "2026-06-05")

	q := PriceQuery{CheckIn: checkIn, CheckOut: checkOut}
	if q.Nights() != 4 {
		t.Errorf("Expected 4 nights, got %d", q.Nights())
	}
}

func TestPriceQuery_CacheKey(t *testing.T) {
	checkIn, _ := time.Parse(DateFormat, "2026-06-01")
	checkOut, _ := time.Parse(DateFormat, "2026-06-05")

	q := PriceQuery{
		Destination: "Cancun",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      2,
		Rooms:       1,
	}

	expected := "Cancun|2026-06-01|2026-06-05|2|1"
	if q.CacheKey() != expected {
		t.Errorf("Expected %q, got %q", expected, q.CacheKey())
	}

	// ForceRefresh is not part of the key.
	q.ForceRefresh = true
	if q.CacheKey() != expected {
		t.Errorf("ForceRefresh must not change the key, got %q", q.CacheKey())
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	if _, err := Create("nope", "missing", nil); err == nil {
		t.Error("Expected error for unknown fetcher")
	}
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	Register("test.dummy", func(_ map[string]interface{}) (Fetcher, error) {
		return &dummyFetcher{}, nil
	})

	f, err := Create("test", "dummy", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if f.Name() != "dummy" {
		t.Errorf("Expected name 'dummy', got %s", f.Name())
	}

	found := false
	for _, name := range List() {
		if name == "test.dummy" {
			found = true
		}
	}
	if !found {
		t.Error("Expected registered fetcher in List()")
	}
}

type dummyFetcher struct{}

func (d *dummyFetcher) Name() string      { return "dummy" }
func (d *dummyFetcher) Type() FetcherType { return FetcherTypeMock }
func (d *dummyFetcher) Fetch(_ context.Context, _ PriceQuery) ([]PriceRecord, error) {
	return nil, nil
}
