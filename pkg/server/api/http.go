package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/metrics"
	"tc.com/price-checker/pkg/server/aggregator"
	"tc.com/price-checker/pkg/server/cache"
	"tc.com/price-checker/pkg/server/hotels"
	"tc.com/price-checker/pkg/server/sources"
	"tc.com/price-checker/pkg/version"
)

// Server represents the HTTP API server.
type Server struct {
	addr        string
	corsOrigins []string
	aggregator  *aggregator.Aggregator
	cache       *cache.Cache
	server      *http.Server
	logger      *logging.Logger
	wsServer    *WebSocketServer // Optional WebSocket server for streaming
	now         func() time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, agg *aggregator.Aggregator, comparisonCache *cache.Cache, corsOrigins []string, logger *logging.Logger) *Server {
	return &Server{
		addr:        addr,
		corsOrigins: corsOrigins,
		aggregator:  agg,
		cache:       comparisonCache,
		logger:      logger,
		now:         time.Now,
	}
}

// SetWebSocketServer sets the WebSocket server for streaming updates.
func (s *Server) SetWebSocketServer(ws *WebSocketServer) {
	s.wsServer = ws
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check-prices", s.handleCheckPrices)
	mux.HandleFunc("/api/destinations", s.handleDestinations)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)

	handler := withCORS(s.corsOrigins, withLogging(s.logger, mux))

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.logger.Info("Stopping HTTP server")
		return s.server.Shutdown(ctx)
	}
	return nil
}

// checkPricesRequest is the body of POST /api/check-prices.
type checkPricesRequest struct {
	Destination  string `json:"destination"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	Guests       int    `json:"guests"`
	Rooms        int    `json:"rooms"`
	ForceRefresh bool   `json:"force_refresh"`
}

// handleCheckPrices handles POST /api/check-prices.
func (s *Server) handleCheckPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req checkPricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, ErrInvalidRequestBody)
		return
	}

	query, err := s.buildQuery(&req)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err)
		return
	}

	key := query.CacheKey()

	// force_refresh bypasses the lookup but still writes back below.
	if !query.ForceRefresh {
		if cached, ok := s.cache.Lookup(key); ok {
			metrics.RecordCacheLookup(true)
			s.logger.Debug("Serving comparison from cache", "key", key)
			s.sendJSON(w, cached)
			return
		}
		metrics.RecordCacheLookup(false)
	}

	comparison := s.aggregator.Compare(r.Context(), query)
	s.cache.Store(key, comparison)

	if s.wsServer != nil {
		s.wsServer.SendUpdate(comparison)
	}

	s.sendJSON(w, comparison)
}

// buildQuery validates the request and constructs the immutable query.
// Validation is fail-fast: date format first, then ordering, then the
// future check.
func (s *Server) buildQuery(req *checkPricesRequest) (sources.PriceQuery, error) {
	if req.Destination == "" {
		return sources.PriceQuery{}, ErrDestinationRequired
	}

	checkIn, err := time.Parse(sources.DateFormat, req.CheckIn)
	if err != nil {
		return sources.PriceQuery{}, fmt.Errorf("%w: checkin %q", ErrInvalidDateFormat, req.CheckIn)
	}
	checkOut, err := time.Parse(sources.DateFormat, req.CheckOut)
	if err != nil {
		return sources.PriceQuery{}, fmt.Errorf("%w: checkout %q", ErrInvalidDateFormat, req.CheckOut)
	}

	if !checkOut.After(checkIn) {
		return sources.PriceQuery{}, ErrCheckoutNotAfterCheckin
	}
	if checkIn.Before(s.now()) {
		return sources.PriceQuery{}, ErrCheckinInPast
	}

	guests := req.Guests
	if guests == 0 {
		guests = 2
	}
	if guests < 0 {
		return sources.PriceQuery{}, ErrGuestsMustBePositive
	}

	rooms := req.Rooms
	if rooms == 0 {
		rooms = 1
	}
	if rooms < 0 {
		return sources.PriceQuery{}, ErrRoomsMustBePositive
	}

	return sources.PriceQuery{
		Destination:  req.Destination,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Guests:       guests,
		Rooms:        rooms,
		ForceRefresh: req.ForceRefresh,
	}, nil
}

// handleDestinations handles GET /api/destinations.
func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.sendJSON(w, map[string]interface{}{
		"destinations": hotels.Destinations(),
	})
}

// handleStatus handles GET /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.sendJSON(w, map[string]interface{}{
		"status":        "online",
		"service":       "price-checker",
		"version":       version.Version,
		"cache_entries": s.cache.Len(),
		"timestamp":     s.now().Format(time.RFC3339),
	})
}

// handleHealth handles /health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// sendJSON sends a JSON response.
func (s *Server) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// sendError sends a JSON error response with a human-readable message.
func (s *Server) sendError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
