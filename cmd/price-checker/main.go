package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tc.com/price-checker/pkg/config"
	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/metrics"
	"tc.com/price-checker/pkg/server/aggregator"
	"tc.com/price-checker/pkg/server/api"
	"tc.com/price-checker/pkg/server/cache"
	"tc.com/price-checker/pkg/server/sources"
	"tc.com/price-checker/pkg/version"

	// Import fetchers to register them
	_ "tc.com/price-checker/pkg/server/sources/mock"
	_ "tc.com/price-checker/pkg/server/sources/ota"
	_ "tc.com/price-checker/pkg/server/sources/scrape"
)

var (
	configFile = flag.String("config", "config/config.yaml", "Path to configuration file")
	showVer    = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("price-checker version %s\n", version.Version)
		os.Exit(0)
	}

	// Load .env if present; environment already set wins.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Starting price-checker", "version", version.Version)

	// Initialize metrics
	if cfg.Metrics.Enabled {
		metrics.Init()
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metrics.ServeHTTP(cfg.Metrics.Addr); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- runServer(ctx, cfg, logger)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig.String())
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down gracefully...")
	<-shutdownCtx.Done()
	logger.Info("Shutdown complete")
}

func runServer(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	fetchers, err := buildFetchers(cfg, logger)
	if err != nil {
		return err
	}
	if len(fetchers) == 0 {
		return fmt.Errorf("no fetchers available")
	}

	resolver := sources.NewResolver(fetchers)
	agg := aggregator.New(resolver, logger)
	comparisonCache := cache.New(cfg.Server.CacheTTL.ToDuration())

	server := api.NewServer(cfg.Server.HTTP.Addr, agg, comparisonCache, cfg.Server.CORSOrigins, logger)

	// Start WebSocket server if enabled
	var wsServer *api.WebSocketServer
	if cfg.Server.WebSocket.Enabled {
		wsServer = api.NewWebSocketServer(cfg.Server.WebSocket.Addr, logger)
		server.SetWebSocketServer(wsServer)

		go func() {
			if err := wsServer.Start(ctx); err != nil {
				logger.Error("WebSocket server error", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		if wsServer != nil {
			wsServer.Stop()
		}
	}()

	return server.Start()
}

// buildFetchers creates all enabled fetchers from configuration. Derived
// fetchers wrap another fetcher, so they are created in a second pass
// once their delegates exist.
func buildFetchers(cfg *config.Config, logger *logging.Logger) ([]sources.Fetcher, error) {
	var fetchers []sources.Fetcher
	byName := make(map[string]sources.Fetcher)

	for _, fetcherCfg := range cfg.Fetchers {
		if !fetcherCfg.Enabled || fetcherCfg.Type == string(sources.FetcherTypeDerived) {
			continue
		}

		fetcher, err := createFetcher(fetcherCfg, logger, nil)
		if err != nil {
			logger.Warn("Failed to create fetcher", "type", fetcherCfg.Type, "name", fetcherCfg.Name, "error", err)
			continue
		}

		fetchers = append(fetchers, fetcher)
		byName[fetcher.Name()] = fetcher
		logger.Info("Fetcher created", "type", fetcherCfg.Type, "name", fetcher.Name())
	}

	for _, fetcherCfg := range cfg.Fetchers {
		if !fetcherCfg.Enabled || fetcherCfg.Type != string(sources.FetcherTypeDerived) {
			continue
		}

		delegateName := fetcherCfg.GetString("delegate", "expedia")
		delegate, ok := byName[delegateName]
		if !ok {
			logger.Warn("Delegate not available for derived fetcher", "name", fetcherCfg.Name, "delegate", delegateName)
			continue
		}

		fetcher, err := createFetcher(fetcherCfg, logger, delegate)
		if err != nil {
			logger.Warn("Failed to create fetcher", "type", fetcherCfg.Type, "name", fetcherCfg.Name, "error", err)
			continue
		}

		fetchers = append(fetchers, fetcher)
		logger.Info("Fetcher created", "type", fetcherCfg.Type, "name", fetcher.Name(), "delegate", delegateName)
	}

	return fetchers, nil
}

func createFetcher(fetcherCfg config.FetcherConfig, logger *logging.Logger, delegate sources.Fetcher) (sources.Fetcher, error) {
	if fetcherCfg.Config == nil {
		fetcherCfg.Config = make(map[string]interface{})
	}
	fetcherCfg.Config["logger"] = logger
	if delegate != nil {
		fetcherCfg.Config["delegate"] = delegate
	}

	return sources.Create(fetcherCfg.Type, fetcherCfg.Name, fetcherCfg.Config)
}
