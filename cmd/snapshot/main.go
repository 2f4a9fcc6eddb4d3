// Command snapshot generates a static price cache file. It is meant to
// run offline (cron) so the frontend can load recent prices without
// hitting live fetchers.
package main

import (
	"flag"
	"fmt"
	"os"

	"tc.com/price-checker/pkg/config"
	"tc.com/price-checker/pkg/logging"
	"tc.com/price-checker/pkg/snapshot"
)

var (
	configFile = flag.String("config", "config/config.yaml", "Path to configuration file")
	all        = flag.Bool("all", false, "Generate all configured presets")
	dest       = flag.String("dest", "", "Single destination")
	checkin    = flag.String("checkin", "", "Check-in date (YYYY-MM-DD)")
	checkout   = flag.String("checkout", "", "Check-out date (YYYY-MM-DD)")
	output     = flag.String("output", "", "Output file (defaults to the configured path)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	generator := snapshot.NewGenerator(logger)

	var entries []snapshot.Entry
	switch {
	case *all:
		for _, preset := range cfg.Snapshot.Presets {
			entry, err := generator.Generate(preset.Destination, preset.CheckIn, preset.CheckOut)
			if err != nil {
				logger.Error("Failed to generate entry", "destination", preset.Destination, "error", err)
				os.Exit(1)
			}
			entries = append(entries, entry)
		}
	case *dest != "" && *checkin != "" && *checkout != "":
		entry, err := generator.Generate(*dest, *checkin, *checkout)
		if err != nil {
			logger.Error("Failed to generate entry", "destination", *dest, "error", err)
			os.Exit(1)
		}
		entries = append(entries, entry)
	default:
		fmt.Fprintln(os.Stderr, "Provide --dest --checkin --checkout or use --all")
		os.Exit(1)
	}

	path := *output
	if path == "" {
		path = cfg.Snapshot.Output
	}

	if err := generator.Write(path, entries); err != nil {
		logger.Error("Failed to write snapshot", "error", err)
		os.Exit(1)
	}
}
