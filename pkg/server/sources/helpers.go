// Package sources provides price fetcher interfaces and implementations.
package sources

import (
	"time"

	"tc.com/price-checker/pkg/logging"
)

// GetLoggerFromConfig extracts logger from config map or returns a default noop logger.
// Fetchers should use this to get the logger passed from main.go.
// If no logger is configured, returns a noop logger to prevent nil pointer dereferences.
func GetLoggerFromConfig(config map[string]interface{}) *logging.Logger {
	if loggerInterface, ok := config["logger"]; ok {
		if logger, ok := loggerInterface.(*logging.Logger); ok {
			return logger
		}
	}

	// return default noop logger if logger not found
	return logging.NewNoopLogger()
}

// GetDelegateFromConfig extracts a delegate fetcher from config map.
// Derived fetchers receive their delegate this way, same as the logger.
func GetDelegateFromConfig(config map[string]interface{}) Fetcher {
	if delegateInterface, ok := config["delegate"]; ok {
		if delegate, ok := delegateInterface.(Fetcher); ok {
			return delegate
		}
	}
	return nil
}

// GetTimeoutFromConfig extracts a timeout in milliseconds from config,
// falling back to the given default.
func GetTimeoutFromConfig(config map[string]interface{}, def time.Duration) time.Duration {
	if t, ok := config["timeout"].(int); ok {
		return time.Duration(t) * time.Millisecond
	}
	return def
}

// GetStringFromConfig extracts a string value from config with a default.
func GetStringFromConfig(config map[string]interface{}, key, def string) string {
	if v, ok := config[key].(string); ok && v != "" {
		return v
	}
	return def
}

// GetFloatFromConfig extracts a numeric value from config with a default.
func GetFloatFromConfig(config map[string]interface{}, key string, def float64) float64 {
	switch v := config[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
