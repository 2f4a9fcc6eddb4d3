package config

import "time"

// Config is the root configuration structure
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Fetchers []FetcherConfig `yaml:"fetchers"`
	Snapshot SnapshotConfig  `yaml:"snapshot"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the price server component
type ServerConfig struct {
	HTTP        HTTPConfig `yaml:"http"`
	WebSocket   WSConfig   `yaml:"websocket"`
	CacheTTL    Duration   `yaml:"cache_ttl"`
	CORSOrigins []string   `yaml:"cors_origins"`
}

// HTTPConfig configures the HTTP server
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// WSConfig configures the WebSocket streaming server
type WSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// FetcherConfig configures a price fetcher
type FetcherConfig struct {
	Type    string                 `yaml:"type"`
	Name    string                 `yaml:"name"`
	Enabled bool                   `yaml:"enabled"`
	Config  map[string]interface{} `yaml:"config"`
}

// SnapshotConfig configures the offline price snapshot generator
type SnapshotConfig struct {
	Output  string           `yaml:"output"`
	Presets []SnapshotPreset `yaml:"presets"`
}

// SnapshotPreset is one pre-configured query for the snapshot generator
type SnapshotPreset struct {
	Destination string `yaml:"destination"`
	CheckIn     string `yaml:"checkin"`
	CheckOut    string `yaml:"checkout"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
