package config

import "time"

// Config holds runtime settings for the hotelbook CLI.
//
// Fields:
//   - ServerURL: base URL of the hotelbook HTTP API.
//   - StatePath: SQLite file that keeps the session token between runs.
//   - RequestTimeout: per-request HTTP timeout.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerURL           string
	StatePath           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.StatePath = "hotelbook-cli.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
