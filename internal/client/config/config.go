package config

import "time"

// Config holds runtime settings for the team board CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path of the local sqlite file holding the session.
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "teamboard.db"
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
