package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the estimator client.
//
// Fields:
//   - ServerURL: scheme://host[:port] of the estimation backend.
//   - APIBasePath: fixed prefix prepended to every endpoint path.
//   - RequestTimeout: upper bound for a single outbound request.
//   - StorePath: SQLite file that keeps the session token between runs.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string
	APIBasePath    string
	RequestTimeout time.Duration
	StorePath      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.APIBasePath = "/api"
	c.RequestTimeout = 12 * time.Second
	c.StorePath = "session.db"
	c.LogLevel = "info"
}

// Load constructs a Config from args (without the program name): defaults
// first, then the JSON file named by -c/-config, then flags. Later sources
// take precedence over earlier ones.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load over the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}
