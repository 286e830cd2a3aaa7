package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/costestimator/internal/flagx"
	"github.com/dmitrijs2005/costestimator/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept "12s" or integer nanoseconds (see timex.Duration).
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	APIBasePath    string         `json:"api_base_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StorePath      string         `json:"store_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the JSON file given by
// -c or -config. Without such a flag nothing happens. Read and decode errors
// panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.APIBasePath != "" {
		cfg.APIBasePath = jc.APIBasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
