package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/costestimator/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend server URL
//	-p string   API base path
//	-t int      request timeout in seconds
//	-s string   session store file
//	-l string   log level
//
// Only the flags above are considered (see flagx.FilterArgs), so the config
// file flag can share the same argument list. Invalid values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend server URL")
	fs.StringVar(&cfg.APIBasePath, "p", cfg.APIBasePath, "API base path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
