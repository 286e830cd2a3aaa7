// Package config loads runtime configuration for the estimator client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend server URL
//	-p string   API base path
//	-t int      request timeout (seconds)
//	-s string   session store file
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "api_base_path": "/api",
//	  "request_timeout": "12s",
//	  "store_path": "session.db",
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config
