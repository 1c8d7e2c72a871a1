// Package config loads runtime configuration for the hotelbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the hotelbook HTTP API
//	-s string   local state file
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "state_path": "hotelbook-cli.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s"
//	}
package config
