// Package config loads runtime configuration for the postkeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory (if any) is loaded
//     with godotenv, then POSTKEEPER_* variables are applied (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the KeyVal API
//	-p string   random profile API URL
//	-d string   path of the local SQLite store
//	-i int      profile refresh interval (seconds)
//	-t int      HTTP request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds. Absent keys keep the value of earlier layers:
//
//	{
//	  "keyval_url": "https://api.keyval.org",
//	  "profile_url": "https://randomuser.me/api",
//	  "db_path": "data/postkeeper.db",
//	  "profile_refresh_interval": "10s",
//	  "profile_stale_time": "5m",
//	  "request_timeout": "10s",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
package config
