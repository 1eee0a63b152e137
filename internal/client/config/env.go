package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "POSTKEEPER_"

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", path, err))
	}
}

// parseEnv overlays Config with POSTKEEPER_* environment variables:
//
//	POSTKEEPER_KEYVAL_URL, POSTKEEPER_PROFILE_URL, POSTKEEPER_DB_PATH,
//	POSTKEEPER_PROFILE_REFRESH_INTERVAL, POSTKEEPER_PROFILE_STALE_TIME,
//	POSTKEEPER_REQUEST_TIMEOUT, POSTKEEPER_LOG_LEVEL, POSTKEEPER_LOG_FORMAT
//
// Durations use time.ParseDuration syntax.
func parseEnv(cfg *Config) {
	envString(&cfg.KeyValURL, "KEYVAL_URL")
	envString(&cfg.ProfileURL, "PROFILE_URL")
	envString(&cfg.DBPath, "DB_PATH")
	envDuration(&cfg.ProfileRefreshInterval, "PROFILE_REFRESH_INTERVAL")
	envDuration(&cfg.ProfileStaleTime, "PROFILE_STALE_TIME")
	envDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.LogFormat, "LOG_FORMAT")
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
	}
	*dst = d
}
