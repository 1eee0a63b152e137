package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/client/keyval"
	"github.com/dmitrijs2005/postkeeper/internal/client/profile"
)

// DataDir is the directory, relative to the working directory, that holds
// the local store by default.
const DataDir = "data"

// Config holds runtime settings for the postkeeper client.
type Config struct {
	KeyValURL              string
	ProfileURL             string
	DBPath                 string
	ProfileRefreshInterval time.Duration
	ProfileStaleTime       time.Duration
	RequestTimeout         time.Duration
	LogLevel               string
	LogFormat              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.KeyValURL = keyval.DefaultBaseURL
	c.ProfileURL = profile.DefaultURL
	c.DBPath = filepath.Join(DataDir, "postkeeper.db")
	c.ProfileRefreshInterval = profile.DefaultRefreshInterval
	c.ProfileStaleTime = profile.DefaultStaleTime
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. It panics on malformed
// input.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
