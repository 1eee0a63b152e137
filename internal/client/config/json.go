package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/postkeeper/internal/flagx"
	"github.com/dmitrijs2005/postkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero".
type JsonConfig struct {
	KeyValURL              *string         `json:"keyval_url"`
	ProfileURL             *string         `json:"profile_url"`
	DBPath                 *string         `json:"db_path"`
	ProfileRefreshInterval *timex.Duration `json:"profile_refresh_interval"`
	ProfileStaleTime       *timex.Duration `json:"profile_stale_time"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	LogLevel               *string         `json:"log_level"`
	LogFormat              *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without such a flag it does nothing. It panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.KeyValURL, jc.KeyValURL)
	setString(&cfg.ProfileURL, jc.ProfileURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.ProfileRefreshInterval != nil {
		cfg.ProfileRefreshInterval = jc.ProfileRefreshInterval.Duration
	}
	if jc.ProfileStaleTime != nil {
		cfg.ProfileStaleTime = jc.ProfileStaleTime.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
