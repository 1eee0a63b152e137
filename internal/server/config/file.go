package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/postkeeper/internal/flagx"
	"github.com/dmitrijs2005/postkeeper/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding the config file. The
// same keys are used for JSON and YAML; absent keys keep the defaults.
type FileConfig struct {
	HTTPAddr        *string         `json:"http_addr" yaml:"http_addr"`
	HealthAddr      *string         `json:"health_addr" yaml:"health_addr"`
	Backend         *string         `json:"backend" yaml:"backend"`
	DatabaseDSN     *string         `json:"database_dsn" yaml:"database_dsn"`
	RedisAddr       *string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword   *string         `json:"redis_password" yaml:"redis_password"`
	RedisDB         *int            `json:"redis_db" yaml:"redis_db"`
	S3RootUser      *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword  *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket        *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	MaxKeyLength    *int            `json:"max_key_length" yaml:"max_key_length"`
	MaxValueLength  *int            `json:"max_value_length" yaml:"max_value_length"`
	RateLimit       *float64        `json:"rate_limit" yaml:"rate_limit"`
	RateBurst       *int            `json:"rate_burst" yaml:"rate_burst"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
	LogFormat       *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays Config with the file named by -c or -config. Files
// ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) {
	configFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	set(&cfg.HTTPAddr, fc.HTTPAddr)
	set(&cfg.HealthAddr, fc.HealthAddr)
	set(&cfg.Backend, fc.Backend)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.RedisAddr, fc.RedisAddr)
	set(&cfg.RedisPassword, fc.RedisPassword)
	set(&cfg.RedisDB, fc.RedisDB)
	set(&cfg.S3RootUser, fc.S3RootUser)
	set(&cfg.S3RootPassword, fc.S3RootPassword)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	set(&cfg.MaxKeyLength, fc.MaxKeyLength)
	set(&cfg.MaxValueLength, fc.MaxValueLength)
	set(&cfg.RateLimit, fc.RateLimit)
	set(&cfg.RateBurst, fc.RateBurst)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)

	if fc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
