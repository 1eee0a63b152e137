// Package storage provides the pluggable key-value backends of the kvserver.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/server/config"
)

// Storage is a flat string-to-string store. A missing key is reported with
// ok == false and no error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStorage(), nil
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendS3:
		return OpenS3(ctx, S3Options{
			User:     cfg.S3RootUser,
			Password: cfg.S3RootPassword,
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
