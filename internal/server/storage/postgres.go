package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresStorage struct {
	db     dbx.DBTX
	closer func() error
}

func NewPostgresStorage(db dbx.DBTX) *PostgresStorage {
	return &PostgresStorage{db: db, closer: func() error { return nil }}
}

// OpenPostgres connects with the pgx driver and applies the embedded migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	s := NewPostgresStorage(db)
	s.closer = db.Close
	return s, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *PostgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query :=
		`SELECT value FROM kv
		 WHERE key = $1
		 `

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("db error: %w", err)
	}

	return value, true, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key, value string) error {
	query :=
		`INSERT INTO kv (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 `

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.closer()
}
