package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	postgresDriver = "pgx"
	defaultDSN     = "postgres://localhost/storagefinder?sslmode=disable"
	// per-statement deadline
	postgresTimeout = 5 * time.Second
)

var sqlOpen = sql.Open

// Postgres stores the blob as JSONB so the catalog can be shared between
// machines.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects using dsn, falling back to a local default.
func OpenPostgres(dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sqlOpen(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storagefinder: open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storagefinder: ping postgres: %w", err)
	}

	ddl := `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("storagefinder: ensure kv table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value::text FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	return err
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
