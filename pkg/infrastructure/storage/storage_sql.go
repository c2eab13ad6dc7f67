package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Database driver names as registered with database/sql
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLStorage implements Store on a snapshots table keyed by name.
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage opens the database, applies pending migrations and returns
// the store.
func NewSQLStorage(ctx context.Context, driver, dsn string) (*SQLStorage, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer avoids "database is locked" under concurrent uploads
		db.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db.DB, driver); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStorage{db: db}, nil
}

var _ Store = (*SQLStorage)(nil)

func (s *SQLStorage) Put(ctx context.Context, key string, data []byte) error {
	const q = `
		INSERT INTO snapshots (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(q), key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, s.db.Rebind(`SELECT payload FROM snapshots WHERE name = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return payload, nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
