package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

const table = "kv"

// SQL is a Store backed by the kv table of a SQLite or PostgreSQL database.
type SQL struct {
	db *goqu.Database
}

// NewSQL wraps db. dialect is a goqu dialect name: "sqlite3" or "postgres".
func NewSQL(db *sql.DB, dialect string) *SQL {
	return &SQL{db: goqu.New(dialect, db)}
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	found, err := s.db.From(table).
		Select("value").
		Where(goqu.C("key").Eq(key)).
		ScanValContext(ctx, &value)
	if err != nil {
		return "", false, fmt.Errorf("getting key %s: %w", key, err)
	}
	return value, found, nil
}

// Set implements Store.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	query := s.db.Insert(table).
		Rows(goqu.Record{
			"key":        key,
			"value":      value,
			"updated_at": time.Now().UTC(),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"value":      goqu.I("excluded.value"),
			"updated_at": goqu.I("excluded.updated_at"),
		}))

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("setting key %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.Delete(table).
		Where(goqu.C("key").Eq(key)).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}
