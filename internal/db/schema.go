package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. It is valid for both SQLite and
// PostgreSQL.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    "key"      TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
