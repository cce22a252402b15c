package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Each board persists as one key-value slot: the key names the board
// (execution or planning) and state holds the full JSON document.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		key        TEXT PRIMARY KEY
		           CHECK(key IN ('execution','planning')),
		state      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
