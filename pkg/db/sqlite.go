package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/blackjack/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

// TimeLayout is how timestamps are stored. Fixed width so text ordering
// matches time ordering.
const TimeLayout = "2006-01-02 15:04:05.000000000"

// timeFormats are accepted when reading timestamps back
var timeFormats = []string{
	TimeLayout,
	"2006-01-02 15:04:05",       // SQLite default format
	"2006-01-02T15:04:05Z",      // ISO 8601 format
	"2006-01-02T15:04:05-07:00", // ISO 8601 with timezone
	time.RFC3339Nano,
}

// OpenSQLite opens the database at dbPath and applies pending migrations
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// A single connection keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := migrations.NewEmbeddedMigrator(db).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return db, nil
}

// FormatTime formats t for storage
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a stored timestamp
func ParseTime(value string) (time.Time, error) {
	var parseErr error
	for _, format := range timeFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s': %w", value, parseErr)
}
