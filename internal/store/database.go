package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// openDatabase opens the SQLite database at path, creating it when absent.
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed for %s: %w", path, err)
	}

	return db, nil
}
