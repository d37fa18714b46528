package store

import (
	"database/sql"
	"fmt"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY
)`

// UserRegistry is the append-only collection of distinct user ids that ever
// talked to the bot. It feeds the broadcast utility.
type UserRegistry struct {
	db *sql.DB
}

// OpenUserRegistry opens (and if needed initializes) the user registry at
// the given database path.
func OpenUserRegistry(path string) (*UserRegistry, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(usersSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &UserRegistry{db: db}, nil
}

// Track records the user id. Already-known ids are ignored.
func (r *UserRegistry) Track(id int64) error {
	if _, err := r.db.Exec("INSERT OR IGNORE INTO users (id) VALUES (?)", id); err != nil {
		return fmt.Errorf("track user %d: %w", id, err)
	}
	return nil
}

// All returns every known user id in ascending order.
func (r *UserRegistry) All() ([]int64, error) {
	rows, err := r.db.Query("SELECT id FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return ids, nil
}

// Close releases the underlying database handle.
func (r *UserRegistry) Close() error {
	return r.db.Close()
}
