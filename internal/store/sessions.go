package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tubefetch/tubefetch/internal/model"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	key  TEXT PRIMARY KEY,
	data TEXT NOT NULL
)`

// SessionStore is the durable keyed record of in-progress conversations.
// Every write is committed before the call returns. I/O failures surface to
// the caller and abort the current operation; they are never retried here.
type SessionStore struct {
	db *sql.DB
}

// OpenSessionStore opens (and if needed initializes) the session table at
// the given database path.
func OpenSessionStore(path string) (*SessionStore, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sessionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Get returns the session stored under key. A missing key yields
// model.ErrSessionNotFound.
func (s *SessionStore) Get(key string) (*model.Session, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM sessions WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", key, err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &sess, nil
}

// Put stores the session under key, replacing any previous session for the
// same key. A new prompt for an existing key supersedes the old one.
func (s *SessionStore) Put(key string, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO sessions (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data",
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write session %s: %w", key, err)
	}
	return nil
}

// Remove deletes the session under key. Removing an absent key is not an
// error.
func (s *SessionStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove session %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
