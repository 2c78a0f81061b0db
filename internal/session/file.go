package session

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileStore persists the session record in a local SQLite file so it
// survives between CLI invocations. The table holds at most one row and
// every write replaces it.
type FileStore struct {
	db *sql.DB
}

// NewFileStore opens (creating if needed) the session database at path.
func NewFileStore(path string) (*FileStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER NOT NULL PRIMARY KEY CHECK (id = 0),
		payload TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	return &FileStore{db: db}, nil
}

// Close releases the underlying database handle.
func (f *FileStore) Close() error {
	return f.db.Close()
}

// Get returns the stored session, if any.
func (f *FileStore) Get() (Session, bool) {
	var payload string
	row := f.db.QueryRow("SELECT payload FROM session WHERE id = 0")
	if err := row.Scan(&payload); err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return Session{}, false
	}
	return s, true
}

// Set replaces the session record.
func (f *FileStore) Set(s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = f.db.Exec(
		"INSERT INTO session (id, payload, expires_at) VALUES (0, ?, ?) ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at",
		string(payload), s.ExpiresAt,
	)
	return err
}

// Clear removes the session record.
func (f *FileStore) Clear() error {
	_, err := f.db.Exec("DELETE FROM session WHERE id = 0")
	return err
}

// IsValid reports whether a session is present and not expired.
func (f *FileStore) IsValid(now time.Time) bool {
	s, ok := f.Get()
	return ok && !s.Expired(now)
}
