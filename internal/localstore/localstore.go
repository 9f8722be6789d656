// Package localstore is the client-side persistent state: a small SQLite
// database holding a key-value table for identity and preferences plus the
// list of parties this machine has visited. It replaces ambient globals with
// a store handle that is injected into the UI.
package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// Defined keys. Values outside this set are a programming error, not user data.
const (
	KeyUsername    = "username"
	KeyColorScheme = "color-scheme"
)

// Roles recorded for visited parties.
const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

// PartyRef is one remembered party.
type PartyRef struct {
	Name      string
	Role      string
	AdminCode string // only set when Role is RoleAdmin
	VisitedAt time.Time
}

// Store is a handle to the local database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the local database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore.Open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("localstore.Open: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Safe to run on every open.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS party (
    name TEXT PRIMARY KEY,
    role TEXT NOT NULL CHECK (role IN ('guest', 'admin')),
    admin_code TEXT NOT NULL DEFAULT '',
    visited_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_party_visited_at ON party(visited_at);
`

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getKey(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("localstore: get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) setKey(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("localstore: set %q: %w", key, err)
	}
	return nil
}

// Username returns the locally persisted username, or "" if none is set.
func (s *Store) Username() (string, error) {
	return s.getKey(KeyUsername)
}

// SetUsername persists the username used for votes and claims.
func (s *Store) SetUsername(username string) error {
	return s.setKey(KeyUsername, username)
}

// ColorScheme returns the persisted color scheme ("dark" or "light"),
// defaulting to "dark".
func (s *Store) ColorScheme() (string, error) {
	scheme, err := s.getKey(KeyColorScheme)
	if err != nil {
		return "", err
	}
	if scheme == "" {
		return "dark", nil
	}
	return scheme, nil
}

// SetColorScheme persists the color scheme.
func (s *Store) SetColorScheme(scheme string) error {
	return s.setKey(KeyColorScheme, scheme)
}

// RememberParty upserts a visited party. A later admin visit upgrades an
// earlier guest entry; a guest visit never downgrades an admin entry.
func (s *Store) RememberParty(ref PartyRef) error {
	if ref.VisitedAt.IsZero() {
		ref.VisitedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO party (name, role, admin_code, visited_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			role = CASE WHEN party.role = 'admin' THEN party.role ELSE excluded.role END,
			admin_code = CASE WHEN excluded.admin_code != '' THEN excluded.admin_code ELSE party.admin_code END,
			visited_at = excluded.visited_at
	`, ref.Name, ref.Role, ref.AdminCode, ref.VisitedAt)
	if err != nil {
		return fmt.Errorf("localstore: remember party %q: %w", ref.Name, err)
	}
	return nil
}

// RecentParties returns up to limit remembered parties, most recent first.
func (s *Store) RecentParties(limit int) ([]PartyRef, error) {
	rows, err := s.db.Query(`
		SELECT name, role, admin_code, visited_at FROM party
		ORDER BY visited_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("localstore: recent parties: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var refs []PartyRef
	for rows.Next() {
		var ref PartyRef
		if err := rows.Scan(&ref.Name, &ref.Role, &ref.AdminCode, &ref.VisitedAt); err != nil {
			return nil, fmt.Errorf("localstore: scan party: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("localstore: recent parties: %w", err)
	}
	return refs, nil
}
