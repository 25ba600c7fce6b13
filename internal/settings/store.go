package settings

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// NewStore opens the key-value table called name, creating it if needed. name
// is spliced into queries, so it may only contain Latin letters and
// underscores.
func NewStore(ctx context.Context, db *sql.DB, name string) (*Store, error) {
	if !isIdentifier(name) {
		return nil, ErrBadName
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create store %s: %w", name, err)
	}
	s := &Store{name: name, db: db}
	return s, nil
}

// Get decodes the value stored under key into value, which must be a pointer
// or nil. If key is not present, [ErrNotFound] is returned. If value is nil,
// the stored data is discarded.
func (s *Store) Get(ctx context.Context, key string, value any) error {
	var v []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+s.name+` WHERE key = ?;`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
}

// Set inserts a new key-value pair or updates an existing one.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES (?, ?)
ON CONFLICT (key)
DO UPDATE SET value = excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key without checking that it existed.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}
