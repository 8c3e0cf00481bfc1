package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV is the key/value namespace the ledger persists through.
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key, value string) error
	// PutAll replaces several keys in one transaction.
	PutAll(ctx context.Context, entries ...Entry) error
}

// Entry is one key/value pair for PutAll.
type Entry struct {
	Key   string
	Value string
}

var _ KV = (*Store)(nil)

const upsertKV = `
	INSERT INTO kv (key, value, revision)
	VALUES (?, ?, 1)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		revision = kv.revision + 1
`

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value stored under key and bumps its revision.
func (s *Store) Put(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertKV, key, value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// PutAll replaces every entry in a single transaction. Either all entries are
// written or none are.
func (s *Store) PutAll(ctx context.Context, entries ...Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put all: begin: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsertKV, e.Key, e.Value); err != nil {
			return fmt.Errorf("put all %q: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put all: commit: %w", err)
	}
	return nil
}

// Revision returns how many times key has been written, or 0 for a key that
// does not exist.
func (s *Store) Revision(ctx context.Context, key string) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM kv WHERE key = ?`, key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return rev, nil
}

// Keys returns every stored key in byte order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC COLLATE BINARY`)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
