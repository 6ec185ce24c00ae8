// Package store provides the key-value persistence layer: a small Store
// contract with SQLite, Postgres and in-memory backends, plus a typed
// Records repository that handles JSON (de)serialization and defaults.
package store

import (
	"context"
	"errors"
	"strings"
)

// Keys used under the application namespace. Every key the app writes
// starts with Prefix so a full export/reset can enumerate them.
const (
	Prefix        = "gtg_"
	ConfigKey     = Prefix + "config"
	SetsKeyPrefix = Prefix + "sets_"
	MaxRepsKey    = Prefix + "max_reps"
	MockDateKey   = Prefix + "dev_mock_date"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is the persistence contract: string keys mapped to JSON-encoded
// string values. Implementations must treat Remove of a missing key and
// Clear of an empty prefix as no-ops.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Clear(ctx context.Context, prefix string) error
	Close() error
}

// SetsKey returns the storage key for one calendar day's record.
func SetsKey(date string) string {
	return SetsKeyPrefix + date
}

// DateFromSetsKey extracts the calendar date from a daily-record key.
func DateFromSetsKey(key string) (string, bool) {
	if !strings.HasPrefix(key, SetsKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, SetsKeyPrefix), true
}
