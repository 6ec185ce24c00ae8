package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/claude/gtg/internal/store"
	"github.com/google/uuid"
)

// ExportEnvelope is the backup format: every stored key under the app
// namespace with its raw JSON value.
type ExportEnvelope struct {
	ID         string                     `json:"id"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Data       map[string]json.RawMessage `json:"data"`
}

// Export dumps all stored data into a portable envelope.
func (a *App) Export(ctx context.Context) (ExportEnvelope, error) {
	kv := a.records.Store()

	keys, err := kv.ListKeysWithPrefix(ctx, store.Prefix)
	if err != nil {
		return ExportEnvelope{}, fmt.Errorf("listing keys: %w", err)
	}

	env := ExportEnvelope{
		ID:         uuid.NewString(),
		ExportedAt: a.clock.Now(),
		Data:       make(map[string]json.RawMessage, len(keys)),
	}
	for _, key := range keys {
		value, err := kv.Get(ctx, key)
		if err != nil {
			return ExportEnvelope{}, fmt.Errorf("reading key %s: %w", key, err)
		}
		env.Data[key] = json.RawMessage(value)
	}
	return env, nil
}

// Import restores an exported envelope, overwriting existing keys, and
// returns the number of keys written. Keys outside the app namespace are
// rejected before anything is written.
func (a *App) Import(ctx context.Context, env ExportEnvelope) (int, error) {
	for key := range env.Data {
		if !strings.HasPrefix(key, store.Prefix) {
			return 0, fmt.Errorf("key %q is outside the %s namespace", key, store.Prefix)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	kv := a.records.Store()
	for key, value := range env.Data {
		if err := kv.Set(ctx, key, string(value)); err != nil {
			return 0, fmt.Errorf("writing key %s: %w", key, err)
		}
	}
	a.log.Info("data imported", "keys", len(env.Data), "exportId", env.ID)

	if err := a.reloadLocked(ctx); err != nil {
		return len(env.Data), err
	}
	return len(env.Data), nil
}
