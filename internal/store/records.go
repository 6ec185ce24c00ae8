package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/gtg/internal/models"
)

// Records is the typed repository over the raw Store. All JSON decoding
// lives here; malformed or missing values fall back to documented defaults
// instead of surfacing errors to business logic.
type Records struct {
	kv  Store
	log *slog.Logger
}

// NewRecords wraps a Store with typed accessors.
func NewRecords(kv Store, log *slog.Logger) *Records {
	return &Records{kv: kv, log: log}
}

// Store exposes the underlying key-value store for export plumbing.
func (r *Records) Store() Store {
	return r.kv
}

// Config returns the persisted user config, normalized, or the defaults
// when nothing is stored yet or the stored value is unreadable.
func (r *Records) Config(ctx context.Context) models.Config {
	raw, err := r.kv.Get(ctx, ConfigKey)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultConfig()
	}
	if err != nil {
		r.log.Warn("config read failed, using defaults", "error", err)
		return models.DefaultConfig()
	}

	var cfg models.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		r.log.Warn("config corrupt, using defaults", "error", err)
		return models.DefaultConfig()
	}
	cfg.Normalize()
	return cfg
}

// SaveConfig persists the user config.
func (r *Records) SaveConfig(ctx context.Context, cfg models.Config) error {
	return r.setJSON(ctx, ConfigKey, cfg)
}

// DailyRecord loads one day's record. The second return value is false when
// no record exists for that date.
func (r *Records) DailyRecord(ctx context.Context, date string) (models.DailyRecord, bool) {
	raw, err := r.kv.Get(ctx, SetsKey(date))
	if errors.Is(err, ErrNotFound) {
		return models.DailyRecord{}, false
	}
	if err != nil {
		r.log.Warn("daily record read failed", "date", date, "error", err)
		return models.DailyRecord{}, false
	}

	var rec models.DailyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.log.Warn("daily record corrupt, treating as empty", "date", date, "error", err)
		return models.DailyRecord{}, false
	}
	if rec.Sets == nil {
		rec.Sets = []int{}
	}
	return rec, true
}

// SaveDailyRecord persists one day's record.
func (r *Records) SaveDailyRecord(ctx context.Context, date string, rec models.DailyRecord) error {
	return r.setJSON(ctx, SetsKey(date), rec)
}

// RemoveDailyRecord deletes one day's record.
func (r *Records) RemoveDailyRecord(ctx context.Context, date string) error {
	return r.kv.Remove(ctx, SetsKey(date))
}

// AllDailyRecords loads every stored day keyed by calendar date. Unreadable
// entries are skipped with a warning.
func (r *Records) AllDailyRecords(ctx context.Context) (map[string]models.DailyRecord, error) {
	keys, err := r.kv.ListKeysWithPrefix(ctx, SetsKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing daily records: %w", err)
	}

	all := make(map[string]models.DailyRecord, len(keys))
	for _, key := range keys {
		date, ok := DateFromSetsKey(key)
		if !ok {
			continue
		}
		if rec, ok := r.DailyRecord(ctx, date); ok {
			all[date] = rec
		}
	}
	return all, nil
}

// MaxReps returns the persisted max-reps data, or zeroed records for both
// exercises when nothing is stored.
func (r *Records) MaxReps(ctx context.Context) models.MaxRepsData {
	raw, err := r.kv.Get(ctx, MaxRepsKey)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultMaxRepsData()
	}
	if err != nil {
		r.log.Warn("max reps read failed, using defaults", "error", err)
		return models.DefaultMaxRepsData()
	}

	var data models.MaxRepsData
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		r.log.Warn("max reps corrupt, using defaults", "error", err)
		return models.DefaultMaxRepsData()
	}
	return data
}

// SaveMaxReps persists the max-reps data.
func (r *Records) SaveMaxReps(ctx context.Context, data models.MaxRepsData) error {
	return r.setJSON(ctx, MaxRepsKey, data)
}

// MockDate returns the stored clock override, if any.
func (r *Records) MockDate(ctx context.Context) (time.Time, bool) {
	raw, err := r.kv.Get(ctx, MockDateKey)
	if err != nil {
		return time.Time{}, false
	}
	var iso string
	if err := json.Unmarshal([]byte(raw), &iso); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		r.log.Warn("mock date unparseable, ignoring", "value", iso, "error", err)
		return time.Time{}, false
	}
	return t, true
}

// SetMockDate stores a clock override for dev mode.
func (r *Records) SetMockDate(ctx context.Context, t time.Time) error {
	return r.setJSON(ctx, MockDateKey, t.Format(time.RFC3339))
}

// ClearMockDate removes the clock override.
func (r *Records) ClearMockDate(ctx context.Context) error {
	return r.kv.Remove(ctx, MockDateKey)
}

// Reset deletes everything under the application prefix.
func (r *Records) Reset(ctx context.Context) error {
	return r.kv.Clear(ctx, Prefix)
}

func (r *Records) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(data))
}
