// Package session owns the mutable state of today's sets: loading or
// creating the day's record, filling and freeing slots, and write-through
// persistence of every mutation.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/gtg/internal/models"
	"github.com/claude/gtg/internal/store"
)

// ErrInvalidReps is returned when a set is logged with non-positive reps.
var ErrInvalidReps = errors.New("session: reps must be positive")

// Tracker maintains the daily record for one calendar date. It is safe for
// concurrent use; the reminder scheduler polls it from its tick goroutine.
type Tracker struct {
	mu      sync.Mutex
	records *store.Records
	log     *slog.Logger

	date   string
	target int
	record models.DailyRecord
}

// NewTracker creates a tracker with no active day; call Init before use.
func NewTracker(records *store.Records, log *slog.Logger) *Tracker {
	return &Tracker{records: records, log: log}
}

// Init binds the tracker to a calendar date. An existing record for that
// date is loaded as-is — including its exercise field, which stays whatever
// was captured when the record was created, even if the schedule has since
// changed. Otherwise a fresh record with target empty slots is created and
// persisted.
func (t *Tracker) Init(ctx context.Context, date string, scheduled models.Exercise, target int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.date = date
	t.target = target

	if rec, ok := t.records.DailyRecord(ctx, date); ok {
		t.record = rec
		return nil
	}

	t.record = models.NewDailyRecord(scheduled, target)
	if err := t.records.SaveDailyRecord(ctx, date, t.record); err != nil {
		return fmt.Errorf("creating record for %s: %w", date, err)
	}
	t.log.Info("session started", "date", date, "exercise", string(scheduled), "target", target)
	return nil
}

// SetTarget updates the daily minimum after a config change. Existing slots
// are untouched; the target only affects how future days are seeded and how
// completion is judged.
func (t *Tracker) SetTarget(target int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if target > 0 {
		t.target = target
	}
}

// AddSet records reps into the first unfilled slot, or appends a bonus slot
// when all slots are filled. The record is persisted before returning.
func (t *Tracker) AddSet(ctx context.Context, reps int) error {
	if reps <= 0 {
		return ErrInvalidReps
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	filled := false
	for i, v := range t.record.Sets {
		if v == 0 {
			t.record.Sets[i] = reps
			filled = true
			break
		}
	}
	if !filled {
		t.record.Sets = append(t.record.Sets, reps)
	}

	return t.persistLocked(ctx)
}

// RemoveSet zeroes the slot at index, freeing it for reuse by the next
// AddSet. Out-of-range indexes and already-empty slots are silent no-ops.
func (t *Tracker) RemoveSet(ctx context.Context, index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.record.Sets) || t.record.Sets[index] == 0 {
		return nil
	}
	t.record.Sets[index] = 0
	return t.persistLocked(ctx)
}

// CompletedCount returns the number of filled slots.
func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.CompletedSets()
}

// TotalReps returns the rep sum across all slots.
func (t *Tracker) TotalReps() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.TotalReps()
}

// HasOutstandingSets reports whether any slot is still unfilled.
func (t *Tracker) HasOutstandingSets() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.HasOutstandingSets()
}

// Date returns the calendar date the tracker is bound to.
func (t *Tracker) Date() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date
}

// Target returns the configured daily minimum.
func (t *Tracker) Target() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Record returns a copy of the current day's record.
func (t *Tracker) Record() models.DailyRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.Clone()
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	if err := t.records.SaveDailyRecord(ctx, t.date, t.record); err != nil {
		return fmt.Errorf("persisting record for %s: %w", t.date, err)
	}
	return nil
}
