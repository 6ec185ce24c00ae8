// Package clock abstracts "now" so the session tracker, reminder scheduler
// and statistics engine can run against a mocked date in dev mode and tests.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/claude/gtg/internal/store"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the production clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Mocked reads an override date from the store and falls back to the real
// clock when none is set. Only wired up when dev mode is enabled.
type Mocked struct {
	records  *store.Records
	fallback Clock
}

// NewMocked creates a store-backed clock over the given fallback.
func NewMocked(records *store.Records, fallback Clock) *Mocked {
	return &Mocked{records: records, fallback: fallback}
}

func (m *Mocked) Now() time.Time {
	if t, ok := m.records.MockDate(context.Background()); ok {
		return t
	}
	return m.fallback.Now()
}

// Fake is a settable clock for tests.
type Fake struct {
	mu sync.Mutex
	t  time.Time
}

// NewFake creates a fake clock starting at t.
func NewFake(t time.Time) *Fake {
	return &Fake{t: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

// Set jumps the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}
