// Package reminder drives the repeating "do your next set" cycle: a
// countdown toward the next alert, re-evaluated whenever the interval or
// the day's outstanding sets change. All business transitions live here;
// the tick loop only feeds time into the state machine.
package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/gtg/internal/clock"
)

// State is the reminder machine's current phase.
type State string

const (
	// StateOff means reminders are disabled (interval 0).
	StateOff State = "off"
	// StateRunning means a countdown toward the next alert is in progress.
	StateRunning State = "running"
	// StateAlert means the countdown expired and awaits user dismissal.
	StateAlert State = "alert"
	// StateComplete means all of today's sets are done, nothing to remind.
	StateComplete State = "complete"
)

// ErrNotAlerting is returned by Dismiss outside the Alert state.
var ErrNotAlerting = errors.New("reminder: no alert to dismiss")

// Session is the view of today's progress the scheduler needs.
type Session interface {
	HasOutstandingSets() bool
}

// Snapshot is the transient reminder state exposed to the UI. Never
// persisted; a restart begins from Off.
type Snapshot struct {
	State           State `json:"state"`
	IntervalMinutes int   `json:"intervalMinutes"`
	RemainingMs     int64 `json:"remainingMs"`
}

// Scheduler owns the reminder state machine and its 1-second tick loop.
type Scheduler struct {
	session  Session
	notifier Notifier
	clock    clock.Clock
	log      *slog.Logger

	mu        sync.Mutex
	tickEvery time.Duration
	interval  time.Duration
	state     State
	deadline  time.Time
	remaining time.Duration
	stop      chan struct{}
}

// New creates a scheduler in the Off state. Call SetInterval to arm it.
func New(session Session, notifier Notifier, clk clock.Clock, log *slog.Logger) *Scheduler {
	return &Scheduler{
		session:   session,
		notifier:  notifier,
		clock:     clk,
		log:       log,
		tickEvery: time.Second,
		state:     StateOff,
	}
}

// SetInterval reconfigures the reminder interval. Zero disables reminders
// and cancels any running countdown. A change while Running rebases the
// deadline on the new interval; elapsed time is not preserved. An active
// Alert is left standing.
func (s *Scheduler) SetInterval(minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if minutes < 0 {
		minutes = 0
	}
	s.interval = time.Duration(minutes) * time.Minute
	s.evaluateLocked(false)
}

// Refresh re-evaluates the machine after a set was added or removed. Any
// in-flight Alert or countdown is cancelled and re-derived from the new
// outstanding-sets status.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluateLocked(true)
}

// Dismiss acknowledges an alert. With sets still outstanding the countdown
// restarts from now; otherwise the day is complete.
func (s *Scheduler) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAlert {
		return ErrNotAlerting
	}
	if s.interval > 0 && s.session.HasOutstandingSets() {
		s.startRunningLocked()
	} else {
		s.completeLocked()
	}
	return nil
}

// Snapshot returns the current state with a fresh remaining-time reading.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:           s.state,
		IntervalMinutes: int(s.interval / time.Minute),
	}
	if s.state == StateRunning {
		remaining := s.deadline.Sub(s.clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		snap.RemainingMs = remaining.Milliseconds()
	}
	return snap
}

// Stop cancels the tick loop. Used at shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLoopLocked()
}

// evaluateLocked applies the transition rules. clearAlert is true when the
// trigger was a set mutation, which cancels a standing alert; config
// changes leave an alert in place.
func (s *Scheduler) evaluateLocked(clearAlert bool) {
	if s.interval <= 0 {
		s.state = StateOff
		s.deadline = time.Time{}
		s.remaining = 0
		s.stopLoopLocked()
		return
	}

	if s.state == StateAlert && !clearAlert {
		return
	}

	if s.session.HasOutstandingSets() {
		s.startRunningLocked()
	} else {
		s.completeLocked()
	}
}

func (s *Scheduler) startRunningLocked() {
	s.state = StateRunning
	s.deadline = s.clock.Now().Add(s.interval)
	s.remaining = s.interval
	if s.stop == nil {
		s.stop = make(chan struct{})
		go s.loop(s.stop)
	}
}

func (s *Scheduler) completeLocked() {
	s.state = StateComplete
	s.deadline = time.Time{}
	s.remaining = 0
	s.stopLoopLocked()
}

func (s *Scheduler) stopLoopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick recomputes the countdown and fires the alert when the deadline has
// passed. Safe to call at any time; outside Running it does nothing.
func (s *Scheduler) tick() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}

	remaining := s.deadline.Sub(s.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	s.remaining = remaining

	if remaining > 0 {
		s.mu.Unlock()
		return
	}

	s.state = StateAlert
	s.deadline = time.Time{}
	s.stopLoopLocked()
	s.mu.Unlock()

	// Best-effort, single attempt. Delivery failures never block the
	// state machine.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.Notify(ctx, "Grease the Groove", "Time for your next set!"); err != nil {
			s.log.Warn("reminder notification failed", "error", err)
		}
	}()
}
