package reminder

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/gtg/internal/clock"
)

// fakeSession is a Session with a settable outstanding flag.
type fakeSession struct {
	outstanding atomic.Bool
}

func (f *fakeSession) HasOutstandingSets() bool {
	return f.outstanding.Load()
}

// recordingNotifier counts deliveries and signals each one on a channel.
type recordingNotifier struct {
	calls atomic.Int32
	fired chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{fired: make(chan struct{}, 8)}
}

func (n *recordingNotifier) Notify(ctx context.Context, title, body string) error {
	n.calls.Add(1)
	n.fired <- struct{}{}
	return nil
}

func newScheduler(t *testing.T, outstanding bool) (*Scheduler, *fakeSession, *recordingNotifier, *clock.Fake) {
	t.Helper()
	sess := &fakeSession{}
	sess.outstanding.Store(outstanding)
	notifier := newRecordingNotifier()
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(sess, notifier, clk, log)
	t.Cleanup(s.Stop)
	return s, sess, notifier, clk
}

// TestStartsOff verifies the scheduler begins disabled.
func TestStartsOff(t *testing.T) {
	s, _, _, _ := newScheduler(t, true)
	if snap := s.Snapshot(); snap.State != StateOff {
		t.Errorf("initial state = %q, want off", snap.State)
	}
}

// TestSetIntervalStartsCountdown verifies arming the scheduler with sets
// outstanding begins a countdown for the full interval.
func TestSetIntervalStartsCountdown(t *testing.T) {
	s, _, _, _ := newScheduler(t, true)
	s.SetInterval(20)

	snap := s.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("state = %q, want running", snap.State)
	}
	if snap.IntervalMinutes != 20 {
		t.Errorf("IntervalMinutes = %d, want 20", snap.IntervalMinutes)
	}
	if want := (20 * time.Minute).Milliseconds(); snap.RemainingMs != want {
		t.Errorf("RemainingMs = %d, want %d", snap.RemainingMs, want)
	}
}

// TestSetIntervalCompleteWhenNothingOutstanding verifies arming with all
// sets done goes straight to complete.
func TestSetIntervalCompleteWhenNothingOutstanding(t *testing.T) {
	s, _, _, _ := newScheduler(t, false)
	s.SetInterval(20)
	if snap := s.Snapshot(); snap.State != StateComplete {
		t.Errorf("state = %q, want complete", snap.State)
	}
}

// TestSetIntervalRebasesRunningCountdown verifies a mid-countdown interval
// change starts over with the new interval; elapsed time is discarded.
func TestSetIntervalRebasesRunningCountdown(t *testing.T) {
	s, _, _, clk := newScheduler(t, true)
	s.SetInterval(20)

	clk.Advance(15 * time.Minute)
	s.tick()
	if snap := s.Snapshot(); snap.State != StateRunning {
		t.Fatalf("state = %q, want running", snap.State)
	}

	s.SetInterval(5)
	snap := s.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("state after rebase = %q, want running", snap.State)
	}
	if snap.IntervalMinutes != 5 {
		t.Errorf("IntervalMinutes = %d, want 5", snap.IntervalMinutes)
	}
	if want := (5 * time.Minute).Milliseconds(); snap.RemainingMs != want {
		t.Errorf("RemainingMs = %d, want full new interval %d", snap.RemainingMs, want)
	}
}

// TestZeroIntervalDisables verifies interval 0 turns the machine off and
// cancels a running countdown.
func TestZeroIntervalDisables(t *testing.T) {
	s, _, _, _ := newScheduler(t, true)
	s.SetInterval(20)
	s.SetInterval(0)
	snap := s.Snapshot()
	if snap.State != StateOff {
		t.Errorf("state = %q, want off", snap.State)
	}
	if snap.RemainingMs != 0 {
		t.Errorf("RemainingMs = %d, want 0", snap.RemainingMs)
	}
}

// TestCountdownExpiresIntoAlert verifies the deadline transition fires the
// alert exactly once, with one notification, even across extra ticks.
func TestCountdownExpiresIntoAlert(t *testing.T) {
	s, _, notifier, clk := newScheduler(t, true)
	s.SetInterval(20)

	clk.Advance(10 * time.Minute)
	s.tick()
	snap := s.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("state at halfway = %q, want running", snap.State)
	}
	if want := (10 * time.Minute).Milliseconds(); snap.RemainingMs != want {
		t.Errorf("RemainingMs = %d, want %d", snap.RemainingMs, want)
	}

	clk.Advance(10 * time.Minute)
	s.tick()
	if snap := s.Snapshot(); snap.State != StateAlert {
		t.Fatalf("state at deadline = %q, want alert", snap.State)
	}

	select {
	case <-notifier.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never fired")
	}

	// Extra ticks while alerting must not fire again.
	s.tick()
	s.tick()
	if got := notifier.calls.Load(); got != 1 {
		t.Errorf("notifications = %d, want exactly 1", got)
	}
}

// TestDismissRestartsCountdown verifies dismissing an alert with sets still
// outstanding starts a fresh countdown from now.
func TestDismissRestartsCountdown(t *testing.T) {
	s, _, _, clk := newScheduler(t, true)
	s.SetInterval(20)
	clk.Advance(20 * time.Minute)
	s.tick()

	if err := s.Dismiss(); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("state after dismiss = %q, want running", snap.State)
	}
	if want := (20 * time.Minute).Milliseconds(); snap.RemainingMs != want {
		t.Errorf("RemainingMs = %d, want full interval %d", snap.RemainingMs, want)
	}
}

// TestDismissCompletesWhenDone verifies dismissing an alert after the last
// set lands the machine in complete.
func TestDismissCompletesWhenDone(t *testing.T) {
	s, sess, _, clk := newScheduler(t, true)
	s.SetInterval(20)
	clk.Advance(20 * time.Minute)
	s.tick()

	sess.outstanding.Store(false)
	if err := s.Dismiss(); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if snap := s.Snapshot(); snap.State != StateComplete {
		t.Errorf("state = %q, want complete", snap.State)
	}
}

// TestDismissOutsideAlert verifies Dismiss is rejected unless alerting.
func TestDismissOutsideAlert(t *testing.T) {
	s, _, _, _ := newScheduler(t, true)
	if err := s.Dismiss(); err != ErrNotAlerting {
		t.Errorf("Dismiss while off = %v, want ErrNotAlerting", err)
	}
	s.SetInterval(20)
	if err := s.Dismiss(); err != ErrNotAlerting {
		t.Errorf("Dismiss while running = %v, want ErrNotAlerting", err)
	}
}

// TestRefreshClearsAlert verifies a set mutation cancels a standing alert
// and re-derives the state; a config change leaves the alert up.
func TestRefreshClearsAlert(t *testing.T) {
	s, sess, _, clk := newScheduler(t, true)
	s.SetInterval(20)
	clk.Advance(20 * time.Minute)
	s.tick()
	if snap := s.Snapshot(); snap.State != StateAlert {
		t.Fatalf("state = %q, want alert", snap.State)
	}

	// Interval change keeps the alert standing.
	s.SetInterval(30)
	if snap := s.Snapshot(); snap.State != StateAlert {
		t.Errorf("state after SetInterval = %q, want alert still up", snap.State)
	}

	// Logging a set restarts the countdown.
	s.Refresh()
	if snap := s.Snapshot(); snap.State != StateRunning {
		t.Errorf("state after Refresh = %q, want running", snap.State)
	}

	// Logging the final set completes the day even from alert.
	clk.Advance(30 * time.Minute)
	s.tick()
	sess.outstanding.Store(false)
	s.Refresh()
	if snap := s.Snapshot(); snap.State != StateComplete {
		t.Errorf("state after final set = %q, want complete", snap.State)
	}
}

// TestRefreshReopensCompletedDay verifies removing a set from a complete day
// restarts the countdown.
func TestRefreshReopensCompletedDay(t *testing.T) {
	s, sess, _, _ := newScheduler(t, false)
	s.SetInterval(20)
	if snap := s.Snapshot(); snap.State != StateComplete {
		t.Fatalf("state = %q, want complete", snap.State)
	}

	sess.outstanding.Store(true)
	s.Refresh()
	if snap := s.Snapshot(); snap.State != StateRunning {
		t.Errorf("state = %q, want running after set removed", snap.State)
	}
}
