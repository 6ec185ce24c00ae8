// Package app wires the session tracker, reminder scheduler, statistics
// engine and store into one explicitly-owned application context. Both the
// HTTP handlers and the MCP tools call into it; nothing in here knows about
// transports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/gtg/internal/clock"
	"github.com/claude/gtg/internal/models"
	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/session"
	"github.com/claude/gtg/internal/stats"
	"github.com/claude/gtg/internal/store"
)

// App is the single application context shared by all surfaces.
type App struct {
	mu       sync.Mutex
	records  *store.Records
	clock    clock.Clock
	tracker  *session.Tracker
	reminder *reminder.Scheduler
	log      *slog.Logger
}

// TodayView is the read model for the current day.
type TodayView struct {
	Date        string          `json:"date"`
	Exercise    models.Exercise `json:"exercise"`
	Sets        []int           `json:"sets"`
	Target      int             `json:"target"`
	Completed   int             `json:"completedSets"`
	TotalReps   int             `json:"totalReps"`
	Outstanding bool            `json:"outstandingSets"`
	RestDay     bool            `json:"restDay"`
}

// New assembles the application context. Call Start before serving.
func New(records *store.Records, clk clock.Clock, tracker *session.Tracker, sched *reminder.Scheduler, log *slog.Logger) *App {
	return &App{
		records:  records,
		clock:    clk,
		tracker:  tracker,
		reminder: sched,
		log:      log,
	}
}

// Start initializes today's session and arms the reminder scheduler from
// the persisted config.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reloadLocked(ctx)
}

// Today returns the current day's session, rolling the tracker over to a
// new date first when the calendar has moved on.
func (a *App) Today(ctx context.Context) (TodayView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureTodayLocked(ctx); err != nil {
		return TodayView{}, err
	}
	return a.todayViewLocked(), nil
}

// AddSet logs a completed set for today. Non-positive reps are rejected
// with session.ErrInvalidReps and nothing is persisted.
func (a *App) AddSet(ctx context.Context, reps int) (TodayView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureTodayLocked(ctx); err != nil {
		return TodayView{}, err
	}
	if err := a.tracker.AddSet(ctx, reps); err != nil {
		return TodayView{}, err
	}
	a.reminder.Refresh()
	return a.todayViewLocked(), nil
}

// RemoveSet undoes the set at index. Out-of-range indexes are no-ops.
func (a *App) RemoveSet(ctx context.Context, index int) (TodayView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureTodayLocked(ctx); err != nil {
		return TodayView{}, err
	}
	if err := a.tracker.RemoveSet(ctx, index); err != nil {
		return TodayView{}, err
	}
	a.reminder.Refresh()
	return a.todayViewLocked(), nil
}

// ReminderState returns the current reminder snapshot.
func (a *App) ReminderState(ctx context.Context) (reminder.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureTodayLocked(ctx); err != nil {
		return reminder.Snapshot{}, err
	}
	return a.reminder.Snapshot(), nil
}

// DismissReminder acknowledges an active alert.
func (a *App) DismissReminder(ctx context.Context) (reminder.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureTodayLocked(ctx); err != nil {
		return reminder.Snapshot{}, err
	}
	if err := a.reminder.Dismiss(); err != nil {
		return reminder.Snapshot{}, err
	}
	return a.reminder.Snapshot(), nil
}

// Config returns the persisted user config.
func (a *App) Config(ctx context.Context) (models.Config, error) {
	return a.records.Config(ctx), nil
}

// SetConfig validates and persists a new user config, then pushes the new
// target and reminder interval into the running components.
func (a *App) SetConfig(ctx context.Context, cfg models.Config) (models.Config, error) {
	if err := cfg.Validate(); err != nil {
		return models.Config{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.records.SaveConfig(ctx, cfg); err != nil {
		return models.Config{}, fmt.Errorf("saving config: %w", err)
	}
	a.tracker.SetTarget(cfg.Sets)
	a.reminder.SetInterval(cfg.ReminderIntervalMinutes)
	a.log.Info("config updated", "sets", cfg.Sets, "reminderIntervalMinutes", cfg.ReminderIntervalMinutes)
	return cfg, nil
}

// SetReminderInterval updates only the reminder interval.
func (a *App) SetReminderInterval(ctx context.Context, minutes int) (models.Config, error) {
	cfg := a.records.Config(ctx)
	cfg.ReminderIntervalMinutes = minutes
	return a.SetConfig(ctx, cfg)
}

// Statistics recomputes the full statistics snapshot from stored history.
func (a *App) Statistics(ctx context.Context) (stats.Snapshot, error) {
	all, err := a.records.AllDailyRecords(ctx)
	if err != nil {
		return stats.Snapshot{}, err
	}
	return stats.Compute(all, a.records.Config(ctx), a.clock.Now()), nil
}

// MaxReps returns the max-reps records for both exercises.
func (a *App) MaxReps(ctx context.Context) (models.MaxRepsData, error) {
	return a.records.MaxReps(ctx), nil
}

// SetMaxReps records a new tested max for an exercise.
func (a *App) SetMaxReps(ctx context.Context, exercise string, maxReps int) (models.MaxRepsData, error) {
	ex, ok := models.ParseExercise(exercise)
	if !ok || !ex.IsTraining() {
		return nil, fmt.Errorf("unknown exercise %q", exercise)
	}
	if maxReps < 0 {
		return nil, fmt.Errorf("maxReps must not be negative, got %d", maxReps)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	data := a.records.MaxReps(ctx)
	data.SetCurrentMax(ex, maxReps, a.clock.Now())
	if err := a.records.SaveMaxReps(ctx, data); err != nil {
		return nil, fmt.Errorf("saving max reps: %w", err)
	}
	return data, nil
}

// Reset wipes all stored data after the caller has confirmed, then starts
// a fresh session for today under the default config.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.records.Reset(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	a.log.Info("all data cleared")
	return a.reloadLocked(ctx)
}

// SetMockDate overrides the clock (dev mode) and re-initializes the session
// for the new "today".
func (a *App) SetMockDate(ctx context.Context, t time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.records.SetMockDate(ctx, t); err != nil {
		return err
	}
	return a.reloadLocked(ctx)
}

// ClearMockDate removes the clock override.
func (a *App) ClearMockDate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.records.ClearMockDate(ctx); err != nil {
		return err
	}
	return a.reloadLocked(ctx)
}

// ensureTodayLocked rolls the session tracker over when the calendar date
// has changed since the last request.
func (a *App) ensureTodayLocked(ctx context.Context) error {
	today := models.DateKey(a.clock.Now())
	if a.tracker.Date() == today {
		return nil
	}
	a.log.Info("day rollover", "from", a.tracker.Date(), "to", today)
	return a.reloadLocked(ctx)
}

// reloadLocked re-derives today's session and reminder settings from the
// store. Used at startup and after rollover, reset, import or clock changes.
func (a *App) reloadLocked(ctx context.Context) error {
	cfg := a.records.Config(ctx)
	now := a.clock.Now()
	today := models.DateKey(now)

	if err := a.tracker.Init(ctx, today, cfg.ExerciseFor(now.Weekday()), cfg.Sets); err != nil {
		return fmt.Errorf("initializing session for %s: %w", today, err)
	}
	a.reminder.SetInterval(cfg.ReminderIntervalMinutes)
	a.reminder.Refresh()
	return nil
}

func (a *App) todayViewLocked() TodayView {
	rec := a.tracker.Record()
	return TodayView{
		Date:        a.tracker.Date(),
		Exercise:    rec.Exercise,
		Sets:        rec.Sets,
		Target:      a.tracker.Target(),
		Completed:   rec.CompletedSets(),
		TotalReps:   rec.TotalReps(),
		Outstanding: rec.HasOutstandingSets(),
		RestDay:     rec.Exercise == models.ExerciseRest,
	}
}
