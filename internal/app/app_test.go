package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/gtg/internal/clock"
	"github.com/claude/gtg/internal/models"
	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/session"
	"github.com/claude/gtg/internal/store"
)

func newTestApp(t *testing.T) (*App, *clock.Fake) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	records := store.NewRecords(store.NewMemory(), log)
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tracker := session.NewTracker(records, log)
	sched := reminder.New(tracker, reminder.Nop{}, clk, log)
	t.Cleanup(sched.Stop)

	a := New(records, clk, tracker, sched, log)
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return a, clk
}

// TestDayRollover verifies a calendar change mid-process rolls the session
// to a new date and keeps yesterday's record in history.
func TestDayRollover(t *testing.T) {
	a, clk := newTestApp(t)
	ctx := context.Background()

	if _, err := a.AddSet(ctx, 6); err != nil {
		t.Fatal(err)
	}

	clk.Set(time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC))
	view, err := a.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Date != "2026-03-03" {
		t.Errorf("date = %q, want 2026-03-03", view.Date)
	}
	if view.TotalReps != 0 {
		t.Errorf("new day totalReps = %d, want 0", view.TotalReps)
	}

	all, err := a.records.AllDailyRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all["2026-03-02"].TotalReps() != 6 {
		t.Errorf("yesterday's reps = %d, want 6", all["2026-03-02"].TotalReps())
	}
}

// TestSetConfigPushesSettings verifies a config update rearms the reminder
// and updates the session target in place.
func TestSetConfigPushesSettings(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	cfg := models.DefaultConfig()
	cfg.Sets = 8
	cfg.ReminderIntervalMinutes = 25
	if _, err := a.SetConfig(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	snap, err := a.ReminderState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.IntervalMinutes != 25 {
		t.Errorf("interval = %d, want 25", snap.IntervalMinutes)
	}
	if snap.State != reminder.StateRunning {
		t.Errorf("state = %q, want running (sets outstanding)", snap.State)
	}

	view, err := a.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Target != 8 {
		t.Errorf("target = %d, want 8", view.Target)
	}
}

// TestSetMaxRepsValidation verifies only training exercises with
// non-negative values are accepted.
func TestSetMaxRepsValidation(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	if _, err := a.SetMaxReps(ctx, "Rest", 5); err == nil {
		t.Error("rest day accepted for max reps")
	}
	if _, err := a.SetMaxReps(ctx, "Burpees", 5); err == nil {
		t.Error("unknown exercise accepted")
	}
	if _, err := a.SetMaxReps(ctx, "Dips", -1); err == nil {
		t.Error("negative max accepted")
	}

	data, err := a.SetMaxReps(ctx, "Dips", 18)
	if err != nil {
		t.Fatal(err)
	}
	if data[models.ExerciseDips].CurrentMax != 18 {
		t.Errorf("CurrentMax = %d, want 18", data[models.ExerciseDips].CurrentMax)
	}
}

// TestResetClearsEverything verifies Reset wipes history and re-seeds today
// under the default config.
func TestResetClearsEverything(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	a.AddSet(ctx, 10)
	a.SetMaxReps(ctx, "Pull Ups", 12)

	if err := a.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	view, err := a.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.TotalReps != 0 {
		t.Errorf("totalReps = %d after reset, want 0", view.TotalReps)
	}
	data, _ := a.MaxReps(ctx)
	if data[models.ExercisePullUps].CurrentMax != 0 {
		t.Errorf("max reps survived reset: %d", data[models.ExercisePullUps].CurrentMax)
	}
}

// TestExportImportPreservesKeys verifies an export of one app restores the
// same state in another.
func TestExportImportPreservesKeys(t *testing.T) {
	a1, _ := newTestApp(t)
	ctx := context.Background()
	a1.AddSet(ctx, 7)
	a1.SetMaxReps(ctx, "Pull Ups", 11)

	env, err := a1.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if env.ID == "" {
		t.Error("export envelope missing id")
	}

	a2, _ := newTestApp(t)
	n, err := a2.Import(ctx, env)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(env.Data) {
		t.Errorf("imported %d keys, want %d", n, len(env.Data))
	}

	view, err := a2.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.TotalReps != 7 {
		t.Errorf("imported totalReps = %d, want 7", view.TotalReps)
	}
}

// TestImportRejectsForeignKeys verifies keys outside the app namespace are
// refused before anything is written.
func TestImportRejectsForeignKeys(t *testing.T) {
	a, _ := newTestApp(t)
	env := ExportEnvelope{Data: map[string]json.RawMessage{"other_key": json.RawMessage(`"x"`)}}
	if _, err := a.Import(context.Background(), env); err == nil {
		t.Error("foreign key accepted on import")
	}
}
