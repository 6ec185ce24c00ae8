package models

import (
	"testing"
	"time"
)

// TestSetCurrentMaxHistory verifies that only actual value changes append a
// history snapshot, while LastUpdated is refreshed on every call.
func TestSetCurrentMaxHistory(t *testing.T) {
	data := DefaultMaxRepsData()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	data.SetCurrentMax(ExercisePullUps, 12, t0)
	entry := data.Entry(ExercisePullUps)
	if entry.CurrentMax != 12 {
		t.Errorf("CurrentMax = %d, want 12", entry.CurrentMax)
	}
	if len(entry.History) != 1 {
		t.Fatalf("len(History) = %d, want 1", len(entry.History))
	}
	if entry.History[0].MaxReps != 12 {
		t.Errorf("History[0].MaxReps = %d, want 12", entry.History[0].MaxReps)
	}

	// Re-testing the same max must not duplicate history.
	t1 := t0.Add(24 * time.Hour)
	data.SetCurrentMax(ExercisePullUps, 12, t1)
	if len(entry.History) != 1 {
		t.Errorf("len(History) = %d after same-value update, want 1", len(entry.History))
	}
	if entry.LastUpdated != t1.Format(time.RFC3339) {
		t.Errorf("LastUpdated = %q, want %q", entry.LastUpdated, t1.Format(time.RFC3339))
	}

	// A lower value still replaces the current max and is recorded.
	t2 := t1.Add(24 * time.Hour)
	data.SetCurrentMax(ExercisePullUps, 10, t2)
	if entry.CurrentMax != 10 {
		t.Errorf("CurrentMax = %d, want 10 (regressions are recorded too)", entry.CurrentMax)
	}
	if len(entry.History) != 2 {
		t.Errorf("len(History) = %d, want 2", len(entry.History))
	}
}

// TestMaxRepsEntryCreatesMissing verifies Entry materializes a record for an
// exercise the map does not know yet.
func TestMaxRepsEntryCreatesMissing(t *testing.T) {
	data := MaxRepsData{}
	entry := data.Entry(ExerciseDips)
	if entry == nil {
		t.Fatal("Entry returned nil")
	}
	if entry.CurrentMax != 0 || entry.LastUpdated != "" {
		t.Errorf("fresh entry = %+v, want zeroed", entry)
	}
	if data[ExerciseDips] != entry {
		t.Error("Entry did not store the created record back into the map")
	}
}

// TestDefaultMaxRepsData verifies both training exercises start zeroed with
// empty histories.
func TestDefaultMaxRepsData(t *testing.T) {
	data := DefaultMaxRepsData()
	for _, ex := range []Exercise{ExercisePullUps, ExerciseDips} {
		e, ok := data[ex]
		if !ok || e == nil {
			t.Fatalf("missing entry for %q", string(ex))
		}
		if e.CurrentMax != 0 || e.LastUpdated != "" || len(e.History) != 0 {
			t.Errorf("%s entry = %+v, want zeroed", string(ex), e)
		}
	}
}
