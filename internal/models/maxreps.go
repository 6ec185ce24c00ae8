package models

import "time"

// MaxRepsSnapshot is one entry in the max-reps history.
type MaxRepsSnapshot struct {
	Date    string `json:"date"` // RFC 3339 timestamp
	MaxReps int    `json:"maxReps"`
}

// MaxRepsEntry tracks the current tested max for one exercise plus the
// full history of changes. LastUpdated is empty until the first update.
type MaxRepsEntry struct {
	CurrentMax  int               `json:"currentMax"`
	LastUpdated string            `json:"lastUpdated"`
	History     []MaxRepsSnapshot `json:"history"`
}

// MaxRepsData maps exercise name to its max-reps record.
type MaxRepsData map[Exercise]*MaxRepsEntry

// DefaultMaxRepsData returns empty records for both training exercises.
func DefaultMaxRepsData() MaxRepsData {
	return MaxRepsData{
		ExercisePullUps: {History: []MaxRepsSnapshot{}},
		ExerciseDips:    {History: []MaxRepsSnapshot{}},
	}
}

// Entry returns the record for an exercise, creating an empty one if needed.
func (m MaxRepsData) Entry(exercise Exercise) *MaxRepsEntry {
	e, ok := m[exercise]
	if !ok || e == nil {
		e = &MaxRepsEntry{History: []MaxRepsSnapshot{}}
		m[exercise] = e
	}
	return e
}

// SetCurrentMax records a new tested max for an exercise. The value always
// replaces the current max; a history snapshot is appended only when the
// value actually changed.
func (m MaxRepsData) SetCurrentMax(exercise Exercise, maxReps int, now time.Time) {
	e := m.Entry(exercise)
	ts := now.Format(time.RFC3339)

	if maxReps != e.CurrentMax {
		e.History = append(e.History, MaxRepsSnapshot{Date: ts, MaxReps: maxReps})
	}
	e.CurrentMax = maxReps
	e.LastUpdated = ts
}
