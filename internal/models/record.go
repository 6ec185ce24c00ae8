package models

// DailyRecord holds one calendar day's logged sets. The exercise field is
// captured when the record is created and is never re-derived from the live
// schedule, so statistics stay stable when the schedule is edited later.
// A zero entry in Sets is an unfilled slot; entries beyond the daily target
// are bonus sets.
type DailyRecord struct {
	Exercise Exercise `json:"exercise"`
	Sets     []int    `json:"sets"`
}

// NewDailyRecord creates a record for a fresh day with target empty slots.
func NewDailyRecord(exercise Exercise, target int) DailyRecord {
	if target < 0 {
		target = 0
	}
	return DailyRecord{
		Exercise: exercise,
		Sets:     make([]int, target),
	}
}

// CompletedSets counts the filled (non-zero) slots.
func (r DailyRecord) CompletedSets() int {
	n := 0
	for _, reps := range r.Sets {
		if reps != 0 {
			n++
		}
	}
	return n
}

// TotalReps sums the reps across all slots.
func (r DailyRecord) TotalReps() int {
	sum := 0
	for _, reps := range r.Sets {
		sum += reps
	}
	return sum
}

// HasOutstandingSets reports whether any slot is still unfilled.
func (r DailyRecord) HasOutstandingSets() bool {
	for _, reps := range r.Sets {
		if reps == 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand records out without
// sharing the sets slice.
func (r DailyRecord) Clone() DailyRecord {
	sets := make([]int, len(r.Sets))
	copy(sets, r.Sets)
	return DailyRecord{Exercise: r.Exercise, Sets: sets}
}
