// Package stats derives the statistics snapshot from the full history of
// daily records. Compute is pure: no caching, no mutation, every call walks
// the 31-day window from scratch.
package stats

import (
	"math"
	"time"

	"github.com/claude/gtg/internal/models"
)

// windowDays is the rolling history window: today plus the 30 days before it.
const windowDays = 31

// weeklyDays is how many most-recent days feed the weekly totals.
const weeklyDays = 7

// Scope aggregates one slice of the history: overall, pull-ups only, or
// dips only.
type Scope struct {
	Weekly           int     `json:"weekly"`
	Monthly          int     `json:"monthly"`
	Streak           int     `json:"streak"`
	BonusDays        int     `json:"bonusDays"`
	BonusSets        int     `json:"bonusSets"`
	AverageBonusSets float64 `json:"averageBonusSets"`
}

// OvertimePoint is one day in the 31-point time series, ordered oldest
// to newest.
type OvertimePoint struct {
	Date     string `json:"date"`
	DayMonth string `json:"dayMonth"`
	PullUps  int    `json:"pullUps"`
	Dips     int    `json:"dips"`
}

// Snapshot is the derived, read-only statistics view. Never persisted.
type Snapshot struct {
	Total    Scope           `json:"total"`
	PullUps  Scope           `json:"pullUps"`
	Dips     Scope           `json:"dips"`
	Overtime []OvertimePoint `json:"overtime"`
}

// Compute walks the 31-day window ending at now (inclusive) and derives all
// aggregates from the stored daily records. Days without a record, rest days
// and unconfigured days contribute a zero point to the time series but are
// skipped for totals and streak counting.
//
// The streak is the count of qualifying days (completed sets >= target on a
// training day) anywhere in the window; a sub-target day does not reset it.
func Compute(records map[string]models.DailyRecord, cfg models.Config, now time.Time) Snapshot {
	snap := Snapshot{
		Overtime: make([]OvertimePoint, 0, windowDays),
	}

	for day := 0; day < windowDays; day++ {
		dt := now.AddDate(0, 0, -day)
		date := models.DateKey(dt)

		rec := records[date]
		reps := rec.TotalReps()
		completed := rec.CompletedSets()

		point := OvertimePoint{
			Date:     date,
			DayMonth: dt.Format("Jan 2"),
		}
		switch rec.Exercise {
		case models.ExercisePullUps:
			point.PullUps = reps
		case models.ExerciseDips:
			point.Dips = reps
		}
		// Series is built newest-first, so prepend to end up oldest-first.
		snap.Overtime = append([]OvertimePoint{point}, snap.Overtime...)

		if !rec.Exercise.IsTraining() {
			continue
		}

		scope := snap.scopeFor(rec.Exercise)

		if day < weeklyDays {
			snap.Total.Weekly += reps
			scope.Weekly += reps
		}

		snap.Total.Monthly += reps
		scope.Monthly += reps

		switch {
		case completed > cfg.Sets:
			snap.Total.Streak++
			scope.Streak++
			snap.Total.BonusDays++
			scope.BonusDays++
			snap.Total.BonusSets += completed - cfg.Sets
			scope.BonusSets += completed - cfg.Sets
		case completed == cfg.Sets:
			snap.Total.Streak++
			scope.Streak++
		}
	}

	snap.Total.AverageBonusSets = averageBonus(snap.Total)
	snap.PullUps.AverageBonusSets = averageBonus(snap.PullUps)
	snap.Dips.AverageBonusSets = averageBonus(snap.Dips)

	return snap
}

// scopeFor returns the per-exercise scope to accumulate into.
func (s *Snapshot) scopeFor(exercise models.Exercise) *Scope {
	if exercise == models.ExerciseDips {
		return &s.Dips
	}
	return &s.PullUps
}

// averageBonus is bonus sets per bonus day, rounded to one decimal.
func averageBonus(s Scope) float64 {
	if s.BonusDays == 0 {
		return 0
	}
	return math.Round(float64(s.BonusSets)/float64(s.BonusDays)*10) / 10
}
