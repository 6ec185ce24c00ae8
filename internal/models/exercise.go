package models

import "time"

// Exercise is one of the fixed exercise types a weekday can be scheduled for.
// The zero value means the day is unconfigured.
type Exercise string

const (
	ExercisePullUps Exercise = "Pull Ups"
	ExerciseDips    Exercise = "Dips"
	ExerciseRest    Exercise = "Rest"
	ExerciseUnset   Exercise = ""
)

// Exercises lists the values a user can assign to a weekday.
var Exercises = []Exercise{ExercisePullUps, ExerciseDips, ExerciseRest}

// Valid reports whether e is a known exercise value (including unset).
func (e Exercise) Valid() bool {
	if e == ExerciseUnset {
		return true
	}
	for _, known := range Exercises {
		if e == known {
			return true
		}
	}
	return false
}

// IsTraining reports whether e is an actual training exercise, as opposed
// to a rest day or an unconfigured day.
func (e Exercise) IsTraining() bool {
	return e == ExercisePullUps || e == ExerciseDips
}

// ParseExercise maps a string to an Exercise, accepting only known values.
func ParseExercise(s string) (Exercise, bool) {
	e := Exercise(s)
	if !e.Valid() {
		return ExerciseUnset, false
	}
	return e, true
}

// DateKey formats a time as the calendar-date key used throughout the app.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
