package models

import (
	"fmt"
	"time"
)

const (
	DefaultDailySets   = 5
	DefaultPullUpsGoal = 20
	DefaultDipsGoal    = 30
	daysPerWeek        = 7
)

// Goals holds the user's target max reps per exercise.
type Goals struct {
	PullUps int `json:"pullUps"`
	Dips    int `json:"dips"`
}

// Config is the single user-editable configuration: the weekly schedule,
// the daily set minimum, the reminder interval and the rep goals.
type Config struct {
	// Days maps weekday (0 = Sunday) to the scheduled exercise.
	Days []Exercise `json:"days"`
	// Sets is the minimum number of sets per training day.
	Sets int `json:"sets"`
	// ReminderIntervalMinutes is the pause between reminders; 0 disables them.
	ReminderIntervalMinutes int   `json:"reminderIntervalMinutes"`
	Goals                   Goals `json:"goals"`
}

// DefaultConfig returns the configuration used on first run: an empty
// schedule, five sets a day, reminders off.
func DefaultConfig() Config {
	return Config{
		Days:                    make([]Exercise, daysPerWeek),
		Sets:                    DefaultDailySets,
		ReminderIntervalMinutes: 0,
		Goals: Goals{
			PullUps: DefaultPullUpsGoal,
			Dips:    DefaultDipsGoal,
		},
	}
}

// Normalize fills in defaults for fields that older persisted configs may
// be missing, so records written by earlier versions keep loading.
func (c *Config) Normalize() {
	if len(c.Days) != daysPerWeek {
		days := make([]Exercise, daysPerWeek)
		copy(days, c.Days)
		c.Days = days
	}
	if c.Sets <= 0 {
		c.Sets = DefaultDailySets
	}
	if c.ReminderIntervalMinutes < 0 {
		c.ReminderIntervalMinutes = 0
	}
	if c.Goals.PullUps <= 0 {
		c.Goals.PullUps = DefaultPullUpsGoal
	}
	if c.Goals.Dips <= 0 {
		c.Goals.Dips = DefaultDipsGoal
	}
}

// Validate checks a user-submitted config before it is persisted.
func (c Config) Validate() error {
	if len(c.Days) != daysPerWeek {
		return fmt.Errorf("days must have %d entries, got %d", daysPerWeek, len(c.Days))
	}
	for i, d := range c.Days {
		if !d.Valid() {
			return fmt.Errorf("days[%d]: unknown exercise %q", i, string(d))
		}
	}
	if c.Sets <= 0 {
		return fmt.Errorf("sets must be positive, got %d", c.Sets)
	}
	if c.ReminderIntervalMinutes < 0 {
		return fmt.Errorf("reminderIntervalMinutes must not be negative, got %d", c.ReminderIntervalMinutes)
	}
	if c.Goals.PullUps <= 0 {
		return fmt.Errorf("goals.pullUps must be positive, got %d", c.Goals.PullUps)
	}
	if c.Goals.Dips <= 0 {
		return fmt.Errorf("goals.dips must be positive, got %d", c.Goals.Dips)
	}
	return nil
}

// ExerciseFor returns the exercise scheduled for the given weekday.
func (c Config) ExerciseFor(day time.Weekday) Exercise {
	idx := int(day)
	if idx < 0 || idx >= len(c.Days) {
		return ExerciseUnset
	}
	return c.Days[idx]
}
