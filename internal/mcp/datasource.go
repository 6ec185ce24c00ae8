package mcp

import (
	"context"

	"github.com/claude/gtg/internal/app"
	"github.com/claude/gtg/internal/models"
	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/stats"
)

// DataSource abstracts the application for MCP tools. Both *app.App
// (local, mounted on the HTTP server) and HTTPClient (remote via REST API
// for the stdio binary) satisfy this interface.
type DataSource interface {
	Today(ctx context.Context) (app.TodayView, error)
	AddSet(ctx context.Context, reps int) (app.TodayView, error)
	RemoveSet(ctx context.Context, index int) (app.TodayView, error)
	ReminderState(ctx context.Context) (reminder.Snapshot, error)
	DismissReminder(ctx context.Context) (reminder.Snapshot, error)
	Statistics(ctx context.Context) (stats.Snapshot, error)
	Config(ctx context.Context) (models.Config, error)
	SetReminderInterval(ctx context.Context, minutes int) (models.Config, error)
	MaxReps(ctx context.Context) (models.MaxRepsData, error)
	SetMaxReps(ctx context.Context, exercise string, maxReps int) (models.MaxRepsData, error)
}

// Compile-time check: *app.App satisfies DataSource.
var _ DataSource = (*app.App)(nil)
