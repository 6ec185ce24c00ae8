package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetToday = mcp.NewTool("get_today",
	mcp.WithDescription("Get today's session: the scheduled exercise, logged sets, completion progress and whether sets are still outstanding."),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Log a completed set for today. Fills the first empty slot; when all slots are filled the set is appended as a bonus set."),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed in the set. Must be positive.")),
)

var toolRemoveSet = mcp.NewTool("remove_set",
	mcp.WithDescription("Undo the set at the given slot index (0-based). Out-of-range or already-empty slots are a no-op."),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Slot index of the set to remove")),
)

var toolGetReminder = mcp.NewTool("get_reminder",
	mcp.WithDescription("Get the reminder state: off, running (with remaining milliseconds), alert, or complete."),
)

var toolDismissReminder = mcp.NewTool("dismiss_reminder",
	mcp.WithDescription("Acknowledge an active reminder alert. Restarts the countdown when sets are still outstanding."),
)

var toolGetStatistics = mcp.NewTool("get_statistics",
	mcp.WithDescription("Get the statistics snapshot: streak days, weekly/monthly rep totals, bonus days/sets and the 31-day time series, overall and per exercise."),
)

var toolGetConfig = mcp.NewTool("get_config",
	mcp.WithDescription("Get the user configuration: weekly schedule, daily set minimum, reminder interval and rep goals."),
)

var toolSetReminderInterval = mcp.NewTool("set_reminder_interval",
	mcp.WithDescription("Set the reminder interval in minutes. 0 disables reminders."),
	mcp.WithNumber("minutes", mcp.Required(), mcp.Description("Minutes between reminders; must not be negative")),
)

var toolGetMaxReps = mcp.NewTool("get_max_reps",
	mcp.WithDescription("Get the tested max reps per exercise, including the change history."),
)

var toolSetMaxReps = mcp.NewTool("set_max_reps",
	mcp.WithDescription("Record a new tested max for an exercise."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name"), mcp.Enum("Pull Ups", "Dips")),
	mcp.WithNumber("max_reps", mcp.Required(), mcp.Description("New tested max repetitions")),
)

// --- Tool handlers ---

func (h *handlers) getToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := h.ds.Today(ctx)
	if err != nil {
		h.log.Error("mcp get_today", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(view)
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	view, err := h.ds.AddSet(ctx, reps)
	if err != nil {
		h.log.Error("mcp log_set", "error", err)
		return mcp.NewToolResultError("log set failed: " + err.Error()), nil
	}
	return jsonResult(view)
}

func (h *handlers) removeSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError("index parameter is required"), nil
	}

	view, err := h.ds.RemoveSet(ctx, index)
	if err != nil {
		h.log.Error("mcp remove_set", "error", err)
		return mcp.NewToolResultError("remove set failed: " + err.Error()), nil
	}
	return jsonResult(view)
}

func (h *handlers) getReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.ReminderState(ctx)
	if err != nil {
		h.log.Error("mcp get_reminder", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(snap)
}

func (h *handlers) dismissReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.DismissReminder(ctx)
	if err != nil {
		return mcp.NewToolResultError("dismiss failed: " + err.Error()), nil
	}
	return jsonResult(snap)
}

func (h *handlers) getStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.Statistics(ctx)
	if err != nil {
		h.log.Error("mcp get_statistics", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(snap)
}

func (h *handlers) getConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.ds.Config(ctx)
	if err != nil {
		h.log.Error("mcp get_config", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(cfg)
}

func (h *handlers) setReminderInterval(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes, err := req.RequireInt("minutes")
	if err != nil {
		return mcp.NewToolResultError("minutes parameter is required"), nil
	}
	if minutes < 0 {
		return mcp.NewToolResultError("minutes must not be negative"), nil
	}

	cfg, err := h.ds.SetReminderInterval(ctx, minutes)
	if err != nil {
		return mcp.NewToolResultError("update failed: " + err.Error()), nil
	}
	return jsonResult(cfg)
}

func (h *handlers) getMaxReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.MaxReps(ctx)
	if err != nil {
		h.log.Error("mcp get_max_reps", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(data)
}

func (h *handlers) setMaxReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	maxReps, err := req.RequireInt("max_reps")
	if err != nil {
		return mcp.NewToolResultError("max_reps parameter is required"), nil
	}

	data, err := h.ds.SetMaxReps(ctx, exercise, maxReps)
	if err != nil {
		return mcp.NewToolResultError("update failed: " + err.Error()), nil
	}
	return jsonResult(data)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
