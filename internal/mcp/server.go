package mcp

import (
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Grease the Groove", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Grease the Groove workout tracker. Log sets for today's scheduled exercise, manage reminders, and query streak, weekly/monthly and bonus-set statistics."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetToday, Handler: h.getToday},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolRemoveSet, Handler: h.removeSet},
		server.ServerTool{Tool: toolGetReminder, Handler: h.getReminder},
		server.ServerTool{Tool: toolDismissReminder, Handler: h.dismissReminder},
		server.ServerTool{Tool: toolGetStatistics, Handler: h.getStatistics},
		server.ServerTool{Tool: toolGetConfig, Handler: h.getConfig},
		server.ServerTool{Tool: toolSetReminderInterval, Handler: h.setReminderInterval},
		server.ServerTool{Tool: toolGetMaxReps, Handler: h.getMaxReps},
		server.ServerTool{Tool: toolSetMaxReps, Handler: h.setMaxReps},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.todayResource},
		server.ServerResource{Resource: resStatistics, Handler: h.statisticsResource},
	)

	return s
}

// NewHTTPHandler wraps the MCP server in the streamable HTTP transport so
// it can be mounted on the main router.
func NewHTTPHandler(ds DataSource, version string, log *slog.Logger) http.Handler {
	return server.NewStreamableHTTPServer(New(ds, version, log))
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resToday = mcp.NewResource(
	"gtg://today",
	"Today's Session",
	mcp.WithResourceDescription("Today's scheduled exercise, logged sets, completion progress and outstanding-set status"),
	mcp.WithMIMEType("application/json"),
)

var resStatistics = mcp.NewResource(
	"gtg://statistics",
	"Statistics",
	mcp.WithResourceDescription("Streaks, weekly/monthly totals, bonus days and the 31-day time series, overall and per exercise"),
	mcp.WithMIMEType("application/json"),
)
