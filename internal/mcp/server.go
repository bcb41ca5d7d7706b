package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fittrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fittrack rep-counter progression server. Query XP, levels, streaks, personal bests, set history, trophies, and the activity calendar for the tracked user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetTrophies, Handler: h.getTrophies},
		server.ServerTool{Tool: toolGetStreakCalendar, Handler: h.getStreakCalendar},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetLiveState, Handler: h.getLiveState},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgressSummary, Handler: h.progressSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgressSummary = mcp.NewResource(
	"fittrack://progress_summary",
	"Progress Summary",
	mcp.WithResourceDescription("Current XP, level, streak, daily totals, personal bests, and unlocked trophies"),
	mcp.WithMIMEType("application/json"),
)
