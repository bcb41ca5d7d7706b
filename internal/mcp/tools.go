package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
)

// --- Tool definitions ---

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Retrieve the full progression snapshot: XP, level, streak, daily and total rep counts, per-muscle totals, personal bests, and unlocked trophy ids."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Retrieve the finalized set history for one exercise, oldest first. Each record has reps, completion time, and whether it was a challenge set."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise id (e.g. squat, left_curl, right_curl, jumping_jack, pushup, situp)")),
)

var toolGetTrophies = mcp.NewTool("get_trophies",
	mcp.WithDescription("List every trophy with its unlock condition and whether the user has earned it."),
)

var toolGetStreakCalendar = mcp.NewTool("get_streak_calendar",
	mcp.WithDescription("Retrieve the consecutive-day streak, the last workout date, and the calendar of active days."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the supported exercises with their tracked joints, angle thresholds, calorie rates, and muscle groups."),
)

var toolGetLiveState = mcp.NewTool("get_live_state",
	mcp.WithDescription("Retrieve the live session state: current exercise, rep count, calories, challenge and rest timers."),
)

// --- Tool handlers ---

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.Progress(ctx)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	records, err := h.ds.History(ctx, id)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// trophyStatus is a trophy with the predicate replaced by its outcome, so it
// serializes cleanly.
type trophyStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Blurb    string `json:"blurb"`
	Unlocked bool   `json:"unlocked"`
}

func (h *handlers) getTrophies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.Progress(ctx)
	if err != nil {
		h.log.Error("mcp get_trophies", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	unlocked := make(map[string]bool, len(snap.Trophies))
	for _, id := range snap.Trophies {
		unlocked[id] = true
	}

	statuses := make([]trophyStatus, 0, len(ledger.Trophies()))
	for _, tr := range ledger.Trophies() {
		statuses = append(statuses, trophyStatus{
			ID:       tr.ID,
			Name:     tr.Name,
			Blurb:    tr.Blurb,
			Unlocked: unlocked[tr.ID],
		})
	}

	result, err := mcp.NewToolResultJSON(statuses)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreakCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.Progress(ctx)
	if err != nil {
		h.log.Error("mcp get_streak_calendar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"streak":            snap.Streak,
		"last_workout_date": snap.LastWorkoutDate,
		"calendar":          snap.Calendar,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles, err := h.ds.Exercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(profiles)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLiveState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ds.State(ctx)
	if err != nil {
		h.log.Error("mcp get_live_state", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(st)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
