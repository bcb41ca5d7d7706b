package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) progressSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := h.ds.Progress(ctx)
	if err != nil {
		return nil, err
	}

	summary := map[string]any{
		"xp":                snap.XP,
		"level":             snap.Level,
		"streak":            snap.Streak,
		"last_workout_date": snap.LastWorkoutDate,
		"daily_total":       snap.DailyTotal,
		"total_reps":        snap.TotalReps,
		"muscle_totals":     snap.MuscleTotals,
		"best":              snap.Best,
		"trophies":          snap.Trophies,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
