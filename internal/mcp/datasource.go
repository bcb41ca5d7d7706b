package mcp

import (
	"context"

	"github.com/KoBe1628/ai-fitness-tracker/internal/engine"
	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
)

// DataSource abstracts the data layer for MCP tools. Both EngineSource
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Progress(ctx context.Context) (ledger.Snapshot, error)
	History(ctx context.Context, exerciseID string) ([]ledger.SetRecord, error)
	Exercises(ctx context.Context) ([]exercise.Profile, error)
	State(ctx context.Context) (engine.State, error)
}

// EngineSource adapts a live engine to the DataSource interface for the
// in-process MCP mode.
type EngineSource struct {
	eng *engine.Engine
}

// Compile-time check: *EngineSource satisfies DataSource.
var _ DataSource = (*EngineSource)(nil)

// NewEngineSource wraps the engine. Requires the engine loop to be running.
func NewEngineSource(eng *engine.Engine) *EngineSource {
	return &EngineSource{eng: eng}
}

func (s *EngineSource) Progress(ctx context.Context) (ledger.Snapshot, error) {
	return s.eng.Progress(), nil
}

func (s *EngineSource) History(ctx context.Context, exerciseID string) ([]ledger.SetRecord, error) {
	return s.eng.History(exerciseID), nil
}

func (s *EngineSource) Exercises(ctx context.Context) ([]exercise.Profile, error) {
	return exercise.Profiles(), nil
}

func (s *EngineSource) State(ctx context.Context) (engine.State, error) {
	return s.eng.State(), nil
}
