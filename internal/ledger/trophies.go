package ledger

import "github.com/KoBe1628/ai-fitness-tracker/internal/exercise"

// Trophy is one achievement: a stable id and a threshold predicate over a
// ledger snapshot. Predicates are evaluated independently against cumulative
// counters, so a trophy that was satisfied once can never un-unlock.
type Trophy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Blurb string `json:"blurb"`

	Unlocked func(Snapshot) bool `json:"-"`
}

// trophyRegistry is the canonical trophy list. Order matters: unlock
// notifications fire in registry order. Keep ids stable since clients and
// the store hold them.
var trophyRegistry = []Trophy{
	{
		ID:       "first_set",
		Name:     "First Steps",
		Blurb:    "Finish your first set",
		Unlocked: func(s Snapshot) bool { return s.TotalReps >= 1 },
	},
	{
		ID:       "warming_up",
		Name:     "Warming Up",
		Blurb:    "50 total reps",
		Unlocked: func(s Snapshot) bool { return s.TotalReps >= 50 },
	},
	{
		ID:       "century_club",
		Name:     "Century Club",
		Blurb:    "100 total reps",
		Unlocked: func(s Snapshot) bool { return s.TotalReps >= 100 },
	},
	{
		ID:       "rep_machine",
		Name:     "Rep Machine",
		Blurb:    "500 total reps",
		Unlocked: func(s Snapshot) bool { return s.TotalReps >= 500 },
	},
	{
		ID:       "arm_day",
		Name:     "Arm Day",
		Blurb:    "60 arm reps in one day",
		Unlocked: func(s Snapshot) bool { return s.MuscleTotals[exercise.Arms] >= 60 },
	},
	{
		ID:       "leg_day",
		Name:     "Leg Day",
		Blurb:    "100 leg reps in one day",
		Unlocked: func(s Snapshot) bool { return s.MuscleTotals[exercise.Legs] >= 100 },
	},
	{
		ID:       "core_crusher",
		Name:     "Core Crusher",
		Blurb:    "60 core reps in one day",
		Unlocked: func(s Snapshot) bool { return s.MuscleTotals[exercise.Core] >= 60 },
	},
	{
		ID:       "streak_3",
		Name:     "Habit Forming",
		Blurb:    "3-day streak",
		Unlocked: func(s Snapshot) bool { return s.Streak >= 3 },
	},
	{
		ID:       "streak_7",
		Name:     "Full Week",
		Blurb:    "7-day streak",
		Unlocked: func(s Snapshot) bool { return s.Streak >= 7 },
	},
	{
		ID:       "level_5",
		Name:     "Seasoned",
		Blurb:    "Reach level 5",
		Unlocked: func(s Snapshot) bool { return s.Level >= 5 },
	},
	{
		ID:       "challenger",
		Name:     "Challenger",
		Blurb:    "Finish a timed challenge",
		Unlocked: func(s Snapshot) bool { return s.ChallengeCompletions >= 1 },
	},
	{
		ID:       "challenge_5",
		Name:     "Clock Beater",
		Blurb:    "Finish 5 timed challenges",
		Unlocked: func(s Snapshot) bool { return s.ChallengeCompletions >= 5 },
	},
}

// Trophies returns the registry in unlock-notification order.
func Trophies() []Trophy {
	out := make([]Trophy, len(trophyRegistry))
	copy(out, trophyRegistry)
	return out
}

// Evaluate is the pure trophy evaluator: it returns the ids of every trophy
// whose predicate holds for the snapshot, in registry order, regardless of
// what is already unlocked.
func Evaluate(s Snapshot) []string {
	var ids []string
	for _, tr := range trophyRegistry {
		if tr.Unlocked(s) {
			ids = append(ids, tr.ID)
		}
	}
	return ids
}
