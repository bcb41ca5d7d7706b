// Package ledger is the durable fitness-progression record: XP, levels,
// streaks, per-exercise history, daily and muscle-group totals, trophies,
// and the activity calendar. It is loaded once at startup from the key-value
// store and written back after every mutation; the store is the single
// source of truth between sessions.
package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/storage"
)

// Mode tags a finalized set with how it ended.
type Mode string

const (
	ModeStandard  Mode = "standard"
	ModeChallenge Mode = "challenge"
)

// XPPerRep is the experience award per repetition in standard flow.
const XPPerRep = 10

// dateLayout is the calendar-date format used for streaks and the activity
// calendar. Streak math compares these strings, never elapsed time.
const dateLayout = "2006-01-02"

// Store keys. Global state uses fixed keys; best and history are scoped per
// exercise id.
const (
	keyTotalXP              = "total_xp"
	keyStreak               = "streak"
	keyLastWorkoutDate      = "last_workout_date"
	keyDailyTotal           = "daily_total"
	keyTotalReps            = "total_reps"
	keyChallengeCompletions = "challenge_completions"
	keyTrophies             = "trophies"
	keyActivityCalendar     = "activity_calendar"
	keyMusclePrefix         = "muscle_"
	keyBestPrefix           = "best_"
	keyHistoryPrefix        = "history_"
)

// SetRecord is one finalized set. Immutable once appended; history keeps
// insertion order and is never reordered or deduplicated.
type SetRecord struct {
	ID          uuid.UUID `json:"id"`
	Exercise    string    `json:"exercise"`
	Reps        int       `json:"reps"`
	CompletedAt time.Time `json:"completed_at"`
	Mode        Mode      `json:"mode"`
}

// Snapshot is a read-only view of the ledger, consumed by the trophy
// evaluator, the HTTP API, and the MCP tools.
type Snapshot struct {
	XP                   int                          `json:"xp"`
	Level                int                          `json:"level"`
	Streak               int                          `json:"streak"`
	LastWorkoutDate      string                       `json:"last_workout_date"`
	DailyTotal           int                          `json:"daily_total"`
	TotalReps            int                          `json:"total_reps"`
	ChallengeCompletions int                          `json:"challenge_completions"`
	MuscleTotals         map[exercise.MuscleGroup]int `json:"muscle_totals"`
	Best                 map[string]int               `json:"best"`
	Trophies             []string                     `json:"trophies"`
	Calendar             map[string]bool              `json:"calendar"`
}

// FinalizeResult reports what a finalize-set call changed, for feedback.
type FinalizeResult struct {
	Record      SetRecord `json:"record"`
	XPAwarded   int       `json:"xp_awarded"`
	Level       int       `json:"level"`
	NewBest     bool      `json:"new_best"`
	Streak      int       `json:"streak"`
	NewTrophies []Trophy  `json:"new_trophies"`
}

// Ledger is the process-wide progression aggregate. Not safe for concurrent
// use on its own; the engine serializes all access through its event loop.
type Ledger struct {
	store storage.Store
	log   *slog.Logger

	xp                   int
	streak               int
	lastWorkoutDate      string
	dailyTotal           int
	totalReps            int
	challengeCompletions int
	muscle               map[exercise.MuscleGroup]int
	best                 map[string]int
	history              map[string][]SetRecord
	trophies             map[string]bool
	trophyOrder          []string
	calendar             map[string]bool
}

// Level converts cumulative XP to a level: 100 XP per level, starting at 1.
func Level(xp int) int {
	return xp/100 + 1
}

// Load reads the full ledger from the store. Missing keys default to
// zero/empty; values that fail to parse are replaced by the default rather
// than failing startup.
func Load(store storage.Store, log *slog.Logger) (*Ledger, error) {
	l := &Ledger{store: store, log: log}
	if err := l.reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads state from the store, discarding in-memory fields. Called
// after an import overwrites stored keys.
func (l *Ledger) Reload() error {
	return l.reload()
}

func (l *Ledger) reload() error {
	l.xp = l.loadInt(keyTotalXP)
	l.streak = l.loadInt(keyStreak)
	l.dailyTotal = l.loadInt(keyDailyTotal)
	l.totalReps = l.loadInt(keyTotalReps)
	l.challengeCompletions = l.loadInt(keyChallengeCompletions)
	if l.xp < 0 {
		l.log.Warn("negative xp in store, resetting", "xp", l.xp)
		l.xp = 0
	}

	l.lastWorkoutDate = ""
	if v, ok, err := l.store.Get(keyLastWorkoutDate); err != nil {
		return fmt.Errorf("loading %s: %w", keyLastWorkoutDate, err)
	} else if ok {
		if _, perr := time.Parse(dateLayout, v); perr != nil {
			l.log.Warn("corrupt last workout date, ignoring", "value", v)
		} else {
			l.lastWorkoutDate = v
		}
	}

	l.muscle = make(map[exercise.MuscleGroup]int, len(exercise.MuscleGroups))
	for _, g := range exercise.MuscleGroups {
		l.muscle[g] = l.loadInt(keyMusclePrefix + string(g))
	}

	l.best = make(map[string]int)
	l.history = make(map[string][]SetRecord)
	for _, p := range exercise.Profiles() {
		l.best[p.ID] = l.loadInt(keyBestPrefix + p.ID)

		var recs []SetRecord
		l.loadJSON(keyHistoryPrefix+p.ID, &recs)
		l.history[p.ID] = recs
	}

	var unlocked []string
	l.loadJSON(keyTrophies, &unlocked)
	l.trophies = make(map[string]bool, len(unlocked))
	l.trophyOrder = unlocked
	for _, id := range unlocked {
		l.trophies[id] = true
	}

	l.calendar = make(map[string]bool)
	l.loadJSON(keyActivityCalendar, &l.calendar)
	if l.calendar == nil {
		l.calendar = make(map[string]bool)
	}
	return nil
}

// loadInt reads an integer key, substituting 0 for absent or corrupt values.
func (l *Ledger) loadInt(key string) int {
	v, ok, err := l.store.Get(key)
	if err != nil {
		l.log.Warn("store read failed, using default", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.log.Warn("corrupt stored value, using default", "key", key, "value", v)
		return 0
	}
	return n
}

// loadJSON reads a JSON key into dst, leaving dst untouched for absent or
// corrupt values.
func (l *Ledger) loadJSON(key string, dst any) {
	v, ok, err := l.store.Get(key)
	if err != nil {
		l.log.Warn("store read failed, using default", "key", key, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		l.log.Warn("corrupt stored value, using default", "key", key, "value", v)
	}
}

// FinalizeSet applies one finished set to the ledger and persists it. It is
// the ledger's single mutating entry point in normal operation. A zero-rep
// request is a silent no-op: nothing is recorded and nothing is persisted.
//
// Effects, in order: append the set record; roll the daily and muscle totals
// over if the calendar day changed (before accumulating); accumulate totals;
// mark the activity calendar; update the streak by calendar-date equality;
// award XP and, outside challenge mode, the best-set record; evaluate
// trophies in registry order.
func (l *Ledger) FinalizeSet(p exercise.Profile, reps int, mode Mode, now time.Time) (FinalizeResult, error) {
	if reps <= 0 {
		return FinalizeResult{}, nil
	}

	today := now.Format(dateLayout)

	rec := SetRecord{
		ID:          uuid.New(),
		Exercise:    p.ID,
		Reps:        reps,
		CompletedAt: now,
		Mode:        mode,
	}
	l.history[p.ID] = append(l.history[p.ID], rec)

	// Day rollover happens before this set's contribution is added, so the
	// first set of a new day starts the totals from zero.
	if l.lastWorkoutDate != today {
		l.dailyTotal = 0
		for _, g := range exercise.MuscleGroups {
			l.muscle[g] = 0
		}
	}
	l.dailyTotal += reps
	l.muscle[p.Muscles] += reps
	l.totalReps += reps

	l.calendar[today] = true

	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	switch l.lastWorkoutDate {
	case today:
		// second set today, streak unchanged
	case yesterday:
		l.streak++
	default:
		l.streak = 1
	}
	l.lastWorkoutDate = today

	awarded := XPPerRep * reps
	l.xp += awarded

	newBest := false
	if mode != ModeChallenge {
		if reps > l.best[p.ID] {
			l.best[p.ID] = reps
			newBest = true
		}
	} else {
		l.challengeCompletions++
	}

	newTrophies := l.unlockNew()

	if err := l.persist(); err != nil {
		return FinalizeResult{}, fmt.Errorf("persisting ledger: %w", err)
	}

	return FinalizeResult{
		Record:      rec,
		XPAwarded:   awarded,
		Level:       Level(l.xp),
		NewBest:     newBest,
		Streak:      l.streak,
		NewTrophies: newTrophies,
	}, nil
}

// AddBonusXP grants a flat award (routine completion bonus) and persists.
func (l *Ledger) AddBonusXP(xp int) error {
	if xp <= 0 {
		return nil
	}
	l.xp += xp
	if err := l.persist(); err != nil {
		return fmt.Errorf("persisting ledger: %w", err)
	}
	return nil
}

// unlockNew runs the trophy registry against the current snapshot and adds
// every newly satisfied trophy, in registry order. Unlocked trophies are
// never removed.
func (l *Ledger) unlockNew() []Trophy {
	snap := l.Snapshot()
	var unlocked []Trophy
	for _, tr := range Trophies() {
		if l.trophies[tr.ID] {
			continue
		}
		if tr.Unlocked(snap) {
			l.trophies[tr.ID] = true
			l.trophyOrder = append(l.trophyOrder, tr.ID)
			unlocked = append(unlocked, tr)
		}
	}
	return unlocked
}

// persist writes the full ledger through to the store.
func (l *Ledger) persist() error {
	setInt := func(key string, v int) error {
		return l.store.Set(key, strconv.Itoa(v))
	}
	setJSON := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", key, err)
		}
		return l.store.Set(key, string(data))
	}

	if err := setInt(keyTotalXP, l.xp); err != nil {
		return err
	}
	if err := setInt(keyStreak, l.streak); err != nil {
		return err
	}
	if err := l.store.Set(keyLastWorkoutDate, l.lastWorkoutDate); err != nil {
		return err
	}
	if err := setInt(keyDailyTotal, l.dailyTotal); err != nil {
		return err
	}
	if err := setInt(keyTotalReps, l.totalReps); err != nil {
		return err
	}
	if err := setInt(keyChallengeCompletions, l.challengeCompletions); err != nil {
		return err
	}
	for _, g := range exercise.MuscleGroups {
		if err := setInt(keyMusclePrefix+string(g), l.muscle[g]); err != nil {
			return err
		}
	}
	for id, best := range l.best {
		if err := setInt(keyBestPrefix+id, best); err != nil {
			return err
		}
	}
	for id, recs := range l.history {
		if err := setJSON(keyHistoryPrefix+id, recs); err != nil {
			return err
		}
	}
	if err := setJSON(keyTrophies, l.trophyOrder); err != nil {
		return err
	}
	return setJSON(keyActivityCalendar, l.calendar)
}

// Snapshot returns a copy of the ledger's current state.
func (l *Ledger) Snapshot() Snapshot {
	muscle := make(map[exercise.MuscleGroup]int, len(l.muscle))
	for g, n := range l.muscle {
		muscle[g] = n
	}
	best := make(map[string]int, len(l.best))
	for id, n := range l.best {
		best[id] = n
	}
	trophies := make([]string, len(l.trophyOrder))
	copy(trophies, l.trophyOrder)
	calendar := make(map[string]bool, len(l.calendar))
	for d, v := range l.calendar {
		calendar[d] = v
	}
	return Snapshot{
		XP:                   l.xp,
		Level:                Level(l.xp),
		Streak:               l.streak,
		LastWorkoutDate:      l.lastWorkoutDate,
		DailyTotal:           l.dailyTotal,
		TotalReps:            l.totalReps,
		ChallengeCompletions: l.challengeCompletions,
		MuscleTotals:         muscle,
		Best:                 best,
		Trophies:             trophies,
		Calendar:             calendar,
	}
}

// Best returns the best standard-mode set for an exercise.
func (l *Ledger) Best(exerciseID string) int {
	return l.best[exerciseID]
}

// History returns the set history for an exercise, oldest first.
func (l *Ledger) History(exerciseID string) []SetRecord {
	recs := l.history[exerciseID]
	out := make([]SetRecord, len(recs))
	copy(out, recs)
	return out
}
