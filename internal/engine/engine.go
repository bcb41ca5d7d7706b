package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
	"github.com/KoBe1628/ai-fitness-tracker/internal/notify"
	"github.com/KoBe1628/ai-fitness-tracker/internal/pose"
)

// Config carries the session defaults the engine starts with.
type Config struct {
	Profile          exercise.Profile
	Difficulty       exercise.Difficulty
	UserWeightKg     float64
	ChallengeSeconds int
	RestSeconds      int
}

// FrameResult is what one pose frame produced, echoed back to the client.
type FrameResult struct {
	Skipped  bool    `json:"skipped"`
	Angle    float64 `json:"angle,omitempty"`
	Event    string  `json:"event,omitempty"`
	Count    int     `json:"count"`
	Calories float64 `json:"calories"`
	RepState string  `json:"rep_state"`
	Feedback string  `json:"feedback"`
}

// RoutineState is the sequencer's position, for the live state view.
type RoutineState struct {
	Active bool   `json:"active"`
	Step   int    `json:"step,omitempty"`
	Total  int    `json:"total,omitempty"`
	Label  string `json:"label,omitempty"`
	Target int    `json:"target_reps,omitempty"`
}

// State is the live session snapshot served to the presentation layer.
type State struct {
	Exercise           string              `json:"exercise"`
	ExerciseName       string              `json:"exercise_name"`
	Difficulty         exercise.Difficulty `json:"difficulty"`
	Thresholds         exercise.Thresholds `json:"thresholds"`
	Count              int                 `json:"count"`
	Calories           float64             `json:"calories"`
	RepState           string              `json:"rep_state"`
	LastAngle          float64             `json:"last_angle"`
	Feedback           string              `json:"feedback"`
	ChallengeActive    bool                `json:"challenge_active"`
	ChallengeRemaining int                 `json:"challenge_remaining"`
	GameOver           bool                `json:"game_over"`
	RestRemaining      int                 `json:"rest_remaining"`
	Routine            RoutineState        `json:"routine"`
}

// Engine owns all mutable session state and serializes pose frames, 1 Hz
// timer ticks, and user requests into one event queue, so no two ledger
// effects ever interleave. Public methods enqueue onto the queue and wait;
// Run drains it.
type Engine struct {
	log      *slog.Logger
	ledger   *ledger.Ledger
	notifier notify.Notifier

	profile    exercise.Profile
	difficulty exercise.Difficulty
	thresholds exercise.Thresholds
	detector   *RepDetector
	session    *SessionCounter
	challenge  *ChallengeTimer
	rest       *RestTimer
	routine    *Routine

	lastAngle       float64
	feedback        string
	recordAnnounced bool

	clock  func() time.Time
	events chan func()
}

// New builds an engine around a loaded ledger and a notifier.
func New(cfg Config, lg *ledger.Ledger, notifier notify.Notifier, log *slog.Logger) *Engine {
	if cfg.Profile.ID == "" {
		cfg.Profile = exercise.Default()
	}
	if !cfg.Difficulty.Valid() {
		cfg.Difficulty = exercise.Normal
	}
	th := exercise.Resolve(cfg.Profile, cfg.Difficulty)
	return &Engine{
		log:        log,
		ledger:     lg,
		notifier:   notifier,
		profile:    cfg.Profile,
		difficulty: cfg.Difficulty,
		thresholds: th,
		detector:   NewRepDetector(cfg.Profile.Type, th),
		session:    NewSessionCounter(cfg.Profile, cfg.UserWeightKg),
		challenge:  NewChallengeTimer(cfg.ChallengeSeconds),
		rest:       NewRestTimer(cfg.RestSeconds),
		routine:    &Routine{},
		feedback:   "Go!",
		clock:      time.Now,
		events:     make(chan func()),
	}
}

// Run drains the event queue and drives the 1 Hz timers until ctx is
// canceled. Timer expiry is handled on the same goroutine as frames, so a
// challenge timeout and a pose-driven rep can never race.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		case fn := <-e.events:
			fn()
		}
	}
}

// call runs fn on the event loop and waits for it. Requires Run to be
// active.
func (e *Engine) call(fn func()) {
	done := make(chan struct{})
	e.events <- func() {
		fn()
		close(done)
	}
	<-done
}

// --- public API; each routes through the serial queue ---

// HandleFrame feeds one pose frame through the rep detector.
func (e *Engine) HandleFrame(f pose.Frame) FrameResult {
	var res FrameResult
	e.call(func() { res = e.handleFrame(f) })
	return res
}

// FinishSet finalizes the current set manually.
func (e *Engine) FinishSet() (ledger.FinalizeResult, error) {
	var (
		res ledger.FinalizeResult
		err error
	)
	e.call(func() { res, err = e.finishSet(e.currentMode()) })
	return res, err
}

// SelectExercise switches the active exercise, resetting the detector and
// the current set.
func (e *Engine) SelectExercise(id string) error {
	var err error
	e.call(func() { err = e.selectExercise(id) })
	return err
}

// SetDifficulty re-resolves thresholds; the in-flight rep is discarded.
func (e *Engine) SetDifficulty(d exercise.Difficulty) error {
	var err error
	e.call(func() { err = e.setDifficulty(d) })
	return err
}

// StartChallenge enters challenge mode and arms the countdown.
func (e *Engine) StartChallenge() {
	e.call(e.startChallenge)
}

// ExitChallenge leaves challenge mode (including game over), resetting the
// count and the timer.
func (e *Engine) ExitChallenge() {
	e.call(e.exitChallenge)
}

// StartRoutine begins the daily routine. Nil steps means the built-in one.
func (e *Engine) StartRoutine(steps []RoutineStep) error {
	var err error
	e.call(func() { err = e.startRoutine(steps) })
	return err
}

// SkipRest ends the rest countdown early.
func (e *Engine) SkipRest() {
	e.call(func() { e.rest.Skip() })
}

// State returns the live session snapshot.
func (e *Engine) State() State {
	var s State
	e.call(func() { s = e.state() })
	return s
}

// Progress returns the ledger snapshot.
func (e *Engine) Progress() ledger.Snapshot {
	var s ledger.Snapshot
	e.call(func() { s = e.ledger.Snapshot() })
	return s
}

// History returns the set history for one exercise.
func (e *Engine) History(exerciseID string) []ledger.SetRecord {
	var recs []ledger.SetRecord
	e.call(func() { recs = e.ledger.History(exerciseID) })
	return recs
}

// Export serializes the ledger keys to a flat document.
func (e *Engine) Export() (map[string]string, error) {
	var (
		doc map[string]string
		err error
	)
	e.call(func() { doc, err = e.ledger.Export() })
	return doc, err
}

// Import overwrites the ledger keys present in the document and reloads.
func (e *Engine) Import(doc map[string]string) error {
	var err error
	e.call(func() { err = e.ledger.Import(doc) })
	return err
}

// --- event-loop internals; must only run on the loop goroutine ---

func (e *Engine) currentMode() ledger.Mode {
	if e.challenge.Active() {
		return ledger.ModeChallenge
	}
	return ledger.ModeStandard
}

func (e *Engine) handleFrame(f pose.Frame) FrameResult {
	res := FrameResult{
		Count:    e.session.Reps(),
		Calories: e.session.Calories(),
		RepState: e.detector.State().String(),
		Feedback: e.feedback,
	}

	// Game over is terminal; frames do nothing until the user exits.
	if e.challenge.GameOver() {
		res.Skipped = true
		return res
	}

	a, b, c, ok := f.Triple(e.profile.Joints)
	if !ok {
		res.Skipped = true
		return res
	}

	angle := pose.Angle(a, b, c)
	e.lastAngle = angle
	res.Angle = angle

	switch e.detector.Observe(angle) {
	case EventRepCompleted:
		e.completeRep()
		res.Event = "rep_completed"
	case EventFormWarning:
		e.feedback = "Incomplete range!"
		res.Event = "form_warning"
	}

	res.Count = e.session.Reps()
	res.Calories = e.session.Calories()
	res.RepState = e.detector.State().String()
	res.Feedback = e.feedback
	return res
}

func (e *Engine) completeRep() {
	e.session.AddRep()
	count := e.session.Reps()

	best := e.ledger.Best(e.profile.ID)
	if !e.challenge.Active() && count > best && !e.recordAnnounced {
		e.feedback = "NEW RECORD!"
		e.notifier.Speak("New Record!")
		e.recordAnnounced = true
		return
	}
	e.feedback = "Nice Rep!"
	e.notifier.Speak(fmt.Sprintf("%d", count))
}

func (e *Engine) finishSet(mode ledger.Mode) (ledger.FinalizeResult, error) {
	reps := e.session.Reps()
	routineActive := e.routine.Active()

	// Zero reps outside a routine is a silent no-op: nothing to record and
	// the routine has no step to advance.
	if reps == 0 && !routineActive {
		return ledger.FinalizeResult{}, nil
	}

	res, err := e.ledger.FinalizeSet(e.profile, reps, mode, e.clock())
	if err != nil {
		return ledger.FinalizeResult{}, err
	}
	if reps > 0 {
		e.notifier.Speak("Set Saved.")
		for _, tr := range res.NewTrophies {
			e.notifier.Speak("Trophy unlocked: " + tr.Name)
		}
	}

	e.detector.Reset()
	e.session.Reset()
	e.recordAnnounced = false
	e.feedback = "Set Saved!"

	if routineActive {
		next, done := e.routine.Advance()
		if done {
			if err := e.ledger.AddBonusXP(RoutineBonusXP); err != nil {
				return res, err
			}
			e.notifier.Speak("Daily routine complete! Bonus XP earned.")
			e.feedback = "Routine complete!"
		} else {
			if err := e.selectExercise(next.Exercise); err != nil {
				return res, err
			}
			e.notifier.Speak("Next up: " + e.profile.Name)
		}
		return res, nil
	}

	if mode == ledger.ModeStandard && reps > 0 {
		e.rest.Start()
	}
	return res, nil
}

func (e *Engine) tick() {
	if e.challenge.Tick() {
		// Forced finalize on timeout; the timer has latched game over.
		if _, err := e.finishSet(ledger.ModeChallenge); err != nil {
			e.log.Error("challenge finalize failed", "error", err)
		}
		e.notifier.Speak("Time's up!")
		e.feedback = "Time's up!"
	}
	if e.rest.Tick() {
		e.notifier.Speak("Rest over. Go!")
	}
}

func (e *Engine) selectExercise(id string) error {
	p, ok := exercise.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown exercise %q", id)
	}
	e.profile = p
	e.thresholds = exercise.Resolve(p, e.difficulty)
	e.detector = NewRepDetector(p.Type, e.thresholds)
	e.session.Reprofile(p)
	e.lastAngle = 0
	e.recordAnnounced = false
	e.feedback = "Go!"
	return nil
}

func (e *Engine) setDifficulty(d exercise.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("unknown difficulty %q", d)
	}
	e.difficulty = d
	e.thresholds = exercise.Resolve(e.profile, d)
	e.detector.Retune(e.thresholds)
	return nil
}

func (e *Engine) startChallenge() {
	e.challenge.Start()
	e.detector.Reset()
	e.session.Reset()
	e.recordAnnounced = false
	e.feedback = "Challenge on!"
	e.notifier.Speak("Challenge started!")
}

func (e *Engine) exitChallenge() {
	e.challenge.Exit()
	e.detector.Reset()
	e.session.Reset()
	e.feedback = "Go!"
}

func (e *Engine) startRoutine(steps []RoutineStep) error {
	if steps == nil {
		steps = DefaultRoutine()
	}
	if len(steps) == 0 {
		return fmt.Errorf("routine has no steps")
	}
	for _, s := range steps {
		if _, ok := exercise.Lookup(s.Exercise); !ok {
			return fmt.Errorf("routine step names unknown exercise %q", s.Exercise)
		}
	}
	e.routine.Start(steps)
	if err := e.selectExercise(steps[0].Exercise); err != nil {
		return err
	}
	e.notifier.Speak("Routine started: " + steps[0].Label)
	return nil
}

func (e *Engine) state() State {
	s := State{
		Exercise:           e.profile.ID,
		ExerciseName:       e.profile.Name,
		Difficulty:         e.difficulty,
		Thresholds:         e.thresholds,
		Count:              e.session.Reps(),
		Calories:           e.session.Calories(),
		RepState:           e.detector.State().String(),
		LastAngle:          e.lastAngle,
		Feedback:           e.feedback,
		ChallengeActive:    e.challenge.Active(),
		ChallengeRemaining: e.challenge.Remaining(),
		GameOver:           e.challenge.GameOver(),
		RestRemaining:      e.rest.Remaining(),
	}
	if step, ok := e.routine.Current(); ok {
		n, total := e.routine.Progress()
		s.Routine = RoutineState{
			Active: true,
			Step:   n,
			Total:  total,
			Label:  step.Label,
			Target: step.TargetReps,
		}
	}
	return s
}
