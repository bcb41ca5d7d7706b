package engine

// Default countdown durations in seconds; both can be overridden from config.
const (
	DefaultChallengeSeconds = 60
	DefaultRestSeconds      = 45
)

// RoutineBonusXP is granted once when the last daily-routine step finishes.
const RoutineBonusXP = 50

// ChallengeTimer is the fixed-duration challenge countdown. It only moves
// while the challenge is active and keeps a terminal game-over latch that
// needs an explicit Exit before standard mode resumes.
type ChallengeTimer struct {
	duration  int
	remaining int
	active    bool
	gameOver  bool
}

// NewChallengeTimer builds an inert timer with the given duration.
func NewChallengeTimer(seconds int) *ChallengeTimer {
	if seconds <= 0 {
		seconds = DefaultChallengeSeconds
	}
	return &ChallengeTimer{duration: seconds}
}

// Start arms the countdown at full duration.
func (t *ChallengeTimer) Start() {
	t.remaining = t.duration
	t.active = true
	t.gameOver = false
}

// Tick advances one second. It returns true exactly once, on the tick that
// reaches zero; the caller force-finalizes the set and the timer latches
// into game over.
func (t *ChallengeTimer) Tick() (expired bool) {
	if !t.active || t.gameOver {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.gameOver = true
		return true
	}
	return false
}

// Exit leaves challenge mode, clearing the game-over latch and the countdown.
func (t *ChallengeTimer) Exit() {
	t.active = false
	t.gameOver = false
	t.remaining = 0
}

// Active reports whether challenge mode is on (including game over).
func (t *ChallengeTimer) Active() bool { return t.active }

// GameOver reports whether the countdown has expired.
func (t *ChallengeTimer) GameOver() bool { return t.gameOver }

// Remaining returns seconds left on the countdown.
func (t *ChallengeTimer) Remaining() int { return t.remaining }

// RestTimer counts down the between-sets rest period. Inert at zero.
type RestTimer struct {
	duration  int
	remaining int
}

// NewRestTimer builds an inert rest timer with the given duration.
func NewRestTimer(seconds int) *RestTimer {
	if seconds <= 0 {
		seconds = DefaultRestSeconds
	}
	return &RestTimer{duration: seconds}
}

// Start arms the countdown at full duration.
func (t *RestTimer) Start() {
	t.remaining = t.duration
}

// Tick advances one second and returns true exactly once, on the tick that
// reaches zero; the caller fires the rest-over notification.
func (t *RestTimer) Tick() (finished bool) {
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	return t.remaining == 0
}

// Skip ends the rest early with no side effects.
func (t *RestTimer) Skip() {
	t.remaining = 0
}

// Remaining returns seconds left; zero means inert.
func (t *RestTimer) Remaining() int { return t.remaining }

// RoutineStep is one entry of the daily routine.
type RoutineStep struct {
	Exercise   string `json:"exercise"`
	TargetReps int    `json:"target_reps"`
	Label      string `json:"label"`
}

// DefaultRoutine is the built-in daily circuit.
func DefaultRoutine() []RoutineStep {
	return []RoutineStep{
		{Exercise: "squat", TargetReps: 10, Label: "Warm up those legs"},
		{Exercise: "left_curl", TargetReps: 10, Label: "Left arm"},
		{Exercise: "right_curl", TargetReps: 10, Label: "Right arm"},
		{Exercise: "jumping_jack", TargetReps: 15, Label: "Finish strong"},
	}
}

// Routine sequences an ordered list of steps, swapping the active exercise on
// every set finalize while active.
type Routine struct {
	steps  []RoutineStep
	index  int
	active bool
}

// Start begins the routine at step zero. Empty step lists are ignored.
func (r *Routine) Start(steps []RoutineStep) {
	if len(steps) == 0 {
		return
	}
	r.steps = steps
	r.index = 0
	r.active = true
}

// Advance moves to the next step after a set finalize. done is true when the
// finalized set was the last step; the routine deactivates and the caller
// grants the completion bonus.
func (r *Routine) Advance() (next RoutineStep, done bool) {
	if !r.active {
		return RoutineStep{}, false
	}
	r.index++
	if r.index >= len(r.steps) {
		r.active = false
		return RoutineStep{}, true
	}
	return r.steps[r.index], false
}

// Active reports whether a routine is running.
func (r *Routine) Active() bool { return r.active }

// Current returns the step in progress, if any.
func (r *Routine) Current() (RoutineStep, bool) {
	if !r.active || r.index >= len(r.steps) {
		return RoutineStep{}, false
	}
	return r.steps[r.index], true
}

// Progress returns the 1-based step number and total step count.
func (r *Routine) Progress() (step, total int) {
	if !r.active {
		return 0, 0
	}
	return r.index + 1, len(r.steps)
}
