package engine

import (
	"math"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
)

// SessionCounter accumulates the current set: repetition count and a calorie
// estimate scaled to the user's body weight. Reset on exercise change and on
// set finalize.
type SessionCounter struct {
	reps     int
	calories float64

	calPerRep    float64
	userWeightKg float64
}

// NewSessionCounter builds a counter for the given profile and user weight.
func NewSessionCounter(p exercise.Profile, userWeightKg float64) *SessionCounter {
	if userWeightKg <= 0 {
		userWeightKg = exercise.ReferenceWeightKg
	}
	return &SessionCounter{calPerRep: p.CaloriesPerRep, userWeightKg: userWeightKg}
}

// AddRep records one completed repetition. The calorie total is rounded to
// one decimal after every addition so the rounding error stays bounded
// per rep instead of compounding across a long set.
func (s *SessionCounter) AddRep() {
	s.reps++
	add := s.calPerRep * (s.userWeightKg / exercise.ReferenceWeightKg)
	s.calories = math.Round((s.calories+add)*10) / 10
}

// Reset zeroes the set, keeping the profile calibration.
func (s *SessionCounter) Reset() {
	s.reps = 0
	s.calories = 0
}

// Reprofile switches the counter to a new exercise and resets the set.
func (s *SessionCounter) Reprofile(p exercise.Profile) {
	s.calPerRep = p.CaloriesPerRep
	s.Reset()
}

// Reps returns the current-set repetition count.
func (s *SessionCounter) Reps() int { return s.reps }

// Calories returns the current-set calorie estimate.
func (s *SessionCounter) Calories() float64 { return s.calories }
