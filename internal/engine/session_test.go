package engine

import (
	"math"
	"testing"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
)

// TestCalories_ReferenceWeight verifies the worked example: 5 squat reps at
// the 70 kg reference weight yields exactly 6.0 kcal.
func TestCalories_ReferenceWeight(t *testing.T) {
	squat, _ := exercise.Lookup("squat")
	s := NewSessionCounter(squat, 70)
	for i := 0; i < 5; i++ {
		s.AddRep()
	}
	if s.Reps() != 5 {
		t.Errorf("Reps = %d, want 5", s.Reps())
	}
	if s.Calories() != 6.0 {
		t.Errorf("Calories = %v, want 6.0", s.Calories())
	}
}

// TestCalories_WeightScaling verifies the per-rep estimate scales linearly
// with body weight against the 70 kg reference.
func TestCalories_WeightScaling(t *testing.T) {
	curl, _ := exercise.Lookup("left_curl")
	s := NewSessionCounter(curl, 105) // 1.5x reference
	for i := 0; i < 3; i++ {
		s.AddRep()
	}
	// 0.4 * 1.5 = 0.6 per rep
	if math.Abs(s.Calories()-1.8) > 1e-9 {
		t.Errorf("Calories = %v, want 1.8", s.Calories())
	}
}

// TestCalories_RoundedPerRep verifies rounding happens after every addition,
// not once at the end, so the accumulator always carries one decimal.
func TestCalories_RoundedPerRep(t *testing.T) {
	jack, _ := exercise.Lookup("jumping_jack")
	s := NewSessionCounter(jack, 80) // 0.3 * 80/70 = 0.342857... per rep
	wants := []float64{0.3, 0.6, 0.9}
	for i, want := range wants {
		s.AddRep()
		if s.Calories() != want {
			t.Errorf("after rep %d: Calories = %v, want %v", i+1, s.Calories(), want)
		}
	}
}

// TestCounter_Reset verifies Reset zeroes the set but keeps the calibration.
func TestCounter_Reset(t *testing.T) {
	squat, _ := exercise.Lookup("squat")
	s := NewSessionCounter(squat, 70)
	s.AddRep()
	s.Reset()
	if s.Reps() != 0 || s.Calories() != 0 {
		t.Errorf("after reset: %d reps %v kcal, want zeros", s.Reps(), s.Calories())
	}
	s.AddRep()
	if s.Calories() != 1.2 {
		t.Errorf("calibration lost on reset: got %v, want 1.2", s.Calories())
	}
}

// TestCounter_ZeroWeightDefaultsToReference verifies a missing user weight
// falls back to the reference rather than zeroing every estimate.
func TestCounter_ZeroWeightDefaultsToReference(t *testing.T) {
	squat, _ := exercise.Lookup("squat")
	s := NewSessionCounter(squat, 0)
	s.AddRep()
	if s.Calories() != 1.2 {
		t.Errorf("Calories = %v, want 1.2", s.Calories())
	}
}
