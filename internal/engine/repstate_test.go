package engine

import (
	"testing"

	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
)

// squat thresholds at normal difficulty
var squatTh = exercise.Thresholds{Active: 100, Rest: 160}

// jumping jack thresholds at normal difficulty
var jackTh = exercise.Thresholds{Active: 140, Rest: 30}

func runSequence(d *RepDetector, angles []float64) (reps, warnings int) {
	for _, a := range angles {
		switch d.Observe(a) {
		case EventRepCompleted:
			reps++
		case EventFormWarning:
			warnings++
		}
	}
	return reps, warnings
}

// TestContract_FullRep verifies the canonical squat sequence: descend through
// the active zone and return past rest yields exactly one rep and no warning.
func TestContract_FullRep(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	reps, warnings := runSequence(d, []float64{170, 150, 90, 170})
	if reps != 1 || warnings != 0 {
		t.Errorf("got %d reps %d warnings, want 1 rep 0 warnings", reps, warnings)
	}
	if d.State() != StateRest {
		t.Errorf("end state = %v, want rest", d.State())
	}
}

// TestContract_PartialRep verifies turning back before the active zone raises
// one form warning and counts nothing.
func TestContract_PartialRep(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	reps, warnings := runSequence(d, []float64{170, 150, 170})
	if reps != 0 || warnings != 1 {
		t.Errorf("got %d reps %d warnings, want 0 reps 1 warning", reps, warnings)
	}
}

// TestContract_DirectToActive verifies a fast descent that skips the
// intermediate zone in one sample still counts a single rep.
func TestContract_DirectToActive(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	reps, warnings := runSequence(d, []float64{170, 90, 170})
	if reps != 1 || warnings != 0 {
		t.Errorf("got %d reps %d warnings, want 1 rep 0 warnings", reps, warnings)
	}
}

// TestContract_OneRepRegardlessOfSampleRate verifies the hysteresis property:
// any monotonic traversal from rest to active and back counts exactly one
// rep, however finely or coarsely it is sampled.
func TestContract_OneRepRegardlessOfSampleRate(t *testing.T) {
	sequences := [][]float64{
		{170, 90, 170},
		{170, 150, 120, 101, 99, 90, 99, 120, 150, 159, 161},
		{165, 160, 140, 120, 100, 80, 60, 80, 100, 120, 140, 160, 165},
		{170, 130, 110, 95, 95, 95, 130, 170, 170},
	}
	for i, seq := range sequences {
		d := NewRepDetector(exercise.Contract, squatTh)
		reps, warnings := runSequence(d, seq)
		if reps != 1 || warnings != 0 {
			t.Errorf("sequence %d: got %d reps %d warnings, want exactly 1 rep", i, reps, warnings)
		}
	}
}

// TestContract_NoDoubleCountAtBoundary verifies a reading bouncing around a
// single threshold cannot register extra reps.
func TestContract_NoDoubleCountAtBoundary(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	// Bounce around the active bound while deep in the rep, then finish.
	reps, _ := runSequence(d, []float64{170, 99, 101, 99, 101, 99, 170})
	if reps != 1 {
		t.Errorf("got %d reps, want 1 despite boundary noise", reps)
	}

	d.Reset()
	// Bounce around the rest bound without ever reaching active.
	reps, _ = runSequence(d, []float64{170, 159, 161, 159, 161})
	if reps != 0 {
		t.Errorf("got %d reps from rest-boundary noise, want 0", reps)
	}
}

// TestExtend_CountsOnOutboundCrossing verifies extending exercises count on
// the rest-to-active transition, the mirror of contracting ones.
func TestExtend_CountsOnOutboundCrossing(t *testing.T) {
	d := NewRepDetector(exercise.Extend, jackTh)

	if ev := d.Observe(150); ev != EventRepCompleted {
		t.Errorf("crossing active: got %v, want rep completed", ev)
	}
	// Still up: nothing more.
	if ev := d.Observe(170); ev != EventNone {
		t.Errorf("holding active: got %v, want none", ev)
	}
	// Arms back down past rest, then up again: second rep.
	if ev := d.Observe(20); ev != EventNone {
		t.Errorf("returning to rest: got %v, want none", ev)
	}
	if ev := d.Observe(150); ev != EventRepCompleted {
		t.Errorf("second crossing: got %v, want rep completed", ev)
	}
}

// TestExtend_NoFormWarning verifies extending exercises never warn: a partial
// raise simply does not count.
func TestExtend_NoFormWarning(t *testing.T) {
	d := NewRepDetector(exercise.Extend, jackTh)
	reps, warnings := runSequence(d, []float64{20, 100, 20, 100, 20})
	if reps != 0 || warnings != 0 {
		t.Errorf("got %d reps %d warnings, want 0 and 0", reps, warnings)
	}
}

// TestObserve_AtMostOneEvent verifies no single sample can produce more than
// one event, by construction of the return type and the transition table.
func TestObserve_AtMostOneEvent(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	for _, angle := range []float64{170, 150, 90, 170, 150, 170, 90, 170, 0, 180} {
		ev := d.Observe(angle)
		if ev != EventNone && ev != EventRepCompleted && ev != EventFormWarning {
			t.Fatalf("Observe(%v) returned invalid event %v", angle, ev)
		}
	}
}

// TestRetune_DiscardsInFlightRep verifies a difficulty change mid-rep resets
// to rest instead of judging the rep against mixed thresholds.
func TestRetune_DiscardsInFlightRep(t *testing.T) {
	d := NewRepDetector(exercise.Contract, squatTh)
	d.Observe(170)
	d.Observe(90) // active
	d.Retune(exercise.Thresholds{Active: 80, Rest: 170})
	if d.State() != StateRest {
		t.Errorf("state after retune = %v, want rest", d.State())
	}
	if ev := d.Observe(175); ev != EventNone {
		t.Errorf("got %v after retune, want none (old rep discarded)", ev)
	}
}
