// Package engine turns angle samples into counted repetitions and runs the
// session-scoped state: the rep detector, the set counter, and the timed
// modes. Everything here is driven from one serial event loop; see Engine.
package engine

import "github.com/KoBe1628/ai-fitness-tracker/internal/exercise"

// RepState is the detector's position in the rep cycle.
type RepState int

const (
	// StateRest is the initial state: the joint is in the rest zone.
	StateRest RepState = iota
	// StateDescending means the joint left the rest zone but has not reached
	// the active zone. Only contracting exercises use it; it exists to catch
	// visibly truncated reps.
	StateDescending
	// StateActive means the joint crossed into the active zone since leaving
	// rest.
	StateActive
)

func (s RepState) String() string {
	switch s {
	case StateRest:
		return "rest"
	case StateDescending:
		return "descending"
	case StateActive:
		return "active"
	}
	return "unknown"
}

// RepEvent is the outcome of feeding one angle sample to the detector.
// At most one event is emitted per sample.
type RepEvent int

const (
	EventNone RepEvent = iota
	EventRepCompleted
	// EventFormWarning fires when a contracting rep turns back before
	// reaching the active zone.
	EventFormWarning
)

// FormWarningReason is the only warning the detector raises.
const FormWarningReason = "incomplete range"

// RepDetector is the per-exercise repetition state machine. One instance per
// selected exercise; Reset is called whenever the exercise changes or a set
// is finalized.
type RepDetector struct {
	typ   exercise.KinematicType
	th    exercise.Thresholds
	state RepState
}

// NewRepDetector builds a detector for the given kinematic type and resolved
// thresholds. Thresholds are assumed well-formed per the registry invariant
// and hold constant during an ongoing rep; call Retune on difficulty change.
func NewRepDetector(typ exercise.KinematicType, th exercise.Thresholds) *RepDetector {
	return &RepDetector{typ: typ, th: th}
}

// Reset puts the detector back to rest.
func (d *RepDetector) Reset() {
	d.state = StateRest
}

// Retune swaps the thresholds and resets. Used when difficulty changes
// mid-session; the in-flight rep is discarded rather than judged against
// mixed thresholds.
func (d *RepDetector) Retune(th exercise.Thresholds) {
	d.th = th
	d.state = StateRest
}

// State returns the current rep state.
func (d *RepDetector) State() RepState {
	return d.state
}

// Observe feeds one angle sample and returns the resulting event, if any.
//
// Contracting exercises count a rep on the return crossing: the joint must
// close past the active bound and then open back past the rest bound.
// Extending exercises count on the outbound crossing (rest -> active) and
// use no intermediate state: an arms-raised exercise has no partial-rep case.
func (d *RepDetector) Observe(angle float64) RepEvent {
	if d.typ == exercise.Extend {
		return d.observeExtend(angle)
	}
	return d.observeContract(angle)
}

func (d *RepDetector) observeContract(angle float64) RepEvent {
	switch d.state {
	case StateRest:
		switch {
		case angle < d.th.Active:
			d.state = StateActive
		case angle < d.th.Rest:
			d.state = StateDescending
		}
	case StateDescending:
		switch {
		case angle < d.th.Active:
			d.state = StateActive
		case angle >= d.th.Rest:
			d.state = StateRest
			return EventFormWarning
		}
	case StateActive:
		if angle >= d.th.Rest {
			d.state = StateRest
			return EventRepCompleted
		}
	}
	return EventNone
}

func (d *RepDetector) observeExtend(angle float64) RepEvent {
	switch d.state {
	case StateRest:
		if angle > d.th.Active {
			d.state = StateActive
			return EventRepCompleted
		}
	case StateActive:
		if angle < d.th.Rest {
			d.state = StateRest
		}
	}
	return EventNone
}
