package exercise

// Difficulty selects how far through the range of motion a rep must travel
// before it counts.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Normal, Hard:
		return true
	}
	return false
}

// offset is a signed degree adjustment applied to a profile's base thresholds.
type offset struct {
	active float64
	rest   float64
}

// difficultyOffsets is configuration, not derived state; it never changes at
// runtime. Offsets are written for contracting exercises and negated for
// extending ones, so that raising the difficulty always narrows the accepted
// range.
var difficultyOffsets = map[Difficulty]offset{
	Easy:   {active: +20, rest: -20},
	Normal: {active: 0, rest: 0},
	Hard:   {active: -20, rest: +10},
}

// Resolve applies the difficulty offsets to a profile's base thresholds.
// Unknown difficulties resolve as Normal. The result holds the per-type
// ordering invariant (active < rest for contract, active > rest for extend)
// for every registry profile; see the registry test.
func Resolve(p Profile, d Difficulty) Thresholds {
	off, ok := difficultyOffsets[d]
	if !ok {
		off = difficultyOffsets[Normal]
	}
	if p.Type == Extend {
		off.active, off.rest = -off.active, -off.rest
	}
	return Thresholds{
		Active: p.Base.Active + off.active,
		Rest:   p.Base.Rest + off.rest,
	}
}
