// Package exercise defines the static exercise profile registry and the
// difficulty-adjusted detection thresholds derived from it.
package exercise

// KinematicType says which way the tracked joint angle moves to reach the
// active position.
type KinematicType string

const (
	// Contract exercises close the tracked joint: the angle decreases into
	// the active zone (curls, squats).
	Contract KinematicType = "contract"
	// Extend exercises open the tracked joint: the angle increases into the
	// active zone (jumping jacks).
	Extend KinematicType = "extend"
)

// MuscleGroup tags a profile for per-group daily totals and trophies.
type MuscleGroup string

const (
	Arms MuscleGroup = "arms"
	Legs MuscleGroup = "legs"
	Core MuscleGroup = "core"
)

// MuscleGroups lists every group in a stable order.
var MuscleGroups = []MuscleGroup{Arms, Legs, Core}

// Thresholds is a resolved {active, rest} crossing pair in degrees.
// Contract profiles hold active < rest, extend profiles active > rest; the
// gap between the two is the hysteresis band that keeps a noisy reading from
// double counting.
type Thresholds struct {
	Active float64 `json:"active"`
	Rest   float64 `json:"rest"`
}

// ReferenceWeightKg is the body weight the per-rep calorie coefficients were
// calibrated at.
const ReferenceWeightKg = 70.0

// Profile is one registry entry. Immutable; the session only ever reads it.
type Profile struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	// Joints names the tracked triple in (proximal, vertex, distal) order.
	Joints         [3]string     `json:"joints"`
	Type           KinematicType `json:"type"`
	Base           Thresholds    `json:"base_thresholds"`
	CaloriesPerRep float64       `json:"calories_per_rep"`
	Muscles        MuscleGroup   `json:"muscle_group"`
}

// profiles is the registry. Order is stable and user-facing (exercise pickers
// list it as-is), so append only.
var profiles = []Profile{
	{
		ID:             "left_curl",
		Name:           "Left Bicep Curl",
		Joints:         [3]string{"left_shoulder", "left_elbow", "left_wrist"},
		Type:           Contract,
		Base:           Thresholds{Active: 60, Rest: 140},
		CaloriesPerRep: 0.4,
		Muscles:        Arms,
	},
	{
		ID:             "right_curl",
		Name:           "Right Bicep Curl",
		Joints:         [3]string{"right_shoulder", "right_elbow", "right_wrist"},
		Type:           Contract,
		Base:           Thresholds{Active: 60, Rest: 140},
		CaloriesPerRep: 0.4,
		Muscles:        Arms,
	},
	{
		ID:             "squat",
		Name:           "Squat",
		Joints:         [3]string{"left_hip", "left_knee", "left_ankle"},
		Type:           Contract,
		Base:           Thresholds{Active: 100, Rest: 160},
		CaloriesPerRep: 1.2,
		Muscles:        Legs,
	},
	{
		ID:   "jumping_jack",
		Name: "Jumping Jacks",
		// Shoulder abduction: arms swing up past the active bound.
		Joints:         [3]string{"right_hip", "right_shoulder", "right_elbow"},
		Type:           Extend,
		Base:           Thresholds{Active: 140, Rest: 30},
		CaloriesPerRep: 0.3,
		Muscles:        Legs,
	},
	{
		ID:             "pushup",
		Name:           "Push-Up",
		Joints:         [3]string{"left_shoulder", "left_elbow", "left_wrist"},
		Type:           Contract,
		Base:           Thresholds{Active: 90, Rest: 160},
		CaloriesPerRep: 0.5,
		Muscles:        Arms,
	},
	{
		ID:             "situp",
		Name:           "Sit-Up",
		Joints:         [3]string{"left_knee", "left_hip", "left_shoulder"},
		Type:           Contract,
		Base:           Thresholds{Active: 60, Rest: 120},
		CaloriesPerRep: 0.4,
		Muscles:        Core,
	},
}

// Profiles returns the registry in registry order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Lookup returns the profile with the given id.
func Lookup(id string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Default is the exercise selected at startup when the config names none.
func Default() Profile {
	return profiles[0]
}
