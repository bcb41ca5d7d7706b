package pose

import (
	"math"
	"testing"
)

// TestAngle_RightAngle verifies a 90 degree joint is measured as 90.
func TestAngle_RightAngle(t *testing.T) {
	a := Keypoint{X: 0, Y: 1}
	b := Keypoint{X: 0, Y: 0}
	c := Keypoint{X: 1, Y: 0}
	got := Angle(a, b, c)
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("Angle = %v, want 90", got)
	}
}

// TestAngle_StraightLine verifies a fully extended joint reads 180.
func TestAngle_StraightLine(t *testing.T) {
	a := Keypoint{X: -1, Y: 0}
	b := Keypoint{X: 0, Y: 0}
	c := Keypoint{X: 1, Y: 0}
	got := Angle(a, b, c)
	if math.Abs(got-180) > 1e-9 {
		t.Errorf("Angle = %v, want 180", got)
	}
}

// TestAngle_FoldsReflexAngles verifies results above 180 are replaced with
// 360 minus the raw value, keeping the range at [0, 180].
func TestAngle_FoldsReflexAngles(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c Keypoint
		want    float64
	}{
		// raw atan2 difference is 270, folded to 90
		{"reflex quarter", Keypoint{X: 1, Y: 0}, Keypoint{}, Keypoint{X: 0, Y: -1}, 90},
		{"acute", Keypoint{X: 1, Y: 1}, Keypoint{}, Keypoint{X: 1, Y: 0}, 45},
	}
	for _, tc := range cases {
		got := Angle(tc.a, tc.b, tc.c)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: Angle = %v, want %v", tc.name, got, tc.want)
		}
		if got < 0 || got > 180 {
			t.Errorf("%s: Angle = %v outside [0,180]", tc.name, got)
		}
	}
}

// TestTriple_ConfidenceGate verifies that missing or low-confidence keypoints
// make the whole triple unusable, so the frame is skipped.
func TestTriple_ConfidenceGate(t *testing.T) {
	names := [3]string{"left_shoulder", "left_elbow", "left_wrist"}

	full := Frame{Keypoints: []Keypoint{
		{Name: "left_shoulder", X: 0, Y: 0, Score: 0.9},
		{Name: "left_elbow", X: 1, Y: 0, Score: 0.8},
		{Name: "left_wrist", X: 2, Y: 0, Score: 0.7},
	}}
	if _, _, _, ok := full.Triple(names); !ok {
		t.Error("expected full-confidence frame to be usable")
	}

	lowScore := Frame{Keypoints: []Keypoint{
		{Name: "left_shoulder", X: 0, Y: 0, Score: 0.9},
		{Name: "left_elbow", X: 1, Y: 0, Score: 0.3}, // at threshold, not above
		{Name: "left_wrist", X: 2, Y: 0, Score: 0.7},
	}}
	if _, _, _, ok := lowScore.Triple(names); ok {
		t.Error("expected frame with score at threshold to be skipped")
	}

	missing := Frame{Keypoints: []Keypoint{
		{Name: "left_shoulder", X: 0, Y: 0, Score: 0.9},
		{Name: "left_wrist", X: 2, Y: 0, Score: 0.7},
	}}
	if _, _, _, ok := missing.Triple(names); ok {
		t.Error("expected frame with missing keypoint to be skipped")
	}
}

// TestTriple_Order verifies keypoints come back in profile order
// (proximal, vertex, distal), not frame order.
func TestTriple_Order(t *testing.T) {
	f := Frame{Keypoints: []Keypoint{
		{Name: "left_ankle", X: 3, Score: 0.9},
		{Name: "left_hip", X: 1, Score: 0.9},
		{Name: "left_knee", X: 2, Score: 0.9},
	}}
	a, b, c, ok := f.Triple([3]string{"left_hip", "left_knee", "left_ankle"})
	if !ok {
		t.Fatal("expected usable frame")
	}
	if a.X != 1 || b.X != 2 || c.X != 3 {
		t.Errorf("got order %v %v %v, want hip knee ankle", a.Name, b.Name, c.Name)
	}
}
