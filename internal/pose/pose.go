// Package pose holds the keypoint types delivered by the pose-estimation
// client and the joint-angle math the rep detector runs on.
package pose

import "math"

// MinScore is the confidence floor for a keypoint to be usable.
// Frames with any required keypoint at or below this are skipped.
const MinScore = 0.3

// Keypoint is a single named 2-D joint position with a confidence score,
// as estimated by the client-side detection model.
type Keypoint struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// Frame is one pose sample: the full set of keypoints for a single video frame.
type Frame struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// Lookup returns the keypoint with the given name, if present.
func (f Frame) Lookup(name string) (Keypoint, bool) {
	for _, k := range f.Keypoints {
		if k.Name == name {
			return k, true
		}
	}
	return Keypoint{}, false
}

// Triple looks up the three keypoints named by an exercise profile and applies
// the confidence gate. ok is false if any keypoint is missing or its score is
// at or below MinScore; callers skip the frame in that case.
func (f Frame) Triple(names [3]string) (a, b, c Keypoint, ok bool) {
	pts := make([]Keypoint, 3)
	for i, name := range names {
		kp, found := f.Lookup(name)
		if !found || kp.Score <= MinScore {
			return Keypoint{}, Keypoint{}, Keypoint{}, false
		}
		pts[i] = kp
	}
	return pts[0], pts[1], pts[2], true
}

// Angle returns the unsigned angle ABC in degrees, in [0, 180].
// B is the vertex (e.g. the elbow for a curl). Defined for any non-degenerate
// input; degenerate points are kept out by the confidence gate upstream.
func Angle(a, b, c Keypoint) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)
	if angle > 180.0 {
		angle = 360.0 - angle
	}
	return angle
}
