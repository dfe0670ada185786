package classify

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayusman/fingerspell/internal/detector"
)

// ErrInvalidFrame is returned for malformed input: fewer than 21
// keypoints or non-finite coordinates. The classifier's ratio arithmetic
// is undefined for such frames, so they are rejected up front instead of
// silently producing a wrong symbol.
var ErrInvalidFrame = errors.New("invalid hand frame")

// Keypoint is one 2D hand landmark in frame coordinates.
type Keypoint struct {
	X float64
	Y float64
}

// HandFrame is the full 21-keypoint snapshot of one detected hand,
// indexed by the MediaPipe landmark layout (detector.Wrist etc.).
type HandFrame [detector.NumLandmarks]Keypoint

// NewHandFrame validates pts and builds a HandFrame from the first 21
// keypoints. It fails with ErrInvalidFrame on short input or NaN/Inf
// coordinates.
func NewHandFrame(pts []Keypoint) (HandFrame, error) {
	var f HandFrame
	if len(pts) < detector.NumLandmarks {
		return f, fmt.Errorf("%w: got %d keypoints, need %d", ErrInvalidFrame, len(pts), detector.NumLandmarks)
	}
	for i := 0; i < detector.NumLandmarks; i++ {
		p := pts[i]
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return f, fmt.Errorf("%w: keypoint %d is not finite", ErrInvalidFrame, i)
		}
		f[i] = p
	}
	return f, nil
}

// FrameFromLandmarks bridges a detector result into a HandFrame,
// dropping the z coordinate. The classifier only uses relative 2D
// geometry, so the detector's normalized coordinate space is fine as-is.
func FrameFromLandmarks(h *detector.HandLandmarks) (HandFrame, error) {
	if h == nil {
		return HandFrame{}, fmt.Errorf("%w: nil landmarks", ErrInvalidFrame)
	}
	pts := make([]Keypoint, detector.NumLandmarks)
	for i := range h.Points {
		pts[i] = Keypoint{X: h.Points[i].X, Y: h.Points[i].Y}
	}
	return NewHandFrame(pts)
}

// HandSize returns the wrist to middle-MCP distance, the normalization
// unit for every geometric threshold. It makes classification invariant
// to the hand's distance from the camera.
func HandSize(f HandFrame) float64 {
	return dist(f[detector.MiddleMCP], f[detector.Wrist])
}

func dist(a, b Keypoint) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
