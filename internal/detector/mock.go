package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset poses below are expressed in a hand-local grid (wrist at (0,1),
// middle MCP at (0,0), y growing downward) and mapped into the
// detector's 0..1 image space by pose(). They classify as the letters
// their names say and anchor the pipeline and engine tests.

// pose maps hand-local coordinates into image coordinates with the
// wrist at (0.5, 0.9) and a hand size of 0.35.
func pose(local [NumLandmarks][2]float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	for i, p := range local {
		lm.Points[i] = Point3D{
			X: 0.5 + 0.35*p[0],
			Y: 0.55 + 0.35*p[1],
		}
	}
	return lm
}

// curled finger chains shared by several poses.
var (
	middleCurled = [4][2]float64{{0, 0}, {0, -0.1}, {0.02, -0.05}, {0.05, 0.1}}
	ringCurled   = [4][2]float64{{-0.25, 0.05}, {-0.25, -0.05}, {-0.22, 0.05}, {-0.2, 0.2}}
	pinkyCurled  = [4][2]float64{{-0.5, 0.15}, {-0.5, 0.05}, {-0.47, 0.15}, {-0.45, 0.3}}
)

func build(thumb, index, middle, ring, pinky [4][2]float64) HandLandmarks {
	var local [NumLandmarks][2]float64
	local[Wrist] = [2]float64{0, 1}
	chains := [5][4][2]float64{thumb, index, middle, ring, pinky}
	for c, chain := range chains {
		for j, p := range chain {
			local[1+c*4+j] = p
		}
	}
	return pose(local)
}

// LetterDLandmarks returns a hand signing the letter D: index extended,
// the rest curled, thumb resting against the middle finger.
func LetterDLandmarks() HandLandmarks {
	return build(
		[4][2]float64{{0.15, 0.7}, {0.25, 0.55}, {0.4, 0.45}, {0.5, 0.35}},
		[4][2]float64{{0.25, 0.05}, {0.25, -0.3}, {0.25, -0.6}, {0.25, -0.9}},
		middleCurled,
		ringCurled,
		pinkyCurled,
	)
}

// OpenPalmLandmarks returns a flat open hand, all four fingers extended
// and the thumb out wide. It classifies as the neutral open marker and
// is the wave gesture's precondition.
func OpenPalmLandmarks() HandLandmarks {
	return build(
		[4][2]float64{{0.3, 0.7}, {0.55, 0.55}, {0.8, 0.4}, {1.0, 0.3}},
		[4][2]float64{{0.25, 0.05}, {0.25, -0.3}, {0.25, -0.6}, {0.25, -0.9}},
		[4][2]float64{{0, 0}, {0, -0.35}, {0, -0.65}, {0, -0.95}},
		[4][2]float64{{-0.25, 0.05}, {-0.25, -0.28}, {-0.25, -0.6}, {-0.25, -0.85}},
		[4][2]float64{{-0.5, 0.15}, {-0.52, -0.15}, {-0.54, -0.45}, {-0.55, -0.7}},
	)
}

// LetterALandmarks returns a closed fist with the thumb alongside the
// index knuckle, the letter A.
func LetterALandmarks() HandLandmarks {
	return build(
		[4][2]float64{{0.2, 0.7}, {0.4, 0.5}, {0.55, 0.25}, {0.65, 0.0}},
		[4][2]float64{{0.25, 0.05}, {0.25, -0.05}, {0.28, 0.05}, {0.3, 0.2}},
		middleCurled,
		ringCurled,
		pinkyCurled,
	)
}
