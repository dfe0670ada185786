package classify

import (
	"math"

	"github.com/ayusman/fingerspell/internal/detector"
)

// degenerateHandSize is the hand size below which geometry is treated
// as collapsed (wrist and middle MCP coincide) rather than divided by.
const degenerateHandSize = 1e-9

// Classifier maps one HandFrame to a Symbol. It holds no state between
// calls; hand-size normalization is recomputed per frame.
type Classifier struct {
	t Thresholds
}

// New creates a Classifier with the given thresholds.
func New(t Thresholds) *Classifier {
	return &Classifier{t: t}
}

// NewDefault creates a Classifier with DefaultThresholds.
func NewDefault() *Classifier {
	return New(DefaultThresholds())
}

// Classify returns the raw symbol for a single frame. It is a total
// function: ambiguous shapes resolve to SymbolFist, never an error.
//
// Dispatch is keyed on which of the four non-thumb fingers are extended,
// then disambiguated by secondary geometric tests. Several families can
// structurally overlap; the in-order checks below are the precedence
// that resolves them, so their order must not be rearranged.
func (c *Classifier) Classify(f HandFrame) Symbol {
	size := HandSize(f)
	if size < degenerateHandSize {
		return SymbolFist
	}

	index := c.extended(f, detector.IndexTip, detector.IndexMCP, size)
	middle := c.extended(f, detector.MiddleTip, detector.MiddleMCP, size)
	ring := c.extended(f, detector.RingTip, detector.RingMCP, size)
	pinky := c.extended(f, detector.PinkyTip, detector.PinkyMCP, size)

	switch {
	case index && !middle && !ring && !pinky:
		return c.indexOnly(f, size)
	case index && middle && !ring && !pinky:
		return c.indexMiddle(f, size)
	case index && middle && ring && !pinky:
		return c.threeFingers(f, size)
	case index && middle && ring && pinky:
		return c.openHand(f, size)
	case !index && !middle && !ring && pinky:
		return c.pinkyOnly(f, size)
	case !index && !middle && !ring && !pinky:
		return c.fist(f, size)
	}
	return SymbolFist
}

func (c *Classifier) extended(f HandFrame, tip, mcp int, size float64) bool {
	return dist(f[tip], f[mcp]) > size*c.t.Extended
}

// indexOnly disambiguates G, Q, L, X, and D.
func (c *Classifier) indexOnly(f HandFrame, size float64) Symbol {
	tip := f[detector.IndexTip]
	pip := f[detector.IndexPIP]
	mcp := f[detector.IndexMCP]
	thumb := f[detector.ThumbTip]

	switch {
	case c.horizontal(tip, mcp):
		return "G"
	case tip.Y > f[detector.Wrist].Y:
		// Hand oriented downward (index tip below the wrist): the G
		// shape pointed at the floor, which reads as Q.
		return "Q"
	case dist(thumb, mcp) > size*c.t.ThumbAway:
		return "L"
	case tip.Y > pip.Y-size*c.t.HookDepth:
		// Hooked: tip near or below the PIP joint (y grows downward).
		return "X"
	}
	return "D"
}

// indexMiddle disambiguates H, R, K, P, V, and U.
func (c *Classifier) indexMiddle(f HandFrame, size float64) Symbol {
	iTip := f[detector.IndexTip]
	mTip := f[detector.MiddleTip]
	thumb := f[detector.ThumbTip]

	switch {
	case c.horizontal(iTip, f[detector.IndexMCP]):
		return "H"
	case math.Abs(iTip.X-mTip.X) < size*c.t.CrossedTips:
		return "R"
	case dist(thumb, f[detector.MiddlePIP]) < size*c.t.KnuckleTouch:
		// Thumb between the extended fingers. Hand oriented downward
		// (index tip below the wrist) renders as P instead of K.
		if iTip.Y > f[detector.Wrist].Y {
			return "P"
		}
		return "K"
	case dist(iTip, mTip) > size*c.t.SpreadTips:
		return "V"
	}
	return "U"
}

// threeFingers disambiguates F (thumb pinched to the index tip) from W.
func (c *Classifier) threeFingers(f HandFrame, size float64) Symbol {
	if dist(f[detector.ThumbTip], f[detector.IndexTip]) < size*c.t.ThumbPinch {
		return "F"
	}
	return "W"
}

// openHand disambiguates B, C, and the open/neutral marker.
func (c *Classifier) openHand(f HandFrame, size float64) Symbol {
	thumb := f[detector.ThumbTip]
	iTip := f[detector.IndexTip]
	iMCP := f[detector.IndexMCP]

	toTip := dist(thumb, iTip)
	toKnuckle := dist(thumb, iMCP)

	switch {
	case math.Abs(thumb.X-iMCP.X) < size*c.t.ThumbTucked:
		return "B"
	case toTip > size*c.t.CurveMin && toTip < size*c.t.CurveMax &&
		toKnuckle > size*c.t.CurveMin && toKnuckle < size*c.t.CurveMax:
		// Both thumb distances mid-range: a curved hand.
		return "C"
	}
	// Flat open palm. This neutral shape terminates held-letter
	// sequences and is the wave gesture's precondition.
	return SymbolFist
}

// pinkyOnly disambiguates I and Y.
func (c *Classifier) pinkyOnly(f HandFrame, size float64) Symbol {
	if dist(f[detector.ThumbTip], f[detector.PinkyTip]) > size*c.t.WideSpread {
		return "Y"
	}
	return "I"
}

// fist disambiguates the closed-hand letters O, E, A, and the M/N/T/S
// family keyed on which knuckle the thumb reaches toward.
func (c *Classifier) fist(f HandFrame, size float64) Symbol {
	thumb := f[detector.ThumbTip]
	iTip := f[detector.IndexTip]
	iMCP := f[detector.IndexMCP]

	switch {
	case dist(thumb, iTip) < size*c.t.ThumbPinch && dist(iTip, iMCP) > size*c.t.ORing:
		// Thumb meets a partially curled index: a ring shape, not a
		// squashed fist.
		return "O"
	case thumb.Y > iMCP.Y+size*c.t.ThumbBelow:
		return "E"
	case thumb.X-iMCP.X > size*c.t.ThumbOffset:
		// Offset past the index knuckle on the thumb's own side; the
		// opposite side means the thumb crossed toward the other
		// knuckles, the M/N/T family below.
		return "A"
	}

	knuckles := [4]int{detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}
	nearest, best := 0, math.Inf(1)
	for i, k := range knuckles {
		if d := dist(thumb, f[k]); d < best {
			nearest, best = i, d
		}
	}
	if best > size*c.t.NearKnuckle {
		return "S"
	}
	switch nearest {
	case 0:
		return "T"
	case 1:
		return "N"
	}
	return "M"
}

func (c *Classifier) horizontal(tip, mcp Keypoint) bool {
	return math.Abs(tip.X-mcp.X) > math.Abs(tip.Y-mcp.Y)*c.t.HorizontalBias
}
