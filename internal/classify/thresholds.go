package classify

// Thresholds holds every distance-ratio constant used by the classifier,
// each expressed as a fraction of hand size. The branch structure and
// precedence are fixed; these numbers are tuning configuration.
type Thresholds struct {
	// Extended is the tip-to-MCP ratio above which a finger counts as
	// extended. The four-bit extended vector is the primary branch key.
	Extended float64

	// HorizontalBias is how much the index tip's x-travel must exceed
	// its y-travel for the hand to read as horizontal (G, H).
	HorizontalBias float64
	// ThumbAway separates L from D: thumb tip far from the index MCP.
	ThumbAway float64
	// HookDepth separates X from D: index tip within this of (or below)
	// its PIP joint, i.e. a hooked finger.
	HookDepth float64

	// CrossedTips separates R from U: index and middle tips nearly
	// crossed in x.
	CrossedTips float64
	// KnuckleTouch picks K/P: thumb tip close to the middle-knuckle row.
	KnuckleTouch float64
	// SpreadTips separates V from U: index and middle tips far apart.
	SpreadTips float64

	// ThumbPinch is the thumb-to-index-tip contact distance (F, O).
	ThumbPinch float64

	// ThumbTucked picks B: thumb tip x near the index MCP.
	ThumbTucked float64
	// CurveMin and CurveMax bound the mid-range thumb distances that
	// suggest a curved hand (C).
	CurveMin float64
	CurveMax float64

	// ORing is the minimum index-tip-to-MCP distance for the O ring
	// shape; fully curled fists fall well below it.
	ORing float64
	// ThumbBelow picks E: thumb tip vertically below the index MCP.
	ThumbBelow float64
	// ThumbOffset picks A: thumb offset sideways from the index MCP.
	ThumbOffset float64
	// NearKnuckle bounds the thumb-to-nearest-MCP distance for the
	// M/N/T family; beyond it the fist falls back to S.
	NearKnuckle float64

	// WideSpread separates Y from I: thumb-to-pinky-tip spread.
	WideSpread float64
}

// DefaultThresholds returns the tuned defaults. Observed rule-set
// variants disagree slightly on some of these (0.55 vs 0.6 extended,
// 0.45 vs 0.5 for O); these values are defaults, not law.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Extended:       0.55,
		HorizontalBias: 1.2,
		ThumbAway:      0.8,
		HookDepth:      0.1,
		CrossedTips:    0.12,
		KnuckleTouch:   0.35,
		SpreadTips:     0.45,
		ThumbPinch:     0.3,
		ThumbTucked:    0.25,
		CurveMin:       0.2,
		CurveMax:       0.7,
		ORing:          0.45,
		ThumbBelow:     0.1,
		ThumbOffset:    0.3,
		NearKnuckle:    0.5,
		WideSpread:     1.1,
	}
}
