package stabilize

import (
	"math"

	"github.com/ayusman/fingerspell/internal/classify"
)

// updateWave runs wave tracking for one frame and returns the possibly
// overridden raw symbol plus whether a wave fired this frame.
//
// The gesture is keyed on the neutral SymbolFist marker, which covers
// the open palm and every shape the classifier leaves unresolved. That
// is intentional: a palm in sideways motion blurs, so mid-wave frames
// often land on the fall-through rather than the clean open-palm rule,
// and requiring the latter would break cycle counting. Any letter
// symbol resets the tracker, so a wave cannot accumulate across
// unrelated gestures. The
// wrist's x-displacement picks a direction once it exceeds
// WaveDisplacement x handSize; each direction reversal counts one cycle,
// staying still past WaveStationaryLimit zeroes the count, and reaching
// WaveCycles overrides the frame's symbol to SymbolWave.
//
// Callers hold e.mu.
func (e *Engine) updateWave(raw classify.Symbol, wristX, handSize float64) (classify.Symbol, bool) {
	if raw != classify.SymbolFist {
		e.hasPrevWrist = false
		e.waveDir = 0
		e.waveStationary = 0
		e.waveCycles = 0
		return raw, false
	}

	if e.hasPrevWrist {
		dx := wristX - e.prevWristX
		if math.Abs(dx) > handSize*e.cfg.WaveDisplacement {
			dir := 1
			if dx < 0 {
				dir = -1
			}
			if e.waveDir != 0 && dir != e.waveDir {
				e.waveCycles++
			}
			e.waveDir = dir
			e.waveStationary = 0
		} else {
			e.waveStationary++
			if e.waveStationary > e.cfg.WaveStationaryLimit {
				e.waveCycles = 0
			}
		}
	}
	e.prevWristX = wristX
	e.hasPrevWrist = true

	if e.waveCycles < e.cfg.WaveCycles {
		return raw, false
	}
	e.waveCycles = 0

	// Same lock as letter repeat-suppression: one append per detection.
	if e.lastCommitted == classify.SymbolWave {
		return classify.SymbolWave, false
	}
	return classify.SymbolWave, true
}
