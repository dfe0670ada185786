// Package stabilize smooths a noisy per-frame symbol stream into
// committed text: majority-vote smoothing over a short window, a
// stability streak before anything is typed, repeat suppression for held
// letters, wave-cycle counting, and auto-spacing when the hand leaves
// the frame.
package stabilize

import (
	"strings"
	"sync"

	"github.com/ayusman/fingerspell/internal/classify"
)

// Op is the kind of text mutation an Advance call produced.
type Op int

const (
	// OpNone means the frame changed no text.
	OpNone Op = iota
	// OpAppend means Text was appended to the transcript.
	OpAppend
	// OpSpace means a single space was appended on hand loss.
	OpSpace
)

// Mutation is the text change produced by one frame.
type Mutation struct {
	Op   Op
	Text string
}

// Config holds the engine's tuning constants.
type Config struct {
	// WindowSize is the majority-vote window capacity (5-10).
	WindowSize int
	// StableThreshold is how many consecutive frames the smoothed
	// symbol must persist before it commits.
	StableThreshold int
	// WaveDisplacement is the per-frame wrist x-travel, as a fraction
	// of hand size, that counts as wave motion.
	WaveDisplacement float64
	// WaveStationaryLimit is how many still frames zero the cycle
	// count; a wave must be sustained, not incidental.
	WaveStationaryLimit int
	// WaveCycles is the direction-reversal count that triggers a wave.
	WaveCycles int
	// WaveText is appended once per detected wave.
	WaveText string
}

// DefaultConfig returns the tuning used in practice.
func DefaultConfig() Config {
	return Config{
		WindowSize:          7,
		StableThreshold:     15,
		WaveDisplacement:    0.04,
		WaveStationaryLimit: 10,
		WaveCycles:          4,
		WaveText:            " HELLO ",
	}
}

// Engine owns all cross-frame recognition state for one session. Advance
// is driven by a single frame loop; Clear, Backspace, Text and Smoothed
// may be called from the UI layer at any time, hence the mutex.
type Engine struct {
	cfg Config

	mu       sync.Mutex
	window   []classify.Symbol
	smoothed classify.Symbol

	streakSym   classify.Symbol
	streakCount int

	lastCommitted classify.Symbol
	handPresent   bool
	text          string

	prevWristX     float64
	hasPrevWrist   bool
	waveDir        int
	waveStationary int
	waveCycles     int
}

// New creates an Engine. Zero or negative Config fields fall back to
// DefaultConfig values.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.StableThreshold <= 0 {
		cfg.StableThreshold = def.StableThreshold
	}
	if cfg.WaveDisplacement <= 0 {
		cfg.WaveDisplacement = def.WaveDisplacement
	}
	if cfg.WaveStationaryLimit <= 0 {
		cfg.WaveStationaryLimit = def.WaveStationaryLimit
	}
	if cfg.WaveCycles <= 0 {
		cfg.WaveCycles = def.WaveCycles
	}
	if cfg.WaveText == "" {
		cfg.WaveText = def.WaveText
	}
	return &Engine{
		cfg:    cfg,
		window: make([]classify.Symbol, 0, cfg.WindowSize),
	}
}

// Advance consumes one frame's raw symbol and returns the resulting text
// mutation. wristX and handSize feed wave detection and are ignored for
// SymbolNone frames. It must be called once per processed frame, in
// frame order.
func (e *Engine) Advance(raw classify.Symbol, wristX, handSize float64) Mutation {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, waveHit := e.updateWave(raw, wristX, handSize)

	if raw == classify.SymbolNone {
		return e.advanceAbsent()
	}
	e.handPresent = true

	e.push(raw)
	e.smoothed = e.majority()

	if waveHit {
		e.streakSym, e.streakCount = e.smoothed, 1
		e.text += e.cfg.WaveText
		e.lastCommitted = classify.SymbolWave
		return Mutation{Op: OpAppend, Text: e.cfg.WaveText}
	}

	if e.smoothed == e.streakSym {
		e.streakCount++
	} else {
		e.streakSym, e.streakCount = e.smoothed, 1
	}

	if e.smoothed == classify.SymbolFist {
		// Neutral shape re-arms the lock so the same letter can be
		// signed twice with an open hand in between.
		e.lastCommitted = ""
		return Mutation{}
	}

	if e.streakCount >= e.cfg.StableThreshold &&
		e.smoothed.IsLetter() && e.smoothed != e.lastCommitted {
		e.lastCommitted = e.smoothed
		e.text += string(e.smoothed)
		return Mutation{Op: OpAppend, Text: string(e.smoothed)}
	}
	return Mutation{}
}

// advanceAbsent handles a SymbolNone frame. The auto-space fires exactly
// once per present-to-absent transition.
func (e *Engine) advanceAbsent() Mutation {
	e.push(classify.SymbolNone)
	e.smoothed = e.majority()

	if !e.handPresent {
		return Mutation{}
	}
	e.handPresent = false
	e.streakSym, e.streakCount = "", 0
	e.lastCommitted = ""

	if e.text != "" && !strings.HasSuffix(e.text, " ") {
		e.text += " "
		return Mutation{Op: OpSpace, Text: " "}
	}
	return Mutation{}
}

// Clear empties the transcript. It also clears the repeat-suppression
// lock, so a freshly cleared buffer cannot suppress the next identical
// letter; the window and wave counters stay frame-derived and untouched.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = ""
	e.lastCommitted = ""
}

// Backspace strips the last rune of the transcript and clears the
// repeat-suppression lock.
func (e *Engine) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r := []rune(e.text); len(r) > 0 {
		e.text = string(r[:len(r)-1])
	}
	e.lastCommitted = ""
}

// Text returns the accumulated committed text.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Smoothed returns the current majority symbol, for live display
// regardless of whether it ever commits.
func (e *Engine) Smoothed() classify.Symbol {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.smoothed
}

// push appends s to the bounded window, dropping the oldest entry when
// full.
func (e *Engine) push(s classify.Symbol) {
	if len(e.window) >= e.cfg.WindowSize {
		copy(e.window, e.window[1:])
		e.window = e.window[:len(e.window)-1]
	}
	e.window = append(e.window, s)
}

// majority recomputes the most frequent symbol in the window from
// scratch. Scanning oldest-to-newest with a strict greater-than keeps
// tie-breaking deterministic: the first symbol to reach the max count
// wins.
func (e *Engine) majority() classify.Symbol {
	var best classify.Symbol
	bestN := 0
	for _, s := range e.window {
		n := 0
		for _, t := range e.window {
			if t == s {
				n++
			}
		}
		if n > bestN {
			best, bestN = s, n
		}
	}
	return best
}
