package stabilize

import (
	"testing"

	"github.com/ayusman/fingerspell/internal/classify"
)

// feed advances the engine n frames of the same symbol with a stationary
// wrist and returns the mutations.
func feed(e *Engine, s classify.Symbol, n int) []Mutation {
	muts := make([]Mutation, 0, n)
	for i := 0; i < n; i++ {
		muts = append(muts, e.Advance(s, 0.5, 1.0))
	}
	return muts
}

func appends(muts []Mutation) []string {
	var out []string
	for _, m := range muts {
		if m.Op == OpAppend {
			out = append(out, m.Text)
		}
	}
	return out
}

func TestEngine_CommitAfterStreak(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	muts := feed(e, "D", 5)
	for i := 0; i < 4; i++ {
		if muts[i].Op != OpNone {
			t.Errorf("frame %d: op = %v, want OpNone", i, muts[i].Op)
		}
	}
	if muts[4].Op != OpAppend || muts[4].Text != "D" {
		t.Fatalf("frame 4: got %+v, want append of D", muts[4])
	}
	if e.Text() != "D" {
		t.Errorf("Text() = %q, want %q", e.Text(), "D")
	}

	// Holding the same letter must not commit it again.
	for i, m := range feed(e, "D", 30) {
		if m.Op != OpNone {
			t.Errorf("held frame %d: op = %v, want OpNone", i, m.Op)
		}
	}
}

func TestEngine_FlickerDoesNotResetStreak(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	// One misclassified frame mid-stream is absorbed by the majority
	// window, so the commit still lands on the 5th frame.
	stream := []classify.Symbol{"D", "D", "A", "D", "D"}
	var got []Mutation
	for _, s := range stream {
		got = append(got, e.Advance(s, 0.5, 1.0))
	}
	if got[4].Op != OpAppend || got[4].Text != "D" {
		t.Fatalf("frame 4: got %+v, want append of D", got[4])
	}
}

func TestEngine_NoCommitBelowThreshold(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})
	for i, m := range feed(e, "K", 4) {
		if m.Op != OpNone {
			t.Errorf("frame %d: op = %v, want OpNone", i, m.Op)
		}
	}
	if e.Text() != "" {
		t.Errorf("Text() = %q, want empty", e.Text())
	}
}

func TestEngine_FistRearmsRepeat(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	feed(e, "D", 6)
	if e.Text() != "D" {
		t.Fatalf("Text() = %q, want %q", e.Text(), "D")
	}

	// Open/neutral shape releases the lock.
	feed(e, classify.SymbolFist, 3)
	if e.Smoothed() != classify.SymbolFist {
		t.Fatalf("Smoothed() = %s, want fist", e.Smoothed())
	}

	got := appends(feed(e, "D", 10))
	if len(got) != 1 || got[0] != "D" {
		t.Fatalf("appends after re-arm = %v, want one D", got)
	}
	if e.Text() != "DD" {
		t.Errorf("Text() = %q, want %q", e.Text(), "DD")
	}
}

func TestEngine_DoubleLetterDefaults(t *testing.T) {
	// Full default-config run of the double-letter idiom: hold D, open
	// the hand briefly, hold D again. The majority window lags the raw
	// stream, so each hold needs a few frames beyond the threshold.
	e := New(DefaultConfig())

	feed(e, "D", 15)
	feed(e, classify.SymbolFist, 5)
	feed(e, "D", 18)

	if e.Text() != "DD" {
		t.Errorf("Text() = %q, want %q", e.Text(), "DD")
	}
}

func TestEngine_AutoSpaceOnHandLoss(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})
	feed(e, "A", 6)

	muts := feed(e, classify.SymbolNone, 4)
	if muts[0].Op != OpSpace {
		t.Fatalf("first absent frame: op = %v, want OpSpace", muts[0].Op)
	}
	for i, m := range muts[1:] {
		if m.Op != OpNone {
			t.Errorf("absent frame %d: op = %v, want OpNone", i+1, m.Op)
		}
	}
	if e.Text() != "A " {
		t.Errorf("Text() = %q, want %q", e.Text(), "A ")
	}
}

func TestEngine_NoSpaceOnEmptyOrTrailingSpace(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	// Hand loss with nothing typed yet appends nothing.
	for i, m := range feed(e, classify.SymbolNone, 5) {
		if m.Op != OpNone {
			t.Errorf("empty-text absent frame %d: op = %v", i, m.Op)
		}
	}

	// A second loss right after a space must not double it.
	feed(e, "A", 6)
	feed(e, classify.SymbolNone, 2)
	feed(e, "B", 2) // present again, but nothing commits
	for i, m := range feed(e, classify.SymbolNone, 3) {
		if m.Op == OpSpace {
			t.Errorf("absent frame %d: got a second space", i)
		}
	}
	if e.Text() != "A " {
		t.Errorf("Text() = %q, want %q", e.Text(), "A ")
	}
}

func TestEngine_HandLossResetsSuppression(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	feed(e, "D", 6)
	feed(e, classify.SymbolNone, 2)
	got := appends(feed(e, "D", 10))
	if len(got) != 1 || got[0] != "D" {
		t.Fatalf("appends after hand loss = %v, want one D", got)
	}
	if e.Text() != "D D" {
		t.Errorf("Text() = %q, want %q", e.Text(), "D D")
	}
}

// wave oscillates the wrist while holding the neutral open shape.
func wave(e *Engine, frames int) []Mutation {
	muts := make([]Mutation, 0, frames)
	x := 0.5
	for i := 0; i < frames; i++ {
		muts = append(muts, e.Advance(classify.SymbolFist, x, 1.0))
		if x == 0.5 {
			x = 0.6
		} else {
			x = 0.5
		}
	}
	return muts
}

func TestEngine_WaveCommit(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 100, WaveCycles: 2})

	// Frame 1 seeds the wrist position, frame 2 picks a direction, each
	// later frame reverses it. Two reversals reach the cycle target.
	muts := wave(e, 4)
	for i := 0; i < 3; i++ {
		if muts[i].Op != OpNone {
			t.Errorf("frame %d: op = %v, want OpNone", i, muts[i].Op)
		}
	}
	if muts[3].Op != OpAppend || muts[3].Text != " HELLO " {
		t.Fatalf("frame 3: got %+v, want the greeting", muts[3])
	}
	if e.Text() != " HELLO " {
		t.Errorf("Text() = %q, want %q", e.Text(), " HELLO ")
	}
}

func TestEngine_WaveStationaryReset(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 100, WaveCycles: 2, WaveStationaryLimit: 3})

	// One reversal, then hold still long enough to zero the count.
	wave(e, 3)
	feed(e, classify.SymbolFist, 6)

	// One fresh reversal is below the cycle target again; without the
	// stationary reset the banked cycle would make this the second.
	e.Advance(classify.SymbolFist, 0.7, 1.0)
	if e.Text() != "" {
		t.Errorf("Text() = %q, want empty after stationary reset", e.Text())
	}
}

func TestEngine_WaveResetOnOtherSymbol(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 100, WaveCycles: 2})

	wave(e, 3) // one cycle banked
	e.Advance("D", 0.5, 1.0)

	// The letter frame wiped the tracker, so this partial wave cannot
	// piggyback on the earlier cycle.
	wave(e, 3)
	if e.Text() != "" {
		t.Errorf("Text() = %q, want empty after tracker reset", e.Text())
	}

	// A full wave from scratch still works.
	wave(e, 2)
	if e.Text() != " HELLO " {
		t.Errorf("Text() = %q, want the greeting", e.Text())
	}
}

func TestEngine_ClearReleasesLock(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})

	feed(e, "D", 6)
	e.Clear()
	if e.Text() != "" {
		t.Fatalf("Text() = %q after Clear", e.Text())
	}

	// The streak is still live and the lock is gone, so the very next
	// frame commits again.
	m := e.Advance("D", 0.5, 1.0)
	if m.Op != OpAppend || m.Text != "D" {
		t.Errorf("post-Clear frame: got %+v, want append of D", m)
	}
}

func TestEngine_Backspace(t *testing.T) {
	e := New(Config{WindowSize: 3, StableThreshold: 5})
	feed(e, "D", 6)

	e.Backspace()
	if e.Text() != "" {
		t.Errorf("Text() = %q, want empty", e.Text())
	}
	// Backspace on empty text is a no-op.
	e.Backspace()
	if e.Text() != "" {
		t.Errorf("Text() = %q after second Backspace", e.Text())
	}
}

func TestEngine_MajorityTieBreak(t *testing.T) {
	e := New(Config{WindowSize: 4, StableThreshold: 100})

	// On a 2-2 split the earlier symbol in the window wins.
	for _, s := range []classify.Symbol{"D", "D", "A", "A"} {
		e.Advance(s, 0.5, 1.0)
	}
	if e.Smoothed() != "D" {
		t.Errorf("Smoothed() = %s, want D", e.Smoothed())
	}
}

func TestEngine_ConfigDefaults(t *testing.T) {
	e := New(Config{})
	if e.cfg != DefaultConfig() {
		t.Errorf("zero config = %+v, want defaults %+v", e.cfg, DefaultConfig())
	}

	partial := New(Config{WindowSize: 9})
	if partial.cfg.WindowSize != 9 || partial.cfg.StableThreshold != DefaultConfig().StableThreshold {
		t.Errorf("partial config = %+v", partial.cfg)
	}
}
