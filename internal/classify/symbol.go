// Package classify maps a single frame of hand landmarks to a
// fingerspelling symbol using rule-based hand geometry.
package classify

// Symbol is one token of the recognizer's alphabet: a static
// fingerspelling letter, or one of the sentinel values below.
// Display mapping (emoji, captions) is a UI concern.
type Symbol string

const (
	// SymbolFist marks an ambiguous or neutral hand shape. It is never
	// committed to text; it only releases the repeat-suppression lock.
	SymbolFist Symbol = "fist"
	// SymbolWave marks a detected wave gesture.
	SymbolWave Symbol = "wave"
	// SymbolNone marks a frame with no detected hand.
	SymbolNone Symbol = "none"
)

// letters are the static one-hand letters this rule set covers.
// J and Z require motion and are intentionally absent.
const letters = "ABCDEFGHIKLMNOPQRSTUVWXY"

// IsLetter reports whether s is a committable letter symbol.
func (s Symbol) IsLetter() bool {
	if len(s) != 1 {
		return false
	}
	for i := 0; i < len(letters); i++ {
		if s[0] == letters[i] {
			return true
		}
	}
	return false
}

// Alphabet returns every symbol the classifier can produce, letters first.
func Alphabet() []Symbol {
	out := make([]Symbol, 0, len(letters)+3)
	for _, r := range letters {
		out = append(out, Symbol(r))
	}
	return append(out, SymbolFist, SymbolWave, SymbolNone)
}
