package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of a run of text
type Direction int

// Digits, punctuation and spaces are Neutral.
const (
	LTR Direction = iota
	RTL
	Neutral
)

var directionNames = [...]string{LTR: "LTR", RTL: "RTL", Neutral: "Neutral"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "Unknown"
	}
	return directionNames[d]
}

// DetectDirection returns the dominant direction of s by counting strong
// characters. Text without strong characters is Neutral.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch runeDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}

	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}

// runeDirection maps the Unicode bidirectional class of r to a direction.
// Only strong classes are directional.
func runeDirection(r rune) Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}
