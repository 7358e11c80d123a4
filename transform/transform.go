package transform

import "strings"

// TableCellGap is the space after each word drawn in a table cell
const TableCellGap = 4.0

// Measurer reports the width of a run of text drawn in the regular or bold
// face of the output font pair
type Measurer interface {
	StringWidth(text string, size float64, bold bool) float64
}

// SplitWord returns the bold prefix and regular suffix of word. The prefix
// holds half of the word's characters, rounded down, so a one-character
// word has no bold part.
func SplitWord(word string) (bold, regular string) {
	runes := []rune(word)
	n := len(runes) / 2
	return string(runes[:n]), string(runes[n:])
}

// Words splits text on runs of white space
func Words(text string) []string {
	return strings.Fields(text)
}

// AdvanceWidth is the cursor advance for drawing text at size. Empty text
// does not move the cursor.
func AdvanceWidth(m Measurer, text string, size float64, bold bool) float64 {
	if text == "" {
		return 0
	}
	return m.StringWidth(text, size, bold)
}

// ProseSpacing is the space after each word of paragraph text
func ProseSpacing(size float64) float64 {
	return size * 0.2
}

// ListSpacing is the space after each word of a list item
func ListSpacing(size float64) float64 {
	return size * 0.3
}
