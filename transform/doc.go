// Package transform splits words into their bionic bold and regular parts
// and measures the runs drawn for them.
//
// The bold part of a word is always the first half of its characters,
// rounded down:
//
//	bold, regular := transform.SplitWord("reading") // "rea", "ding"
//
// Runs are positioned with a running cursor. Each part advances the cursor
// by its measured width, then the word gap for the context is added:
// [ProseSpacing] for paragraph text, [TableCellGap] inside table cells and
// [ListSpacing] for list items.
package transform
