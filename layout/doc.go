// Package layout groups positioned text fragments into the lines, spans and
// blocks of a page.
//
// The [Analyzer] runs both stages:
//
//	analyzer := layout.NewAnalyzer()
//	blocks := analyzer.PageBlocks(fragments, toPage)
//
// # Lines
//
// [LineDetector] groups fragments sharing a baseline, using a tolerance
// derived from the text height, and splits a baseline at gaps wide enough
// to separate columns. [Line.Spans] merges neighbouring fragments of the
// same font, size, color and style into spans, inserting spaces where the
// fragments are apart.
//
// # Blocks
//
// [BlockDetector] attaches each line to the block it continues, judged by
// vertical gap and horizontal overlap. Lines opening with a list marker
// always start a block of their own.
//
// Detection works in PDF user space (y grows upward). [Block.Model]
// converts a block to the page model through a caller-supplied matrix.
package layout
