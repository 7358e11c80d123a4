// Package text extracts positioned text fragments from PDF content streams.
//
// The [Extractor] interprets the text operators of a content stream on top
// of a [graphicsstate.GraphicsState]:
//
//	ex := text.NewExtractor()
//	ex.AddFont("F1", f)
//	fragments, err := ex.ExtractFromBytes(contentData)
//
// Each [TextFragment] carries the decoded text, its baseline origin and
// box in PDF user space, the effective font size, fill color, and the
// style flags derived from the font.
//
// Glyph displacement follows the text space rules for Tj and TJ, so
// consecutive strings and kerned arrays land where a viewer draws them.
//
// [DetectDirection] classifies text as left-to-right, right-to-left, or
// neutral using the Unicode bidirectional classes.
package text
