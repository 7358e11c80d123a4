// Package writer builds the output PDF.
//
// A [Document] draws pages with gofpdf in page space: points, origin at the
// top-left corner, y growing downward, which is the space the reader
// produces. Text is placed on its baseline.
//
//	doc := writer.New(writer.DefaultOptions())
//	defer doc.Close()
//
//	doc.AddPage(612, 792)
//	doc.Text(72, 100, "Hello", model.TextStyle{Font: "Helvetica", Size: 12})
//	data, err := doc.Bytes()
//
// # Fonts
//
// Text is drawn in one of the core fonts (Helvetica, Times, Courier) unless
// its font was mirrored from the source document with [Document.MirrorFonts].
// Mirroring registers embedded TrueType programs that parse as complete
// sfnt fonts with a Unicode character map; other fonts map to the nearest
// core family, styled by the span flags and the font name.
//
// # Serialization
//
// [Document.Bytes] serializes the document, then optionally rewrites it
// with pdfcpu to drop duplicate objects and validates the result.
package writer
