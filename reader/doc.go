// Package reader opens PDF documents held in memory and decodes their
// pages into the block model used by the converter.
//
// # Opening documents
//
//	r, err := reader.OpenBytes(data)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// [Open] reads a file first. A Reader is not safe for concurrent use.
//
// # Objects
//
// pdfcpu reads the file structure, repairing damaged cross-reference data
// where it can. The Reader converts the objects it asks for into the core
// model:
//
//   - GetObject(objNum) - load object by number
//   - ResolveReference(ref) - resolve an IndirectRef
//   - Resolve(obj) - resolve if indirect, otherwise return as-is
//
// [Reader.Metadata] returns the header version and the document
// information entries, decoded from PDF text strings.
//
// # Pages
//
// [Reader.Page] decodes one page into a model.PageDict in page space (origin
// at the top-left corner, y growing downward):
//
//   - text blocks from the text extractor and layout analyzer
//   - image blocks for image XObjects and inline images
//   - "other" blocks holding clusters of stroked lines and rectangles
//
// Form XObjects are inlined so their text, images and drawings land on the
// page that paints them.
//
// # Images and fonts
//
// [Reader.Image] returns the data of an image block ready for output: JPEG
// data is passed through, other images are re-encoded as PNG with their
// soft mask as alpha. [Reader.Fonts] lists the fonts the pages use.
package reader
