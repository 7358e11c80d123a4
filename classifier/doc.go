// Package classifier assigns each block of a decoded page to one of the
// element categories the renderer knows how to draw.
//
// Blocks are visited in page order and tested in a fixed priority:
//
//  1. Text inside the top or bottom margin band is a header or footer.
//     It is always kept and never transformed.
//  2. A block overlapping an element already accepted on the page is
//     dropped as a duplicate.
//  3. A run of text blocks starting with list markers becomes one list.
//  4. Remaining text is prose, image blocks are images.
//  5. Drawings are offered to a [TableFinder]; a non-empty cell matrix
//     makes a table, anything else is left as other.
//
// The [Accepted] set is created per page by the caller and passed in, so
// nothing carries over between pages or documents:
//
//	acc := classifier.NewAccepted(model.DefaultOverlapThreshold)
//	elements := classifier.Classify(page, acc, tables.NewFinder())
package classifier
