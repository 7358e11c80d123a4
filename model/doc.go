// Package model holds the decoded page structure shared by the reader, the
// classifier and the renderer.
//
// # Coordinates
//
// Everything outside the engine packages uses top-left page coordinates:
// the origin is the top-left corner of the page and y grows downward.
// The reader converts from PDF user space while building a [PageDict].
//
// # Page Structure
//
// A [PageDict] is a list of [Block] values in reading order. Text blocks
// carry [Line] values which carry [Span] values; image blocks carry an
// [ImageRef]; other blocks carry the vector [Drawing] found in their area.
//
//	for _, b := range page.Blocks {
//	    box, ok := model.BoundingBox(b)
//	    ...
//	}
//
// # Geometry
//
//   - [Rect] - axis-aligned rectangle with strict intersection
//   - [Point] - 2D point
//   - [Matrix] - 2D affine transformation matrix
//   - [Overlaps] - the overlap test used for element suppression
//
// # Tables
//
// [CellMatrix] is the result of table detection: a rectangle of rows of
// [Cell] values, each with an optional box and its text.
package model
