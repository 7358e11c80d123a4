// Package tables detects ruled tables in the vector drawings of a page.
//
// Detection works in page space (y grows downward) on the segments and
// rectangles the reader attaches to "other" blocks.
//
// # Grids
//
// [GridDetector] snaps segments that share an axis position, within
// Tolerance, onto rulings. Rulings covering less than half of the candidate
// area are dropped and the rest become the rows and columns of a [Grid]:
//
//	grid := tables.NewGridDetector().Detect(horizontals, verticals)
//
// A grid is rejected when it has fewer than MinCells cells or scores below
// MinConfidence. The score weighs cell count and spacing regularity at 30%
// each, and border presence and the share of rulings kept at 20% each.
//
// # Finding tables
//
// [Finder] collects the drawings inside a clip rectangle, turns stroked
// rectangle sides and thin filled bars into rulings and fills the cells
// with the text of the spans whose centers fall inside them:
//
//	m := tables.NewFinder().FindTable(page, clip)
//	if !m.IsEmpty() {
//		fmt.Print(m.String())
//	}
//
// A cell whose right ruling is missing spans into its neighbour; the
// covered cells are returned with a nil BBox.
package tables
