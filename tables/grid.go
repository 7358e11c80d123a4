package tables

import (
	"cmp"
	"math"
	"slices"

	"github.com/tsawler/bionic/model"
)

// GridDetector snaps horizontal and vertical segments, in page space, onto
// the row and column lines of a table grid
type GridDetector struct {
	// Segments whose positions differ by at most Tolerance share a line
	Tolerance float64

	// Segments shorter than MinLength are ignored
	MinLength float64

	// Grids scoring below MinConfidence (0-1) are rejected
	MinConfidence float64

	// A single framed box is not a table
	MinCells int
}

// NewGridDetector returns a detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		Tolerance:     3,
		MinLength:     10,
		MinConfidence: 0.3,
		MinCells:      2,
	}
}

// Grid is a detected table ruling
type Grid struct {
	model.TableGrid

	BBox       model.Rect
	Confidence float64

	HasTopBorder    bool
	HasBottomBorder bool
	HasLeftBorder   bool
	HasRightBorder  bool

	cols []ruling
}

// span is an interval on the axis across a ruling
type span struct{ lo, hi float64 }

// ruling is one grid line: the segments snapped to a position and the
// merged intervals they cover
type ruling struct {
	pos   float64
	n     int
	spans []span
}

func (r ruling) extent() span {
	return span{r.spans[0].lo, r.spans[len(r.spans)-1].hi}
}

func (r ruling) covers(v float64) bool {
	for _, s := range r.spans {
		if v >= s.lo && v <= s.hi {
			return true
		}
	}
	return false
}

// Detect returns the grid the segments form, or nil
func (gd *GridDetector) Detect(horizontals, verticals []model.Segment) *Grid {
	rows := gd.rulings(horizontals, true)
	cols := gd.rulings(verticals, false)
	if len(rows) < 2 || len(cols) < 2 {
		return nil
	}
	candidates := len(rows) + len(cols)

	bbox := model.Rect{X0: cols[0].pos, Y0: rows[0].pos, X1: cols[len(cols)-1].pos, Y1: rows[len(rows)-1].pos}
	rows = spanning(rows, bbox.X0, bbox.X1)
	cols = spanning(cols, bbox.Y0, bbox.Y1)
	if len(rows) < 2 || len(cols) < 2 {
		return nil
	}

	g := &Grid{BBox: bbox, cols: cols}
	for _, r := range rows {
		g.Rows = append(g.Rows, r.pos)
	}
	for _, c := range cols {
		g.Cols = append(g.Cols, c.pos)
	}
	if g.RowCount()*g.ColCount() < gd.MinCells {
		return nil
	}

	edge := func(a, b float64) bool { return math.Abs(a-b) < gd.Tolerance }
	g.HasTopBorder = edge(g.Rows[0], bbox.Y0)
	g.HasBottomBorder = edge(g.Rows[len(g.Rows)-1], bbox.Y1)
	g.HasLeftBorder = edge(g.Cols[0], bbox.X0)
	g.HasRightBorder = edge(g.Cols[len(g.Cols)-1], bbox.X1)

	g.Confidence = confidence(g, candidates)
	if g.Confidence < gd.MinConfidence {
		return nil
	}
	return g
}

// rulings snaps the segments long enough to count onto lines, sorted by
// position. A line's position is the mean of its segments' positions.
func (gd *GridDetector) rulings(segments []model.Segment, horizontal bool) []ruling {
	type placed struct {
		pos float64
		span
	}
	var all []placed
	for _, s := range segments {
		if s.Start.Distance(s.End) < gd.MinLength {
			continue
		}
		a, b := s.Start, s.End
		if !horizontal {
			a, b = model.Point{X: a.Y, Y: a.X}, model.Point{X: b.Y, Y: b.X}
		}
		all = append(all, placed{(a.Y + b.Y) / 2, span{min(a.X, b.X), max(a.X, b.X)}})
	}
	slices.SortFunc(all, func(a, b placed) int { return cmp.Compare(a.pos, b.pos) })

	var out []ruling
	for _, p := range all {
		if n := len(out); n > 0 && p.pos-out[n-1].pos <= gd.Tolerance {
			r := &out[n-1]
			r.n++
			r.pos += (p.pos - r.pos) / float64(r.n)
			r.spans = append(r.spans, p.span)
			continue
		}
		out = append(out, ruling{pos: p.pos, n: 1, spans: []span{p.span}})
	}

	for i := range out {
		out[i].spans = mergeSpans(out[i].spans)
	}
	return out
}

// mergeSpans sorts spans and joins the overlapping ones
func mergeSpans(spans []span) []span {
	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.lo, b.lo) })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.lo <= last.hi {
			last.hi = max(last.hi, s.hi)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// spanning keeps the rulings that cover at least half of [lo, hi] and
// overlap it
func spanning(rs []ruling, lo, hi float64) []ruling {
	var out []ruling
	for _, r := range rs {
		e := r.extent()
		if e.hi-e.lo >= (hi-lo)/2 && min(e.hi, hi) > max(e.lo, lo) {
			out = append(out, r)
		}
	}
	return out
}

// confidence weighs cell count (30%), spacing regularity (30%), borders
// (20%) and the share of candidate rulings kept (20%)
func confidence(g *Grid, candidates int) float64 {
	size := 0.0
	switch cells := g.RowCount() * g.ColCount(); {
	case cells >= 9:
		size = 1
	case cells >= 4:
		size = 2.0 / 3
	}

	borders := 0
	for _, b := range [...]bool{g.HasTopBorder, g.HasBottomBorder, g.HasLeftBorder, g.HasRightBorder} {
		if b {
			borders++
		}
	}

	used := math.Min(1, float64(len(g.Rows)+len(g.Cols))/float64(candidates))
	even := (evenness(g.Rows) + evenness(g.Cols)) / 2

	return math.Min(1, 0.3*size+0.3*even+0.2*float64(borders)/4+0.2*used)
}

// evenness is 1 minus the coefficient of variation of the gaps between
// bounds, floored at 0. Fewer than two gaps are perfectly even.
func evenness(bounds []float64) float64 {
	if len(bounds) < 3 {
		return 1
	}
	var mean float64
	gaps := make([]float64, len(bounds)-1)
	for i := range gaps {
		gaps[i] = bounds[i+1] - bounds[i]
		mean += gaps[i]
	}
	mean /= float64(len(gaps))
	if mean == 0 {
		return 1
	}

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))
	return math.Max(0, 1-math.Sqrt(variance)/mean)
}

// hasBoundary reports whether a vertical ruling separates column col from
// col+1 at height y
func (g *Grid) hasBoundary(col int, y float64) bool {
	if col+1 >= len(g.cols) {
		return true
	}
	return g.cols[col+1].covers(y)
}
