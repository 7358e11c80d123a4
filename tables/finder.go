package tables

import (
	"math"
	"strings"

	"github.com/tsawler/bionic/model"
)

// Finder locates ruled tables among the vector drawings of a page and
// fills their cells with the page text
type Finder struct {
	Detector *GridDetector

	// Tolerance for treating a segment as horizontal or vertical (points)
	AxisTolerance float64

	// Filled rectangles no thicker than this are treated as rules
	RuleThickness float64
}

// NewFinder creates a finder with default settings
func NewFinder() *Finder {
	return &Finder{
		Detector:      NewGridDetector(),
		AxisTolerance: 0.5,
		RuleThickness: 3.0,
	}
}

// FindTable detects a table in the drawings lying inside clip. It returns
// nil when the drawings do not form a grid.
func (f *Finder) FindTable(page model.PageDict, clip model.Rect) *model.CellMatrix {
	area := clip.Inflate(1)

	var horizontals, verticals []model.Segment
	for _, b := range page.Blocks {
		if b.Drawing == nil || b.BBox == nil || !area.ContainsRect(*b.BBox) {
			continue
		}
		h, v := f.edges(*b.Drawing)
		horizontals = append(horizontals, h...)
		verticals = append(verticals, v...)
	}

	grid := f.Detector.Detect(horizontals, verticals)
	if grid == nil {
		return nil
	}
	return fillCells(page, grid)
}

// edges returns the axis-aligned rulings of a drawing: straight segments,
// the sides of stroked rectangles and thin filled rectangles
func (f *Finder) edges(d model.Drawing) (horizontals, verticals []model.Segment) {
	add := func(s model.Segment) {
		switch {
		case math.Abs(s.Start.Y-s.End.Y) <= f.AxisTolerance:
			horizontals = append(horizontals, s)
		case math.Abs(s.Start.X-s.End.X) <= f.AxisTolerance:
			verticals = append(verticals, s)
		}
	}
	seg := func(x0, y0, x1, y1 float64) model.Segment {
		return model.Segment{Start: model.Point{X: x0, Y: y0}, End: model.Point{X: x1, Y: y1}}
	}

	for _, s := range d.Segments {
		add(s)
	}

	for _, r := range d.Rects {
		b := r.Rect
		switch {
		case r.Width > 0:
			add(seg(b.X0, b.Y0, b.X1, b.Y0))
			add(seg(b.X0, b.Y1, b.X1, b.Y1))
			add(seg(b.X0, b.Y0, b.X0, b.Y1))
			add(seg(b.X1, b.Y0, b.X1, b.Y1))
		case r.Fill != nil && b.Height() <= f.RuleThickness && b.Width() > b.Height():
			mid := (b.Y0 + b.Y1) / 2
			add(seg(b.X0, mid, b.X1, mid))
		case r.Fill != nil && b.Width() <= f.RuleThickness && b.Height() > b.Width():
			mid := (b.X0 + b.X1) / 2
			add(seg(mid, b.Y0, mid, b.Y1))
		}
	}

	return horizontals, verticals
}

// fillCells builds the cell matrix of a grid. A missing vertical ruling
// merges neighbouring cells; the covered cells have no box.
func fillCells(page model.PageDict, grid *Grid) *model.CellMatrix {
	m := &model.CellMatrix{BBox: grid.Bounds()}

	for r := 0; r < grid.RowCount(); r++ {
		midY := (grid.Rows[r] + grid.Rows[r+1]) / 2
		row := make([]model.Cell, 0, grid.ColCount())

		for c := 0; c < grid.ColCount(); {
			end := c + 1
			for end < grid.ColCount() && !grid.hasBoundary(end-1, midY) {
				end++
			}
			rect := model.Rect{X0: grid.Cols[c], Y0: grid.Rows[r], X1: grid.Cols[end], Y1: grid.Rows[r+1]}
			row = append(row, model.Cell{BBox: &rect, Text: cellText(page, rect)})
			for ; c+1 < end; c++ {
				row = append(row, model.Cell{})
			}
			c = end
		}

		m.Rows = append(m.Rows, row)
	}

	return m
}

// cellText joins the spans whose centers fall inside rect
func cellText(page model.PageDict, rect model.Rect) string {
	var parts []string
	for _, b := range page.Blocks {
		for _, l := range b.Lines {
			for _, s := range l.Spans {
				if t := strings.TrimSpace(s.Text); t != "" && rect.Contains(s.BBox.Center()) {
					parts = append(parts, t)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
