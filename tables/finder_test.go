package tables

import (
	"testing"

	"github.com/tsawler/bionic/model"
)

func textBlock(s string, x, y float64) model.Block {
	bbox := model.Rect{X0: x, Y0: y, X1: x + 30, Y1: y + 10}
	return model.Block{
		Kind: model.BlockText,
		BBox: &bbox,
		Lines: []model.Line{{
			BBox:  bbox,
			Spans: []model.Span{{Text: s, Size: 10, BBox: bbox, Origin: model.Point{X: x, Y: y + 8}}},
		}},
	}
}

func drawingBlock(d model.Drawing) model.Block {
	var pts []model.Point
	for _, s := range d.Segments {
		pts = append(pts, s.Start, s.End)
	}
	for _, r := range d.Rects {
		pts = append(pts, model.Point{X: r.Rect.X0, Y: r.Rect.Y0}, model.Point{X: r.Rect.X1, Y: r.Rect.Y1})
	}
	bbox := model.RectFromPoints(pts...)
	return model.Block{Kind: model.BlockOther, BBox: &bbox, Drawing: &d}
}

// 2 rows x 2 columns between x 100..300 and y 100..160
func ruledTable(middleVertical bool) model.Drawing {
	d := model.Drawing{
		Segments: []model.Segment{
			hline(100, 100, 300),
			hline(130, 100, 300),
			hline(160, 100, 300),
			vline(100, 100, 160),
			vline(300, 100, 160),
		},
	}
	if middleVertical {
		d.Segments = append(d.Segments, vline(200, 100, 160))
	} else {
		// Only the second row is split
		d.Segments = append(d.Segments, vline(200, 130, 160))
	}
	return d
}

func TestFinder_FindTable(t *testing.T) {
	table := drawingBlock(ruledTable(true))
	page := model.PageDict{
		Width: 612, Height: 792,
		Blocks: []model.Block{
			table,
			textBlock("Name", 110, 110),
			textBlock("Qty", 210, 110),
			textBlock("Apple", 110, 140),
			textBlock("3", 210, 140),
			textBlock("Outside", 400, 400),
		},
	}

	m := NewFinder().FindTable(page, *table.BBox)
	if m.IsEmpty() {
		t.Fatal("Expected a table")
	}
	if m.RowCount() != 2 || m.ColCount() != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", m.RowCount(), m.ColCount())
	}
	want := "| Name | Qty |\n| Apple | 3 |\n"
	if m.String() != want {
		t.Errorf("Expected %q, got %q", want, m.String())
	}
	if m.BBox != (model.Rect{X0: 100, Y0: 100, X1: 300, Y1: 160}) {
		t.Errorf("Unexpected bbox %+v", m.BBox)
	}
	if c := m.Rows[1][1]; c.BBox == nil || c.BBox.X0 != 200 || c.BBox.Y0 != 130 {
		t.Errorf("Unexpected cell %+v", c)
	}
}

func TestFinder_MergedCells(t *testing.T) {
	table := drawingBlock(ruledTable(false))
	page := model.PageDict{Blocks: []model.Block{table, textBlock("Title", 180, 110)}}

	m := NewFinder().FindTable(page, *table.BBox)
	if m.IsEmpty() {
		t.Fatal("Expected a table")
	}
	header := m.Rows[0]
	if len(header) != 2 {
		t.Fatalf("Expected 2 cells in the header row, got %d", len(header))
	}
	if header[0].BBox == nil || header[0].BBox.X1 != 300 || header[0].Text != "Title" {
		t.Errorf("Expected a spanning header cell, got %+v", header[0])
	}
	if header[1].BBox != nil {
		t.Errorf("Expected the covered cell to have no box, got %+v", header[1])
	}
	if m.Rows[1][1].BBox == nil {
		t.Error("Expected the second row to keep both cells")
	}
}

func TestFinder_RectangleRulings(t *testing.T) {
	fill := model.Color{}
	d := model.Drawing{Rects: []model.DrawnRect{
		{Rect: model.Rect{X0: 100, Y0: 100, X1: 200, Y1: 130}, Width: 1},
		{Rect: model.Rect{X0: 200, Y0: 100, X1: 300, Y1: 130}, Width: 1},
		{Rect: model.Rect{X0: 100, Y0: 130, X1: 200, Y1: 160}, Width: 1},
		{Rect: model.Rect{X0: 200, Y0: 130, X1: 300, Y1: 160}, Width: 1},
		{Rect: model.Rect{X0: 100, Y0: 170, X1: 300, Y1: 171}, Fill: &fill},
	}}
	table := drawingBlock(d)

	h, _ := NewFinder().edges(d)
	if len(h) != 9 {
		t.Errorf("Expected 9 horizontal edges, got %d", len(h))
	}

	m := NewFinder().FindTable(model.PageDict{Blocks: []model.Block{table}}, *table.BBox)
	if m.RowCount() < 2 || m.ColCount() != 2 {
		t.Errorf("Expected a table from cell rectangles, got %dx%d", m.RowCount(), m.ColCount())
	}
}

func TestFinder_NoDrawings(t *testing.T) {
	page := model.PageDict{Blocks: []model.Block{textBlock("a", 0, 0)}}
	if m := NewFinder().FindTable(page, model.Rect{X1: 100, Y1: 100}); !m.IsEmpty() {
		t.Errorf("Expected no table, got %v", m)
	}
}
