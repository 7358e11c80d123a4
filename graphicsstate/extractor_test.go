package graphicsstate

import (
	"testing"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/model"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end model.Point
		horizontal bool
		vertical   bool
		color      [3]float64
		width      float64
	}{
		{
			name:    "horizontal rule",
			content: "0 100 m 200 100 l S",
			start:   model.Point{Y: 100}, end: model.Point{X: 200, Y: 100},
			horizontal: true, width: 1,
		},
		{
			name:    "blue vertical rule",
			content: "0 0 1 RG 2 w 0 0 m 0 50 l S",
			start:   model.Point{}, end: model.Point{Y: 50},
			vertical: true, color: [3]float64{0, 0, 1}, width: 2,
		},
		{
			name:    "width scales with the CTM",
			content: "3 0 0 3 0 0 cm 0.5 w 10 10 m 20 10 l S",
			start:   model.Point{X: 30, Y: 30}, end: model.Point{X: 60, Y: 30},
			horizontal: true, width: 1.5,
		},
		{
			name:    "named CMYK space",
			content: "/CS1 CS 0 1 1 0 SCN 0 0 m 10 0 l S",
			start:   model.Point{}, end: model.Point{X: 10},
			horizontal: true, color: [3]float64{1, 0, 0}, width: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := NewGraphicsExtractor()
			ge.ColorSpaces = func(name string) (ColorSpace, bool) {
				return DeviceCMYK, name == "CS1"
			}
			if err := ge.ExtractFromBytes([]byte(tt.content)); err != nil {
				t.Fatalf("ExtractFromBytes failed: %v", err)
			}

			lines := ge.Lines()
			if len(lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(lines))
			}
			l := lines[0]
			if l.Start != tt.start || l.End != tt.end {
				t.Errorf("line %+v -> %+v, want %+v -> %+v", l.Start, l.End, tt.start, tt.end)
			}
			if l.IsHorizontal != tt.horizontal || l.IsVertical != tt.vertical {
				t.Errorf("orientation h=%v v=%v", l.IsHorizontal, l.IsVertical)
			}
			if l.Color != tt.color || l.Width != tt.width {
				t.Errorf("color %v width %v, want %v %v", l.Color, l.Width, tt.color, tt.width)
			}
		})
	}
}

func TestLines_SaveRestoreScopesCTM(t *testing.T) {
	ge := NewGraphicsExtractor()
	content := "q 1 0 0 1 50 50 cm 0 0 m 100 0 l S Q 0 0 m 100 0 l S"
	if err := ge.ExtractFromBytes([]byte(content)); err != nil {
		t.Fatalf("ExtractFromBytes failed: %v", err)
	}

	lines := ge.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Start != (model.Point{X: 50, Y: 50}) || lines[1].Start != (model.Point{}) {
		t.Errorf("unexpected starts %+v and %+v", lines[0].Start, lines[1].Start)
	}
}

func TestMinimumSizes(t *testing.T) {
	ge := NewGraphicsExtractor()
	content := "100 100 200 150 re S 1 0 0 rg 10 10 0.5 0.5 re f 0 0 m 0.5 0 l S"
	if err := ge.ExtractFromBytes([]byte(content)); err != nil {
		t.Fatalf("ExtractFromBytes failed: %v", err)
	}

	if n := len(ge.Lines()); n != 0 {
		t.Errorf("expected the short line to be dropped, got %d lines", n)
	}
	rects := ge.Rectangles()
	if len(rects) != 1 {
		t.Fatalf("expected the tiny rectangle to be dropped, got %d rectangles", len(rects))
	}
	if rects[0].BBox != (model.Rect{X0: 100, Y0: 100, X1: 300, Y1: 250}) {
		t.Errorf("unexpected bbox %+v", rects[0].BBox)
	}
	if len(ge.rects) != 2 {
		t.Error("filtering should not modify the recorded rectangles")
	}
}

func TestImages(t *testing.T) {
	ge := NewGraphicsExtractor()
	ops := []contentstream.Operation{
		{Operator: "q"},
		{Operator: "cm", Operands: []core.Object{core.Int(200), core.Int(0), core.Int(0), core.Int(100), core.Int(72), core.Int(400)}},
		{Operator: "Do", Operands: []core.Object{core.Name("Im1")}},
		{Operator: "Q"},
		{Operator: "Do", Operands: []core.Object{core.Int(1)}},
	}
	if err := ge.Extract(ops); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	content := "q 10 0 0 10 0 0 cm BI /W 1 /H 1 /BPC 8 /CS /G ID \x80 EI Q"
	if err := ge.ExtractFromBytes([]byte(content)); err != nil {
		t.Fatalf("ExtractFromBytes failed: %v", err)
	}

	images := ge.Images()
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}

	xobj, inline := images[0], images[1]
	if xobj.Name != "Im1" || xobj.IsInline() {
		t.Errorf("unexpected placement %+v", xobj)
	}
	if xobj.Bounds != (model.Rect{X0: 72, Y0: 400, X1: 272, Y1: 500}) {
		t.Errorf("unexpected bounds %+v", xobj.Bounds)
	}

	if !inline.IsInline() || inline.Name != "" {
		t.Fatalf("expected an inline image, got %+v", inline)
	}
	if w, _ := inline.InlineDict.GetInt("W"); w != 1 {
		t.Errorf("expected /W 1, got %d", w)
	}
	if inline.Bounds != (model.Rect{X1: 10, Y1: 10}) {
		t.Errorf("unexpected bounds %+v", inline.Bounds)
	}
}
