package model

import (
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Rect Tests
// ============================================================================

func TestRectFromPoints(t *testing.T) {
	got := RectFromPoints(Point{50, 70}, Point{10, 20}, Point{30, 90})
	want := Rect{10, 20, 50, 90}
	if got != want {
		t.Errorf("RectFromPoints() = %+v, want %+v", got, want)
	}
	if (RectFromPoints() != Rect{}) {
		t.Error("RectFromPoints() with no points should be zero")
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{0, 0, 10, 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{5, 5, 15, 15}, true},
		{"contained", Rect{2, 2, 3, 3}, true},
		{"touching right edge", Rect{10, 0, 20, 10}, false},
		{"touching bottom edge", Rect{0, 10, 10, 20}, false},
		{"disjoint", Rect{20, 20, 30, 30}, false},
		{"empty inside", Rect{5, 5, 5, 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects() is not symmetric")
			}
		})
	}
}

func TestRectIntersectionAndUnion(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 15, 20}

	if got := a.Intersection(b); got != (Rect{5, 5, 10, 10}) {
		t.Errorf("Intersection() = %+v", got)
	}
	if got := a.Union(b); got != (Rect{0, 0, 15, 20}) {
		t.Errorf("Union() = %+v", got)
	}
	if got := a.Intersection(Rect{20, 20, 30, 30}); got != (Rect{}) {
		t.Errorf("Intersection() of disjoint = %+v", got)
	}
}

func TestRectMeasures(t *testing.T) {
	r := Rect{10, 20, 40, 60}
	if r.Width() != 30 || r.Height() != 40 || r.Area() != 1200 {
		t.Errorf("unexpected measures w=%v h=%v a=%v", r.Width(), r.Height(), r.Area())
	}
	if c := r.Center(); c != (Point{25, 40}) {
		t.Errorf("Center() = %+v", c)
	}
	if !r.Contains(Point{10, 20}) || r.Contains(Point{9, 20}) {
		t.Error("Contains() should include edges only")
	}
	if !r.ContainsRect(Rect{15, 25, 20, 30}) || r.ContainsRect(Rect{0, 25, 20, 30}) {
		t.Error("ContainsRect() mismatch")
	}
	if (Rect{5, 5, 5, 10}).Area() != 0 {
		t.Error("empty rect should have zero area")
	}
}

func TestRectInflate(t *testing.T) {
	got := Rect{10, 10, 20, 20}.Inflate(1)
	if got != (Rect{9, 9, 21, 21}) {
		t.Errorf("Inflate(1) = %+v", got)
	}
}

func TestRectTransform(t *testing.T) {
	r := Rect{0, 0, 1, 1}.Transform(Matrix{100, 0, 0, 50, 10, 20})
	if r != (Rect{10, 20, 110, 70}) {
		t.Errorf("Transform() = %+v", r)
	}
}

// ============================================================================
// Overlap Tests
// ============================================================================

func TestOverlaps(t *testing.T) {
	a := &Rect{0, 0, 100, 20}
	tests := []struct {
		name string
		a, b *Rect
		want bool
	}{
		{"same box", a, &Rect{0, 0, 100, 20}, true},
		{"within threshold below", a, &Rect{0, 20.5, 100, 40}, true},
		{"exactly threshold away", a, &Rect{0, 21, 100, 40}, false},
		{"far away", a, &Rect{0, 200, 100, 220}, false},
		{"nil first", nil, a, false},
		{"nil second", a, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b, DefaultOverlapThreshold); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Matrix Tests
// ============================================================================

func TestMatrixMultiply(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 3))
	p := m.Transform(Point{1, 1})
	if p != (Point{22, 63}) {
		t.Errorf("Transform() = %+v, want {22 63}", p)
	}
	if !Identity().IsIdentity() || m.IsIdentity() {
		t.Error("IsIdentity() mismatch")
	}
	if m.ScaleX() != 2 || m.ScaleY() != 3 {
		t.Errorf("scales = %v, %v", m.ScaleX(), m.ScaleY())
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// scale then flip about a 792pt page
	m := Scale(2, 2).Multiply(Matrix{1, 0, 0, -1, 0, 792})
	if p := m.Transform(Point{10, 100}); p != (Point{20, 592}) {
		t.Errorf("Transform() = %+v, want {20 592}", p)
	}
	m = Matrix{1, 0, 0, -1, 0, 792}.Multiply(Scale(2, 2))
	if p := m.Transform(Point{10, 100}); p != (Point{20, 1384}) {
		t.Errorf("Transform() = %+v, want {20 1384}", p)
	}
}

// ============================================================================
// Page Structure Tests
// ============================================================================

func TestBoundingBox(t *testing.T) {
	if _, ok := BoundingBox(Block{}); ok {
		t.Error("block without box should report false")
	}
	box := Rect{1, 2, 3, 4}
	got, ok := BoundingBox(Block{BBox: &box})
	if !ok || got != box {
		t.Errorf("BoundingBox() = %+v, %v", got, ok)
	}
}

func TestBlockText(t *testing.T) {
	b := Block{
		Kind: BlockText,
		Lines: []Line{
			{},
			{Spans: []Span{{Text: "Hello "}, {Text: "world"}}},
			{Spans: []Span{{Text: "again"}}},
		},
	}

	if !b.IsText() || b.IsImage() {
		t.Error("expected a text block")
	}
	span, ok := b.FirstSpan()
	if !ok || span.Text != "Hello " {
		t.Errorf("FirstSpan() = %q, %v", span.Text, ok)
	}
	if got := b.Text(); got != "\nHello world\nagain" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSpanFlags(t *testing.T) {
	f := FlagBold | FlagItalic
	if !f.Has(FlagBold) || f.Has(FlagMono) {
		t.Error("Has() mismatch")
	}
	if f.String() != "italic|bold" {
		t.Errorf("String() = %q", f.String())
	}
	if SpanFlags(0).String() != "regular" {
		t.Errorf("zero flags = %q", SpanFlags(0).String())
	}
	if FlagBold != 16 || FlagSerif != 4 {
		t.Error("flag bit layout changed")
	}
}

func TestSpanStyle(t *testing.T) {
	s := Span{Text: "x", Font: "Times-Roman", Size: 9, Color: Color{R: 10}, Flags: FlagSerif}
	want := TextStyle{Font: "Times-Roman", Size: 9, Color: Color{R: 10}, Flags: FlagSerif}
	if s.Style() != want {
		t.Errorf("Style() = %+v", s.Style())
	}
}

func TestColorFromFloats(t *testing.T) {
	if c := ColorFromFloats(1, 0.5, -1); c != (Color{255, 128, 0}) {
		t.Errorf("ColorFromFloats() = %+v", c)
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestCellMatrix(t *testing.T) {
	var nilMatrix *CellMatrix
	if !nilMatrix.IsEmpty() || nilMatrix.RowCount() != 0 {
		t.Error("nil matrix should be empty")
	}

	box := Rect{0, 0, 10, 10}
	m := &CellMatrix{Rows: [][]Cell{
		{{BBox: &box, Text: "a"}, {Text: "b"}},
		{{Text: "c"}},
	}}
	if m.IsEmpty() || m.RowCount() != 2 || m.ColCount() != 2 {
		t.Errorf("rows=%d cols=%d", m.RowCount(), m.ColCount())
	}
	if len(m.Cells()) != 3 {
		t.Errorf("Cells() = %d", len(m.Cells()))
	}
	if m.String() != "| a | b |\n| c |\n" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestTableGrid(t *testing.T) {
	g := &TableGrid{Rows: []float64{0, 10, 20}, Cols: []float64{0, 50}}
	if g.RowCount() != 2 || g.ColCount() != 1 {
		t.Fatalf("rows=%d cols=%d", g.RowCount(), g.ColCount())
	}
	if got := g.CellRect(1, 0); got != (Rect{0, 10, 50, 20}) {
		t.Errorf("CellRect() = %+v", got)
	}
	if got := g.CellRect(5, 0); got != (Rect{}) {
		t.Errorf("out of range CellRect() = %+v", got)
	}
	if got := g.Bounds(); got != (Rect{0, 0, 50, 20}) {
		t.Errorf("Bounds() = %+v", got)
	}
}
