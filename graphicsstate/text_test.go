package graphicsstate

import (
	"testing"

	"github.com/tsawler/bionic/model"
)

func TestTextPositioning(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.Point
		leading float64
	}{
		{"Td", "BT 72 700 Td", model.Point{X: 72, Y: 700}, 0},
		{"Td is relative to the line start", "BT 72 700 Td 10 -20 Td", model.Point{X: 82, Y: 680}, 0},
		{"TD sets leading", "BT 72 700 Td 0 -14 TD T*", model.Point{X: 72, Y: 672}, 14},
		{"TL then T*", "BT 16 TL 72 700 Td T*", model.Point{X: 72, Y: 684}, 16},
		{"Tm replaces", "BT 72 700 Td 1 0 0 1 5 5 Tm", model.Point{X: 5, Y: 5}, 0},
		{"BT resets", "1 0 0 1 5 5 Tm BT", model.Point{}, 0},
		{"rise", "BT 3 Ts 72 700 Td", model.Point{X: 72, Y: 703}, 0},
		{"CTM", "2 0 0 2 0 0 cm BT 10 10 Td", model.Point{X: 20, Y: 20}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGraphicsState()
			apply(t, gs, tt.content, nil)
			if p := gs.TextPoint(0, 0); !approx(p.X, tt.want.X) || !approx(p.Y, tt.want.Y) {
				t.Errorf("origin = %+v, want %+v", p, tt.want)
			}
			if gs.Text.Leading != tt.leading {
				t.Errorf("leading = %v, want %v", gs.Text.Leading, tt.leading)
			}
		})
	}
}

func TestGlyphAdvance(t *testing.T) {
	gs := NewGraphicsState()
	gs.SetFont("F1", 10)
	apply(t, gs, "1 Tc 2 Tw", nil)

	// 1500/1000 * 10 + 3 chars * 1 + 1 space * 2
	if got := gs.GlyphAdvance(1500, 3, 1); !approx(got, 20) {
		t.Errorf("expected advance 20, got %f", got)
	}
	if got := gs.KerningAdvance(-500); !approx(got, 5) {
		t.Errorf("expected kerning advance 5, got %f", got)
	}

	apply(t, gs, "50 Tz", nil)
	if got := gs.GlyphAdvance(1500, 3, 1); !approx(got, 10) {
		t.Errorf("expected scaled advance 10, got %f", got)
	}
	if got := gs.KerningAdvance(500); !approx(got, -2.5) {
		t.Errorf("expected kerning advance -2.5, got %f", got)
	}
}

func TestAdvanceTextFollowsTextMatrix(t *testing.T) {
	gs := NewGraphicsState()
	gs.SetFont("F1", 1)
	gs.SetTextMatrix(model.Matrix{12, 0, 0, 12, 100, 500})

	gs.AdvanceText(0.5)
	if p := gs.TextPoint(0, 0); !approx(p.X, 106) || !approx(p.Y, 500) {
		t.Errorf("expected (106, 500), got %+v", p)
	}
	if p := gs.TextPoint(0, 1); !approx(p.Y, 512) {
		t.Errorf("expected one text unit to span 12 points, got %+v", p)
	}
	if size := gs.FontSizeOnPage(); !approx(size, 12) {
		t.Errorf("expected size on page 12, got %f", size)
	}

	gs.NextLine()
	if p := gs.TextPoint(0, 0); !approx(p.X, 100) {
		t.Errorf("expected T* to return to the line start, got %+v", p)
	}
}
