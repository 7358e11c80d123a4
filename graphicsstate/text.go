package graphicsstate

import "github.com/tsawler/bionic/model"

// TextState holds the text parameters and matrices set between BT and ET.
// HorizontalScaling is a percentage.
type TextState struct {
	FontName string
	FontSize float64

	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64
	Leading           float64
	Rise              float64
	RenderingMode     int

	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

func newTextState() TextState {
	return TextState{
		FontSize:          12,
		HorizontalScaling: 100,
		TextMatrix:        model.Identity(),
		TextLineMatrix:    model.Identity(),
	}
}

// SetFont selects the font resource and size (Tf)
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName, gs.Text.FontSize = name, size
}

// BeginText starts a text object (BT)
func (gs *GraphicsState) BeginText() {
	gs.SetTextMatrix(model.Identity())
}

// SetTextMatrix replaces both text matrices (Tm)
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix, gs.Text.TextLineMatrix = m, m
}

// TranslateText starts a new line offset from the current line start (Td)
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.SetTextMatrix(model.Translate(tx, ty).Multiply(gs.Text.TextLineMatrix))
}

// TranslateTextSetLeading is Td that also sets the leading to -ty (TD)
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.Text.Leading = -ty
	gs.TranslateText(tx, ty)
}

// NextLine moves down by the leading (T*)
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// GlyphAdvance is the horizontal displacement in text space after showing
// glyphs whose widths sum to width thousandths of an em. chars counts the
// codes shown and spaces the single-byte 32 codes among them.
func (gs *GraphicsState) GlyphAdvance(width float64, chars, spaces int) float64 {
	t := &gs.Text
	tx := width/1000*t.FontSize + t.CharSpacing*float64(chars) + t.WordSpacing*float64(spaces)
	return tx * t.HorizontalScaling / 100
}

// KerningAdvance is the displacement for a number inside a TJ array
func (gs *GraphicsState) KerningAdvance(adjust float64) float64 {
	return gs.GlyphAdvance(-adjust, 0, 0)
}

// AdvanceText moves the text matrix tx units along the baseline
func (gs *GraphicsState) AdvanceText(tx float64) {
	gs.Text.TextMatrix = model.Translate(tx, 0).Multiply(gs.Text.TextMatrix)
}

// TextPoint maps (tx, ty) from text space to device space, with ty measured
// from the baseline raised by the rise.
func (gs *GraphicsState) TextPoint(tx, ty float64) model.Point {
	m := gs.Text.TextMatrix.Multiply(gs.CTM)
	return m.Transform(model.Point{X: tx, Y: ty + gs.Text.Rise})
}

// FontSizeOnPage is the font size after the text matrix and CTM scale it
func (gs *GraphicsState) FontSizeOnPage() float64 {
	return gs.Text.FontSize * gs.Text.TextMatrix.Multiply(gs.CTM).ScaleY()
}
