package text

import (
	"fmt"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/font"
	"github.com/tsawler/bionic/graphicsstate"
	"github.com/tsawler/bionic/model"
)

// Default font metrics, as fractions of the font size, for fonts without
// a descriptor
const (
	defaultAscent  = 0.8
	defaultDescent = -0.2
)

// TextFragment is one shown string, positioned in PDF user space
type TextFragment struct {
	Text string

	// Origin of the baseline
	X, Y float64

	Width  float64
	Height float64

	FontName  string // resource name
	BaseFont  string // subset tag included
	FontSize  float64
	Color     model.Color
	Flags     model.SpanFlags
	Direction Direction

	BBox model.Rect
}

// Extractor interprets the text operators of content streams. The other
// state operators go through its graphics state.
type Extractor struct {
	gs    *graphicsstate.GraphicsState
	fonts map[string]*font.Font

	// ColorSpaces resolves named color spaces of the page resources
	ColorSpaces graphicsstate.ColorSpaceResolver

	fragments []TextFragment
}

func NewExtractor() *Extractor {
	return &Extractor{
		gs:    graphicsstate.NewGraphicsState(),
		fonts: make(map[string]*font.Font),
	}
}

// AddFont makes f available under a font resource name. Names never added
// fall back to Helvetica metrics.
func (e *Extractor) AddFont(name string, f *font.Font) {
	e.fonts[name] = f
}

// Extract returns the fragments shown by operations. The graphics state
// carries over between calls.
func (e *Extractor) Extract(operations []contentstream.Operation) ([]TextFragment, error) {
	e.fragments = nil
	for i, op := range operations {
		if err := e.apply(op); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Operator, err)
		}
	}
	return e.fragments, nil
}

// ExtractFromBytes parses a content stream and extracts its text
func (e *Extractor) ExtractFromBytes(data []byte) ([]TextFragment, error) {
	operations, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse content stream: %w", err)
	}
	return e.Extract(operations)
}

func (e *Extractor) apply(op contentstream.Operation) error {
	if handled, err := e.gs.Apply(op, e.ColorSpaces); handled {
		return err
	}

	args := op.Operands
	switch op.Operator {
	case "Tf":
		if len(args) != 2 {
			break
		}
		if name, ok := args[0].(core.Name); ok {
			size, _ := graphicsstate.ToFloat(args[1])
			e.gs.SetFont(string(name), size)
		}
	case "Tj":
		e.showOperand(args, 0, 1)
	case "'":
		e.gs.NextLine()
		e.showOperand(args, 0, 1)
	case "\"":
		if len(args) != 3 {
			break
		}
		if aw, ok := graphicsstate.ToFloat(args[0]); ok {
			e.gs.Text.WordSpacing = aw
		}
		if ac, ok := graphicsstate.ToFloat(args[1]); ok {
			e.gs.Text.CharSpacing = ac
		}
		e.gs.NextLine()
		e.showOperand(args, 2, 3)
	case "TJ":
		if len(args) != 1 {
			break
		}
		arr, _ := args[0].(core.Array)
		for _, item := range arr {
			if str, ok := item.(core.String); ok {
				e.show([]byte(str))
			} else if n, ok := graphicsstate.ToFloat(item); ok {
				e.gs.AdvanceText(e.gs.KerningAdvance(n))
			}
		}
	}
	return nil
}

// showOperand shows operand i when exactly n operands were given and it
// is a string
func (e *Extractor) showOperand(args []core.Object, i, n int) {
	if len(args) != n {
		return
	}
	if str, ok := args[i].(core.String); ok {
		e.show([]byte(str))
	}
}

// currentFont returns the font selected by Tf
func (e *Extractor) currentFont() *font.Font {
	name := e.gs.Text.FontName
	f, ok := e.fonts[name]
	if !ok {
		f = font.NewFont(name, "Helvetica", "Type1")
		e.fonts[name] = f
	}
	return f
}

// show records one fragment and advances the text matrix past it
func (e *Extractor) show(data []byte) {
	f := e.currentFont()
	width, codes, spaces := f.Measure(data)
	advance := e.gs.GlyphAdvance(width, codes, spaces)

	if s := f.DecodeString(data); s != "" {
		e.fragments = append(e.fragments, e.fragment(s, f, advance))
	}
	e.gs.AdvanceText(advance)
}

func (e *Extractor) fragment(s string, f *font.Font, advance float64) TextFragment {
	ts := e.gs.Text
	ascent, descent := defaultAscent, defaultDescent
	if d := f.Descriptor; d != nil && d.Ascent != 0 && d.Descent != 0 {
		ascent, descent = d.Ascent/1000, d.Descent/1000
	}

	low, high := descent*ts.FontSize, ascent*ts.FontSize
	origin := e.gs.TextPoint(0, 0)
	bbox := model.RectFromPoints(
		e.gs.TextPoint(0, low),
		e.gs.TextPoint(advance, low),
		e.gs.TextPoint(0, high),
		e.gs.TextPoint(advance, high),
	)

	return TextFragment{
		Text:      s,
		X:         origin.X,
		Y:         origin.Y,
		Width:     bbox.Width(),
		Height:    bbox.Height(),
		FontName:  ts.FontName,
		BaseFont:  f.BaseFont,
		FontSize:  e.gs.FontSizeOnPage(),
		Color:     model.ColorFromFloats(e.gs.FillColor[0], e.gs.FillColor[1], e.gs.FillColor[2]),
		Flags:     fontFlags(f, ts.Rise),
		Direction: DetectDirection(s),
		BBox:      bbox,
	}
}

// fontFlags derives the span flags from the font style and the text rise
func fontFlags(f *font.Font, rise float64) model.SpanFlags {
	var flags model.SpanFlags
	for flag, on := range map[model.SpanFlags]bool{
		model.FlagSuperscript: rise > 0,
		model.FlagItalic:      f.IsItalic(),
		model.FlagSerif:       f.IsSerif(),
		model.FlagMono:        f.IsMonospaced(),
		model.FlagBold:        f.IsBold(),
	} {
		if on {
			flags |= flag
		}
	}
	return flags
}
