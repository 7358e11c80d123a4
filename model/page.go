package model

import "strings"

// PageDict is one decoded page: its size in points and its blocks in
// reading order.
type PageDict struct {
	Number int // 1-based
	Width  float64
	Height float64
	Blocks []Block
}

// BlockKind distinguishes the payload a block carries
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
	BlockOther
)

// String returns the kind name
func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockImage:
		return "image"
	case BlockOther:
		return "other"
	default:
		return "unknown"
	}
}

// Block is a positioned unit of page content. BBox is nil when the block
// has no geometry.
type Block struct {
	Kind    BlockKind
	BBox    *Rect
	Lines   []Line
	Image   *ImageRef
	Drawing *Drawing
}

// IsText reports whether the block carries text lines
func (b Block) IsText() bool {
	return b.Kind == BlockText && len(b.Lines) > 0
}

// IsImage reports whether the block is an image placement
func (b Block) IsImage() bool {
	return b.Kind == BlockImage && b.Image != nil
}

// FirstSpan returns the first span of the first non-empty line
func (b Block) FirstSpan() (Span, bool) {
	for _, l := range b.Lines {
		if len(l.Spans) > 0 {
			return l.Spans[0], true
		}
	}
	return Span{}, false
}

// Text joins the block's lines with newlines
func (b Block) Text() string {
	lines := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, l.Text())
	}
	return strings.Join(lines, "\n")
}

// BoundingBox returns the block's rectangle. The second result is false
// when the block has none.
func BoundingBox(b Block) (Rect, bool) {
	if b.BBox == nil {
		return Rect{}, false
	}
	return *b.BBox, true
}

// Line is one baseline of text inside a block
type Line struct {
	BBox  Rect
	Dir   Point // writing direction, (1, 0) for horizontal text
	Spans []Span
}

// Text concatenates the span texts
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Span is a run of text sharing font, size and color
type Span struct {
	Text   string
	Font   string // base font name without subset prefix
	Size   float64
	Color  Color
	Flags  SpanFlags
	Origin Point // start of the baseline
	BBox   Rect
}

// Style returns the font, size, color and flags of the span
func (s Span) Style() TextStyle {
	return TextStyle{Font: s.Font, Size: s.Size, Color: s.Color, Flags: s.Flags}
}

// TextStyle is how a run of text is drawn
type TextStyle struct {
	Font  string
	Size  float64
	Color Color
	Flags SpanFlags
}

// SpanFlags describes the style of a span's font
type SpanFlags int

const (
	FlagSuperscript SpanFlags = 1 << iota
	FlagItalic
	FlagSerif
	FlagMono
	FlagBold
)

// Has reports whether every bit of f2 is set
func (f SpanFlags) Has(f2 SpanFlags) bool {
	return f&f2 == f2
}

// String lists the set flags, e.g. "bold|italic"
func (f SpanFlags) String() string {
	names := []struct {
		flag SpanFlags
		name string
	}{
		{FlagSuperscript, "superscript"},
		{FlagItalic, "italic"},
		{FlagSerif, "serif"},
		{FlagMono, "mono"},
		{FlagBold, "bold"},
	}

	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "regular"
	}
	return strings.Join(parts, "|")
}

// Color is an sRGB color
type Color struct {
	R, G, B uint8
}

// ColorFromFloats converts components in [0, 1] to a Color
func ColorFromFloats(r, g, b float64) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b)}
}

func unit8(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// ImageRef identifies an image XObject of the source document
type ImageRef struct {
	Name   string // resource name, e.g. "Im1"
	ObjNum int    // object number of the image stream, 0 for inline images
	Width  int    // samples
	Height int
}

// Drawing is the vector content found in an "other" block's area
type Drawing struct {
	Segments []Segment
	Rects    []DrawnRect
}

// Segment is one stroked straight line
type Segment struct {
	Start Point
	End   Point
	Width float64
	Color Color
}

// DrawnRect is a painted rectangle. Width is 0 when it is not stroked.
type DrawnRect struct {
	Rect   Rect
	Width  float64
	Stroke Color
	Fill   *Color // nil when not filled
}
