package render

import (
	"errors"
	"fmt"

	"github.com/tsawler/bionic/classifier"
	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/reader"
	"github.com/tsawler/bionic/transform"
)

// Output font pair used for bionic runs
const (
	RegularFont = "Helvetica"
	BoldFont    = "Helvetica-Bold"
)

const (
	// CellFontSize is the size of table cell text
	CellFontSize = 8.0
	// CellInset is the offset of cell text from the cell's top-left corner
	CellInset = 2.0
	// ListIndent is the distance from the bullet to the item text
	ListIndent = 20.0
	// ListLeading is the line advance of list items as a multiple of size
	ListLeading = 1.5
	// Bullet replaces the glyph bullet of a list item
	Bullet = "•"

	defaultSize = 12.0
	ruleWidth   = 1.0
)

// ErrNoImageSource is returned for image elements when the renderer has
// no source to fetch image data from
var ErrNoImageSource = errors.New("no image source")

// Canvas is an output page
type Canvas interface {
	transform.Measurer

	// Text draws s with its baseline starting at (x, y)
	Text(x, y float64, s string, style model.TextStyle) error
	// Rect strokes r when width > 0 and fills it when fill is set
	Rect(r model.Rect, stroke model.Color, width float64, fill *model.Color) error
	Line(from, to model.Point, color model.Color, width float64) error
	// Image places encoded image data ("png" or "jpg") in box
	Image(data []byte, format string, box model.Rect) error
}

// ImageSource returns the encoded data of a source document image
type ImageSource interface {
	Image(ref model.ImageRef) (*reader.Image, error)
}

// Renderer draws elements
type Renderer struct {
	Images ImageSource
}

// New creates a renderer fetching images from images
func New(images ImageSource) *Renderer {
	return &Renderer{Images: images}
}

// Render draws one element. A failed element may be partially drawn.
func (r *Renderer) Render(c Canvas, el classifier.Element) error {
	switch el.Category {
	case classifier.Text:
		return r.text(c, el.Block)
	case classifier.Image:
		return r.image(c, el.Block)
	case classifier.Table:
		return r.table(c, el.Cells)
	case classifier.List:
		return r.list(c, el)
	case classifier.HeaderFooter:
		return r.verbatim(c, el.Block)
	case classifier.Other:
		return r.drawing(c, el.Block)
	default:
		return fmt.Errorf("unknown category %d", el.Category)
	}
}

func (r *Renderer) text(c Canvas, b model.Block) error {
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if span.Text == "" {
				continue
			}
			size := sizeOr(span.Size)
			gap := transform.ProseSpacing(size)
			if _, err := bionic(c, span.Text, span.Origin.X, span.Origin.Y, size, span.Color, gap); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) image(c Canvas, b model.Block) error {
	if b.Image == nil || b.BBox == nil {
		return fmt.Errorf("image block without reference or box")
	}
	if r.Images == nil {
		return ErrNoImageSource
	}
	img, err := r.Images.Image(*b.Image)
	if err != nil {
		return fmt.Errorf("image %s: %w", b.Image.Name, err)
	}
	return c.Image(img.Data, img.Format, *b.BBox)
}

func (r *Renderer) table(c Canvas, cells *model.CellMatrix) error {
	if cells.IsEmpty() {
		return fmt.Errorf("table without cells")
	}
	black := model.Color{}
	if err := c.Rect(cells.BBox, black, ruleWidth, nil); err != nil {
		return err
	}

	for _, cell := range cells.Cells() {
		if cell.BBox == nil {
			continue
		}
		if err := c.Rect(*cell.BBox, black, ruleWidth, nil); err != nil {
			return err
		}
		x := cell.BBox.X0 + CellInset
		y := cell.BBox.Y0 + CellInset + CellFontSize
		if _, err := bionic(c, cell.Text, x, y, CellFontSize, black, transform.TableCellGap); err != nil {
			return err
		}
	}
	return nil
}

// list draws the lines of every item on a cursor starting at the first
// item's baseline. Lines opening with a bullet get a drawn bullet and
// enumerators ("1.", "a.") are drawn as they are, both at the left edge.
// Continuation lines are only indented.
func (r *Renderer) list(c Canvas, el classifier.Element) error {
	box, ok := el.BBox()
	if !ok {
		return fmt.Errorf("list without geometry")
	}

	var y float64
	started := false
	for _, item := range el.Items {
		for _, line := range item.Lines {
			if len(line.Spans) == 0 {
				continue
			}
			span := line.Spans[0]
			size := sizeOr(span.Size)
			if !started {
				y, started = span.Origin.Y, true
			}

			marker, text, bullet := classifier.SplitMarker(line.Text())
			if bullet {
				marker = Bullet
			}
			if marker != "" {
				style := model.TextStyle{Font: RegularFont, Size: size, Color: span.Color}
				if err := c.Text(box.X0, y, marker, style); err != nil {
					return err
				}
			}
			if _, err := bionic(c, text, box.X0+ListIndent, y, size, span.Color, transform.ListSpacing(size)); err != nil {
				return err
			}
			y += size * ListLeading
		}
	}
	return nil
}

func (r *Renderer) verbatim(c Canvas, b model.Block) error {
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if span.Text == "" {
				continue
			}
			if err := c.Text(span.Origin.X, span.Origin.Y, span.Text, span.Style()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawing(c Canvas, b model.Block) error {
	if b.Drawing == nil {
		return nil
	}
	for _, s := range b.Drawing.Segments {
		if err := c.Line(s.Start, s.End, s.Color, s.Width); err != nil {
			return err
		}
	}
	for _, dr := range b.Drawing.Rects {
		if err := c.Rect(dr.Rect, dr.Stroke, dr.Width, dr.Fill); err != nil {
			return err
		}
	}
	return nil
}

// bionic draws the words of text from x along baseline y and returns the
// final cursor position
func bionic(c Canvas, text string, x, y, size float64, color model.Color, gap float64) (float64, error) {
	regular := model.TextStyle{Font: RegularFont, Size: size, Color: color}
	bold := model.TextStyle{Font: BoldFont, Size: size, Color: color, Flags: model.FlagBold}

	for _, word := range transform.Words(text) {
		head, tail := transform.SplitWord(word)
		if head != "" {
			if err := c.Text(x, y, head, bold); err != nil {
				return x, fmt.Errorf("draw %q: %w", head, err)
			}
			x += transform.AdvanceWidth(c, head, size, true)
		}
		if tail != "" {
			if err := c.Text(x, y, tail, regular); err != nil {
				return x, fmt.Errorf("draw %q: %w", tail, err)
			}
			x += transform.AdvanceWidth(c, tail, size, false)
		}
		x += gap
	}
	return x, nil
}

func sizeOr(size float64) float64 {
	if size <= 0 {
		return defaultSize
	}
	return size
}
