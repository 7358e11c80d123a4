package graphicsstate

import (
	"slices"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/model"
)

// ImagePlacement is one painted image: an XObject drawn with Do or an
// inline image. Bounds is the unit square mapped through the CTM.
type ImagePlacement struct {
	Name   string // XObject resource name, empty for inline images
	CTM    model.Matrix
	Bounds model.Rect

	// Inline images carry their dictionary and data
	InlineDict core.Dict
	InlineData []byte
}

// IsInline reports whether the placement is an inline image
func (p ImagePlacement) IsInline() bool {
	return p.InlineDict != nil
}

// GraphicsExtractor collects the vector graphics and image placements of
// a content stream, in device space.
type GraphicsExtractor struct {
	gs     *GraphicsState
	path   path
	lines  []ExtractedLine
	rects  []ExtractedRectangle
	images []ImagePlacement

	// ColorSpaces resolves named color spaces of the page resources
	ColorSpaces ColorSpaceResolver

	// AngleTolerance is how far, in device units, an edge may lean and
	// still count as horizontal or vertical
	AngleTolerance float64

	// Minimum dimensions for filtering
	MinLineLength float64
	MinRectWidth  float64
	MinRectHeight float64
}

// NewGraphicsExtractor returns an extractor that drops lines and
// rectangle sides shorter than one unit
func NewGraphicsExtractor() *GraphicsExtractor {
	return &GraphicsExtractor{
		gs:             NewGraphicsState(),
		AngleTolerance: 0.5,
		MinLineLength:  1,
		MinRectWidth:   1,
		MinRectHeight:  1,
	}
}

// Extract runs the operations against the extractor's graphics state
func (ge *GraphicsExtractor) Extract(operations []contentstream.Operation) error {
	for _, op := range operations {
		if err := ge.apply(op); err != nil {
			return err
		}
	}
	return nil
}

// ExtractFromBytes parses a content stream and extracts from it
func (ge *GraphicsExtractor) ExtractFromBytes(data []byte) error {
	operations, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return err
	}
	return ge.Extract(operations)
}

// painting maps each path-painting operator to (stroke, fill, close)
var painting = map[string][3]bool{
	"S": {true, false, false}, "s": {true, false, true},
	"f": {false, true, false}, "F": {false, true, false}, "f*": {false, true, false},
	"B": {true, true, false}, "B*": {true, true, false},
	"b": {true, true, true}, "b*": {true, true, true},
	"n": {false, false, false},
}

// construction maps each path-construction operator to its operand count
var construction = map[string]int{"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "re": 4}

func (ge *GraphicsExtractor) apply(op contentstream.Operation) error {
	if handled, err := ge.gs.Apply(op, ge.ColorSpaces); handled {
		return err
	}

	if p, ok := painting[op.Operator]; ok {
		ge.paint(p[0], p[1], p[2])
		return nil
	}
	if n, ok := construction[op.Operator]; ok {
		if len(op.Operands) == n {
			ge.construct(op.Operator, op.Operands)
		}
		return nil
	}

	switch op.Operator {
	case "h":
		ge.path.close()
	case "Do":
		if len(op.Operands) == 1 {
			if name, ok := op.Operands[0].(core.Name); ok {
				ge.images = append(ge.images, ge.placement(string(name)))
			}
		}
	case "BI":
		if len(op.Operands) == 2 {
			p := ge.placement("")
			p.InlineDict, _ = op.Operands[0].(core.Dict)
			if data, ok := op.Operands[1].(core.String); ok {
				p.InlineData = []byte(data)
			}
			ge.images = append(ge.images, p)
		}
	}
	return nil
}

// construct adds to the current path, mapping user space points through
// the CTM
func (ge *GraphicsExtractor) construct(op string, operands []core.Object) {
	f := make([]float64, len(operands))
	for i, o := range operands {
		f[i], _ = ToFloat(o)
	}
	pt := func(x, y float64) model.Point {
		return ge.gs.CTM.Transform(model.Point{X: x, Y: y})
	}

	switch op {
	case "m":
		ge.path.moveTo(pt(f[0], f[1]))
	case "l":
		ge.path.lineTo(pt(f[0], f[1]))
	case "c", "v", "y":
		ge.path.curveTo(pt(f[len(f)-2], f[len(f)-1]))
	case "re":
		x, y, w, h := f[0], f[1], f[2], f[3]
		ge.path.moveTo(pt(x, y))
		ge.path.lineTo(pt(x+w, y))
		ge.path.lineTo(pt(x+w, y+h))
		ge.path.lineTo(pt(x, y+h))
		ge.path.close()
	}
}

func (ge *GraphicsExtractor) placement(name string) ImagePlacement {
	unit := model.Rect{X1: 1, Y1: 1}
	return ImagePlacement{Name: name, CTM: ge.gs.CTM, Bounds: unit.Transform(ge.gs.CTM)}
}

// Images returns the image placements in painting order
func (ge *GraphicsExtractor) Images() []ImagePlacement {
	return ge.images
}

// Lines returns the stroked lines at least MinLineLength long
func (ge *GraphicsExtractor) Lines() []ExtractedLine {
	return slices.DeleteFunc(slices.Clone(ge.lines), func(l ExtractedLine) bool {
		return l.Length() < ge.MinLineLength
	})
}

// Rectangles returns the painted rectangles whose sides meet the minimums
func (ge *GraphicsExtractor) Rectangles() []ExtractedRectangle {
	return slices.DeleteFunc(slices.Clone(ge.rects), func(r ExtractedRectangle) bool {
		return r.BBox.Width() < ge.MinRectWidth || r.BBox.Height() < ge.MinRectHeight
	})
}
