package graphicsstate

import (
	"math"

	"github.com/tsawler/bionic/model"
)

// ExtractedLine is a stroked straight line in device space
type ExtractedLine struct {
	Start model.Point
	End   model.Point

	Width float64
	Color [3]float64

	IsHorizontal bool
	IsVertical   bool

	BBox model.Rect
}

// Length returns the distance between the end points
func (l ExtractedLine) Length() float64 {
	return l.Start.Distance(l.End)
}

// ExtractedRectangle is a painted axis-aligned rectangle in device space
type ExtractedRectangle struct {
	BBox model.Rect

	StrokeWidth float64
	StrokeColor [3]float64
	FillColor   [3]float64
	IsFilled    bool
	IsStroked   bool
}

// subpath is a run of vertices in device space. Curves keep only their
// end point, so a curved subpath is drawn as chords.
type subpath struct {
	points []model.Point
	curved bool
	closed bool
}

// path collects the subpaths built since the last painting operator.
// Points are transformed when added, as the CTM cannot change inside a
// path object.
type path struct {
	subpaths []subpath
}

func (p *path) last() *subpath {
	if len(p.subpaths) == 0 {
		return nil
	}
	return &p.subpaths[len(p.subpaths)-1]
}

func (p *path) moveTo(pt model.Point) {
	p.subpaths = append(p.subpaths, subpath{points: []model.Point{pt}})
}

// lineTo appends a vertex. Without a current point it acts as moveTo;
// after a close it starts a new subpath at the closed one's start.
func (p *path) lineTo(pt model.Point) {
	sp := p.last()
	switch {
	case sp == nil:
		p.moveTo(pt)
		return
	case sp.closed:
		p.moveTo(sp.points[0])
		sp = p.last()
	}
	sp.points = append(sp.points, pt)
}

func (p *path) curveTo(end model.Point) {
	if p.last() == nil {
		return
	}
	p.lineTo(end)
	p.last().curved = true
}

func (p *path) close() {
	if sp := p.last(); sp != nil {
		sp.closed = true
	}
}

func (p *path) reset() {
	p.subpaths = p.subpaths[:0]
}

// paint records the current path and clears it. Subpaths that form an
// axis-aligned rectangle become rectangles; the others contribute their
// edges as lines when stroked.
func (ge *GraphicsExtractor) paint(stroked, filled, close bool) {
	defer ge.path.reset()
	if close {
		ge.path.close()
	}
	if !stroked && !filled {
		return
	}

	gs := ge.gs
	for _, sp := range ge.path.subpaths {
		if box, ok := rectangle(sp, ge.AngleTolerance); ok {
			r := ExtractedRectangle{BBox: box, IsStroked: stroked, IsFilled: filled}
			if stroked {
				r.StrokeWidth = gs.LineWidth
				r.StrokeColor = gs.StrokeColor
			}
			if filled {
				r.FillColor = gs.FillColor
			}
			ge.rects = append(ge.rects, r)
			continue
		}
		if !stroked {
			continue
		}

		for i := 1; i < len(sp.points); i++ {
			ge.lines = append(ge.lines, ge.line(sp.points[i-1], sp.points[i]))
		}
		if first, last := sp.points[0], sp.points[len(sp.points)-1]; sp.closed && !near(first, last) {
			ge.lines = append(ge.lines, ge.line(last, first))
		}
	}
}

func (ge *GraphicsExtractor) line(a, b model.Point) ExtractedLine {
	tol := ge.AngleTolerance
	return ExtractedLine{
		Start:        a,
		End:          b,
		Width:        ge.gs.LineWidth * ge.gs.CTM.ScaleX(),
		Color:        ge.gs.StrokeColor,
		IsHorizontal: math.Abs(b.Y-a.Y) < tol,
		IsVertical:   math.Abs(b.X-a.X) < tol,
		BBox:         model.RectFromPoints(a, b),
	}
}

// near reports whether two points coincide within a tenth of a unit
func near(a, b model.Point) bool {
	return math.Abs(a.X-b.X) < 0.1 && math.Abs(a.Y-b.Y) < 0.1
}

// rectangle reports whether sp is an axis-aligned rectangle: four corners,
// optionally repeating the first, joined by alternating horizontal and
// vertical edges.
func rectangle(sp subpath, tol float64) (model.Rect, bool) {
	pts := sp.points
	if sp.curved {
		return model.Rect{}, false
	}
	if len(pts) == 5 && near(pts[0], pts[4]) {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return model.Rect{}, false
	}

	flat := func(a, b model.Point) bool { return math.Abs(a.Y-b.Y) < tol }
	upright := func(a, b model.Point) bool { return math.Abs(a.X-b.X) < tol }
	edges := func(even, odd func(a, b model.Point) bool) bool {
		for i := range pts {
			test := even
			if i%2 == 1 {
				test = odd
			}
			if !test(pts[i], pts[(i+1)%4]) {
				return false
			}
		}
		return true
	}

	if !edges(flat, upright) && !edges(upright, flat) {
		return model.Rect{}, false
	}
	return model.RectFromPoints(pts...), true
}
