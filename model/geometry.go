package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between p and q
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle given by its corners. X0 <= X1 and
// Y0 <= Y1 for a valid rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectFromPoints returns the smallest Rect containing all points
func RectFromPoints(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	r := Rect{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		r = r.Union(Rect{p.X, p.Y, p.X, p.Y})
	}
	return r
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area is zero for empty rectangles
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty reports whether the rectangle encloses no area
func (r Rect) IsEmpty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// ContainsRect reports whether o lies entirely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// Intersects reports whether the interiors of r and o share a point.
// Rectangles that only touch along an edge do not intersect, and an empty
// rectangle intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Intersection returns the common area of r and o, or the zero Rect
func (r Rect) Intersection(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	return Rect{max(r.X0, o.X0), max(r.Y0, o.Y0), min(r.X1, o.X1), min(r.Y1, o.Y1)}
}

// Union returns the smallest rectangle containing r and o
func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// Inflate grows the rectangle by d on every side
func (r Rect) Inflate(d float64) Rect {
	return Rect{X0: r.X0 - d, Y0: r.Y0 - d, X1: r.X1 + d, Y1: r.Y1 + d}
}

// Transform returns the bounding box of r's corners mapped through m
func (r Rect) Transform(m Matrix) Rect {
	return RectFromPoints(
		m.Transform(Point{r.X0, r.Y0}),
		m.Transform(Point{r.X1, r.Y0}),
		m.Transform(Point{r.X0, r.Y1}),
		m.Transform(Point{r.X1, r.Y1}),
	)
}

// DefaultOverlapThreshold is the margin by which the second box is grown
// before the intersection test.
const DefaultOverlapThreshold = 1.0

// Overlaps reports whether a intersects b grown by threshold on every side.
// A nil box overlaps nothing.
func Overlaps(a, b *Rect, threshold float64) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Intersects(b.Inflate(threshold))
}
