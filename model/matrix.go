package model

import "math"

// Matrix is a PDF affine transform [a b c d e f], mapping (x, y) to
// (ax + cy + e, bx + dy + f)
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

func (m Matrix) Transform(p Point) Point {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Point{a*p.X + c*p.Y + e, b*p.X + d*p.Y + f}
}

// Multiply returns the transform applying m first and then n, the product
// m x n in PDF notation
func (m Matrix) Multiply(n Matrix) Matrix {
	var out Matrix
	for row := 0; row < 3; row++ {
		x, y := m[2*row], m[2*row+1]
		out[2*row] = x*n[0] + y*n[2]
		out[2*row+1] = x*n[1] + y*n[3]
	}
	out[4] += n[4]
	out[5] += n[5]
	return out
}

func (m Matrix) IsIdentity() bool { return m == Identity() }

// ScaleX is the length of the transformed unit x vector
func (m Matrix) ScaleX() float64 { return math.Hypot(m[0], m[1]) }

// ScaleY is the length of the transformed unit y vector
func (m Matrix) ScaleY() float64 { return math.Hypot(m[2], m[3]) }
