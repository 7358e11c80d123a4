package model

import "strings"

// CellMatrix is a detected table: its outer rectangle and the rows of cells
type CellMatrix struct {
	BBox Rect
	Rows [][]Cell
}

// Cell is one table cell. BBox is nil for cells covered by a span.
type Cell struct {
	BBox *Rect
	Text string
}

// IsEmpty reports whether the matrix has no cells
func (m *CellMatrix) IsEmpty() bool {
	if m == nil {
		return true
	}
	for _, row := range m.Rows {
		if len(row) > 0 {
			return false
		}
	}
	return true
}

// RowCount returns the number of rows
func (m *CellMatrix) RowCount() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// ColCount returns the width of the widest row
func (m *CellMatrix) ColCount() int {
	if m == nil {
		return 0
	}
	cols := 0
	for _, row := range m.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// Cells returns every cell in row-major order
func (m *CellMatrix) Cells() []Cell {
	if m == nil {
		return nil
	}
	var cells []Cell
	for _, row := range m.Rows {
		cells = append(cells, row...)
	}
	return cells
}

// String renders the matrix as pipe-separated rows
func (m *CellMatrix) String() string {
	if m == nil {
		return ""
	}
	var sb strings.Builder
	for _, row := range m.Rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.Text
		}
		sb.WriteString("| " + strings.Join(texts, " | ") + " |\n")
	}
	return sb.String()
}

// TableGrid represents the detected ruling of a table
type TableGrid struct {
	Rows []float64 // y-coordinates of row boundaries, ascending
	Cols []float64 // x-coordinates of column boundaries, ascending
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// CellRect returns the rectangle of a cell, or the zero Rect when out of range
func (g *TableGrid) CellRect(row, col int) Rect {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return Rect{}
	}
	return Rect{
		X0: g.Cols[col],
		Y0: g.Rows[row],
		X1: g.Cols[col+1],
		Y1: g.Rows[row+1],
	}
}

// Bounds returns the rectangle spanned by the outer boundaries
func (g *TableGrid) Bounds() Rect {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return Rect{}
	}
	return Rect{
		X0: g.Cols[0],
		Y0: g.Rows[0],
		X1: g.Cols[len(g.Cols)-1],
		Y1: g.Rows[len(g.Rows)-1],
	}
}
