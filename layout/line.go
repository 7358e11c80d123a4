package layout

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/text"
)

// Line is one baseline of text fragments, in PDF user space
type Line struct {
	BBox      model.Rect
	Baseline  float64
	Fragments []text.TextFragment // left to right
	Direction text.Direction
}

// LineConfig tunes line detection. Thresholds are fractions of the font
// size unless noted.
type LineConfig struct {
	// Baseline distance, as a fraction of the mean fragment height, within
	// which fragments share a line
	LineHeightTolerance float64

	// Gap above which a space is inserted between fragments
	SpaceThreshold float64

	// Gap above which fragments start a new span even in the same style
	SpanBreakThreshold float64

	// Gap at which one baseline splits into separate lines (columns,
	// table cells)
	ColumnGapThreshold float64
}

func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance: 0.5,
		SpaceThreshold:      0.15,
		SpanBreakThreshold:  1.0,
		ColumnGapThreshold:  2.5,
	}
}

// LineDetector groups text fragments into lines
type LineDetector struct {
	config LineConfig
}

func NewLineDetector() *LineDetector {
	return NewLineDetectorWithConfig(DefaultLineConfig())
}

func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{config: config}
}

// Detect groups fragments into lines, top of the page first
func (d *LineDetector) Detect(fragments []text.TextFragment) []Line {
	if len(fragments) == 0 {
		return nil
	}

	var lines []Line
	for _, row := range d.rows(fragments) {
		for _, part := range d.splitAtGaps(row) {
			lines = append(lines, newLine(part))
		}
	}
	return lines
}

// rows clusters fragments by baseline, highest first, comparing each
// fragment with the running mean baseline of the current row. Each row is
// ordered left to right.
func (d *LineDetector) rows(fragments []text.TextFragment) [][]text.TextFragment {
	tol := d.tolerance(fragments)

	sorted := slices.Clone(fragments)
	slices.SortStableFunc(sorted, func(a, b text.TextFragment) int { return cmp.Compare(b.Y, a.Y) })

	var rows [][]text.TextFragment
	var mean float64
	for _, f := range sorted {
		if n := len(rows); n > 0 && math.Abs(f.Y-mean) <= tol {
			rows[n-1] = append(rows[n-1], f)
			mean += (f.Y - mean) / float64(len(rows[n-1]))
			continue
		}
		rows = append(rows, []text.TextFragment{f})
		mean = f.Y
	}

	for _, row := range rows {
		slices.SortStableFunc(row, func(a, b text.TextFragment) int { return cmp.Compare(a.X, b.X) })
	}
	return rows
}

// tolerance is the baseline distance within which fragments share a row.
// It is normally a fraction of the mean fragment height, but shrinks to a
// fifth of the typical baseline gap when baselines sit closer than half a
// line, as happens when the CTM compresses coordinates.
func (d *LineDetector) tolerance(fragments []text.TextFragment) float64 {
	var height float64
	baselines := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		height += f.Height
		baselines = append(baselines, math.Trunc(f.Y*10)/10)
	}
	height /= float64(len(fragments))
	standard := height * d.config.LineHeightTolerance

	slices.Sort(baselines)
	baselines = slices.Compact(baselines)
	if len(baselines) < 3 {
		return standard
	}

	var gaps []float64
	for i := 1; i < len(baselines); i++ {
		if g := baselines[i] - baselines[i-1]; g > 0.1 {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) == 0 {
		return standard
	}
	slices.Sort(gaps)

	if small := gaps[len(gaps)/10]; small < height/2 {
		return max(small*0.2, 0.15)
	}
	return standard
}

// splitAtGaps cuts a row wherever the horizontal gap exceeds the column
// gap threshold
func (d *LineDetector) splitAtGaps(row []text.TextFragment) [][]text.TextFragment {
	var parts [][]text.TextFragment
	start := 0
	for i := 1; i < len(row); i++ {
		prev, cur := row[i-1], row[i]
		if cur.BBox.X0-prev.BBox.X1 > max(prev.FontSize, cur.FontSize)*d.config.ColumnGapThreshold {
			parts = append(parts, row[start:i])
			start = i
		}
	}
	return append(parts, row[start:])
}

func newLine(fragments []text.TextFragment) Line {
	line := Line{
		Fragments: fragments,
		BBox:      fragments[0].BBox,
		Baseline:  fragments[0].Y,
	}

	ltr, rtl := 0, 0
	for _, f := range fragments {
		line.BBox = line.BBox.Union(f.BBox)
		line.Baseline = min(line.Baseline, f.Y)
		switch f.Direction {
		case text.LTR:
			ltr++
		case text.RTL:
			rtl++
		}
	}

	switch {
	case rtl > ltr:
		line.Direction = text.RTL
	case ltr > 0:
		line.Direction = text.LTR
	default:
		line.Direction = text.Neutral
	}
	return line
}

// Text assembles the line, inserting a space where fragments are apart
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans(DefaultLineConfig()) {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(s.Text, " ") {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// FontSize returns the average font size of the line
func (l Line) FontSize() float64 {
	if len(l.Fragments) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range l.Fragments {
		total += f.FontSize
	}
	return total / float64(len(l.Fragments))
}

// Spans merges neighbouring fragments of the same style into spans. A gap
// wider than the space threshold becomes a space; a gap wider than the
// span break threshold starts a new span.
func (l Line) Spans(config LineConfig) []model.Span {
	var spans []model.Span
	var prev text.TextFragment

	for i, f := range l.Fragments {
		if i > 0 && sameStyle(prev, f) {
			gap := f.BBox.X0 - prev.BBox.X1
			size := max(f.FontSize, prev.FontSize)
			if gap <= size*config.SpanBreakThreshold {
				s := &spans[len(spans)-1]
				if gap > size*config.SpaceThreshold && !strings.HasSuffix(s.Text, " ") && !strings.HasPrefix(f.Text, " ") {
					s.Text += " "
				}
				s.Text += f.Text
				s.BBox = s.BBox.Union(f.BBox)
				prev = f
				continue
			}
		}

		spans = append(spans, model.Span{
			Text:   f.Text,
			Font:   f.BaseFont,
			Size:   f.FontSize,
			Color:  f.Color,
			Flags:  f.Flags,
			Origin: model.Point{X: f.X, Y: f.Y},
			BBox:   f.BBox,
		})
		prev = f
	}

	return spans
}

func sameStyle(a, b text.TextFragment) bool {
	return a.BaseFont == b.BaseFont && a.Color == b.Color && a.Flags == b.Flags &&
		math.Abs(a.FontSize-b.FontSize) < 0.01
}
