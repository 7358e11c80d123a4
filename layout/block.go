package layout

import (
	"cmp"
	"regexp"
	"slices"

	"github.com/tsawler/bionic/model"
)

// Block is a group of lines forming one paragraph-like unit, in PDF user
// space
type Block struct {
	BBox  model.Rect
	Lines []Line
}

// BlockConfig tunes block detection
type BlockConfig struct {
	// Vertical gap, in line heights, above which a new block starts
	VerticalGapThreshold float64

	// Horizontal gap, in font sizes, above which lines that do not overlap
	// horizontally belong to different blocks
	HorizontalGapThreshold float64

	// Start a new block at every line opening with a list marker
	SplitListItems bool

	// Merge blocks whose boxes overlap by more than 30% of the smaller one
	MergeOverlappingBlocks bool
}

func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		VerticalGapThreshold:   1.0,
		HorizontalGapThreshold: 3.0,
		SplitListItems:         true,
		MergeOverlappingBlocks: true,
	}
}

// BlockDetector groups lines into blocks
type BlockDetector struct {
	config BlockConfig
}

func NewBlockDetector() *BlockDetector {
	return NewBlockDetectorWithConfig(DefaultBlockConfig())
}

func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{config: config}
}

// listMarker matches the start of a bulleted or enumerated line
var listMarker = regexp.MustCompile(`^\s*([•◦○▪■‣*\-–]|\d{1,3}[.)]|[a-zA-Z][.)])(\s|$)`)

// Detect groups lines, given top of the page first, into blocks ordered
// top to bottom and then left to right
func (d *BlockDetector) Detect(lines []Line) []Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []Block
	for _, line := range lines {
		if i := d.open(blocks, line); i >= 0 {
			blocks[i].add(line)
			continue
		}
		blocks = append(blocks, Block{BBox: line.BBox, Lines: []Line{line}})
	}

	if d.config.MergeOverlappingBlocks {
		blocks = mergeOverlaps(blocks)
	}
	slices.SortStableFunc(blocks, func(a, b Block) int {
		if c := cmp.Compare(b.BBox.Y1, a.BBox.Y1); c != 0 {
			return c
		}
		return cmp.Compare(a.BBox.X0, b.BBox.X0)
	})
	return blocks
}

// open returns the most recent block that line continues, or -1. Every
// block stays open so that columns interleaved by baseline are kept apart.
func (d *BlockDetector) open(blocks []Block, line Line) int {
	if d.config.SplitListItems && listMarker.MatchString(line.Text()) {
		return -1
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		if d.continues(blocks[i].Lines[len(blocks[i].Lines)-1], line) {
			return i
		}
	}
	return -1
}

// continues reports whether line can follow prev in the same block: close
// enough below it and overlapping it horizontally or near its side
func (d *BlockDetector) continues(prev, line Line) bool {
	gap := prev.BBox.Y0 - line.BBox.Y1
	height := (prev.BBox.Height() + line.BBox.Height()) / 2
	if gap > height*d.config.VerticalGapThreshold || gap < -height {
		return false
	}

	apart := max(line.BBox.X0-prev.BBox.X1, prev.BBox.X0-line.BBox.X1)
	return apart < 0 || apart <= prev.FontSize()*d.config.HorizontalGapThreshold
}

func (b *Block) add(lines ...Line) {
	for _, l := range lines {
		b.Lines = append(b.Lines, l)
		b.BBox = b.BBox.Union(l.BBox)
	}
}

// mergeOverlaps folds each block into the first earlier block it overlaps
// by more than 30% of the smaller box. Merged lines are reordered top down.
func mergeOverlaps(blocks []Block) []Block {
	var out []Block
next:
	for _, b := range blocks {
		for i := range out {
			inter := out[i].BBox.Intersection(b.BBox)
			if inter.IsEmpty() || inter.Area() <= min(out[i].BBox.Area(), b.BBox.Area())*0.3 {
				continue
			}
			out[i].add(b.Lines...)
			slices.SortStableFunc(out[i].Lines, func(x, y Line) int { return cmp.Compare(y.BBox.Y1, x.BBox.Y1) })
			continue next
		}
		out = append(out, b)
	}
	return out
}

// Model converts the block to the page model. m maps PDF user space to the
// page coordinates of the model.
func (b Block) Model(m model.Matrix, config LineConfig) model.Block {
	bbox := b.BBox.Transform(m)
	out := model.Block{Kind: model.BlockText, BBox: &bbox}

	for _, l := range b.Lines {
		line := model.Line{
			BBox: l.BBox.Transform(m),
			Dir:  model.Point{X: 1, Y: 0},
		}
		for _, s := range l.Spans(config) {
			s.Origin = m.Transform(s.Origin)
			s.BBox = s.BBox.Transform(m)
			line.Spans = append(line.Spans, s)
		}
		out.Lines = append(out.Lines, line)
	}

	return out
}
