package reader

import (
	"fmt"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/graphicsstate"
	"github.com/tsawler/bionic/layout"
	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/text"
)

// letter is the media box used for pages that do not declare one
var letter = model.Rect{X1: 612, Y1: 792}

// Page decodes page i (0-based) into text, image and drawing blocks in
// page space: the origin is the top-left corner of the media box and y
// grows downward. Blocks are ordered top to bottom, then left to right.
func (r *Reader) Page(i int) (model.PageDict, error) {
	page, err := r.GetPage(i)
	if err != nil {
		return model.PageDict{}, err
	}

	box, err := page.MediaBox()
	if err != nil {
		box = letter
	}
	resources, _ := page.Resources()

	data, err := page.ContentData()
	if err != nil {
		return model.PageDict{}, fmt.Errorf("page %d: %w", i+1, err)
	}
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return model.PageDict{}, fmt.Errorf("page %d: failed to parse content: %w", i+1, err)
	}

	scope := newContentScope()
	ops = balance(r.flatten(ops, resources, "", scope, 0))

	flip := model.Matrix{1, 0, 0, -1, -box.X0, box.Y1}
	dict := model.PageDict{
		Number: i + 1,
		Width:  box.Width(),
		Height: box.Height(),
	}

	te := text.NewExtractor()
	for name, f := range scope.fonts {
		te.AddFont(name, f)
	}
	te.ColorSpaces = scope.colorSpace
	fragments, err := te.Extract(ops)
	if err != nil {
		return model.PageDict{}, fmt.Errorf("page %d: %w", i+1, err)
	}
	dict.Blocks = layout.NewAnalyzer().PageBlocks(fragments, flip)

	ge := graphicsstate.NewGraphicsExtractor()
	ge.ColorSpaces = scope.colorSpace
	if err := ge.Extract(ops); err != nil {
		return model.PageDict{}, fmt.Errorf("page %d: %w", i+1, err)
	}
	dict.Blocks = append(dict.Blocks, r.imageBlocks(ge.Images(), scope, i, flip)...)
	dict.Blocks = append(dict.Blocks, drawingBlocks(ge.Lines(), ge.Rectangles(), flip, dict.Width*dict.Height)...)

	sortBlocks(dict.Blocks)
	return dict, nil
}

// balance drops Q operators that have no matching q
func balance(ops []contentstream.Operation) []contentstream.Operation {
	out := make([]contentstream.Operation, 0, len(ops))
	depth := 0
	for _, op := range ops {
		switch op.Operator {
		case "q":
			depth++
		case "Q":
			if depth == 0 {
				continue
			}
			depth--
		}
		out = append(out, op)
	}
	return out
}

// imageBlocks converts image placements to image blocks. Inline images
// are kept by the reader under a synthetic name so Image can return them.
func (r *Reader) imageBlocks(placements []graphicsstate.ImagePlacement, scope *contentScope, page int, flip model.Matrix) []model.Block {
	var blocks []model.Block
	for n, p := range placements {
		bbox := p.Bounds.Transform(flip)
		if bbox.IsEmpty() {
			continue
		}

		var ref model.ImageRef
		if p.IsInline() {
			ref = model.ImageRef{
				Name:   fmt.Sprintf("inline-%d-%d", page+1, n),
				Width:  inlineInt(p.InlineDict, "W", "Width"),
				Height: inlineInt(p.InlineDict, "H", "Height"),
			}
			r.inline[ref.Name] = &core.Stream{Dict: expandInlineDict(p.InlineDict), Data: p.InlineData}
		} else {
			var ok bool
			if ref, ok = scope.images[p.Name]; !ok {
				continue
			}
		}

		blocks = append(blocks, model.Block{Kind: model.BlockImage, BBox: &bbox, Image: &ref})
	}
	return blocks
}

// drawnItem is one stroked line or painted rectangle in page space
type drawnItem struct {
	box     model.Rect
	segment *model.Segment
	rect    *model.DrawnRect
}

// drawingBlocks groups the vector graphics of a page into "other" blocks:
// items whose boxes touch, within clusterGap, share a block. Filled
// rectangles covering more than a quarter of the page are backgrounds and
// get a block of their own.
func drawingBlocks(lines []graphicsstate.ExtractedLine, rects []graphicsstate.ExtractedRectangle, flip model.Matrix, pageArea float64) []model.Block {
	const clusterGap = 2.0

	var items []drawnItem
	var blocks []model.Block

	for _, l := range lines {
		seg := model.Segment{
			Start: flip.Transform(l.Start),
			End:   flip.Transform(l.End),
			Width: l.Width,
			Color: model.ColorFromFloats(l.Color[0], l.Color[1], l.Color[2]),
		}
		box := model.RectFromPoints(seg.Start, seg.End).Inflate(max(l.Width/2, 0.5))
		items = append(items, drawnItem{box: box, segment: &seg})
	}

	for _, er := range rects {
		dr := model.DrawnRect{Rect: er.BBox.Transform(flip)}
		if er.IsStroked {
			dr.Width = er.StrokeWidth
			dr.Stroke = model.ColorFromFloats(er.StrokeColor[0], er.StrokeColor[1], er.StrokeColor[2])
		}
		if er.IsFilled {
			fill := model.ColorFromFloats(er.FillColor[0], er.FillColor[1], er.FillColor[2])
			dr.Fill = &fill
		}

		if !er.IsStroked && dr.Rect.Area() > pageArea/4 {
			box := dr.Rect
			blocks = append(blocks, model.Block{
				Kind:    model.BlockOther,
				BBox:    &box,
				Drawing: &model.Drawing{Rects: []model.DrawnRect{dr}},
			})
			continue
		}
		items = append(items, drawnItem{box: dr.Rect.Inflate(dr.Width / 2), rect: &dr})
	}

	for _, group := range cluster(items, clusterGap) {
		var d model.Drawing
		box := items[group[0]].box
		for _, idx := range group {
			it := items[idx]
			box = box.Union(it.box)
			if it.segment != nil {
				d.Segments = append(d.Segments, *it.segment)
			} else {
				d.Rects = append(d.Rects, *it.rect)
			}
		}
		blocks = append(blocks, model.Block{Kind: model.BlockOther, BBox: &box, Drawing: &d})
	}

	return blocks
}

// cluster returns the connected groups of items whose boxes, grown by gap,
// intersect. Groups and their members keep painting order.
func cluster(items []drawnItem, gap float64) [][]int {
	var tr rtree.RTreeG[int]
	for i, it := range items {
		tr.Insert([2]float64{it.box.X0, it.box.Y0}, [2]float64{it.box.X1, it.box.Y1}, i)
	}

	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i, it := range items {
		area := it.box.Inflate(gap)
		tr.Search([2]float64{area.X0, area.Y0}, [2]float64{area.X1, area.Y1},
			func(_, _ [2]float64, j int) bool {
				if a, b := find(i), find(j); a != b {
					parent[max(a, b)] = min(a, b)
				}
				return true
			})
	}

	index := make(map[int]int)
	var groups [][]int
	for i := range items {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// kindRank orders blocks sharing a position: drawings first so a table
// precedes the text inside it
var kindRank = map[model.BlockKind]int{
	model.BlockOther: 0,
	model.BlockImage: 1,
	model.BlockText:  2,
}

// sortBlocks orders blocks by top edge, then left edge. Blocks without a
// box go last.
func sortBlocks(blocks []model.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i].BBox, blocks[j].BBox
		switch {
		case a == nil || b == nil:
			return a != nil && b == nil
		case a.Y0 != b.Y0:
			return a.Y0 < b.Y0
		case a.X0 != b.X0:
			return a.X0 < b.X0
		default:
			return kindRank[blocks[i].Kind] < kindRank[blocks[j].Kind]
		}
	})
}
