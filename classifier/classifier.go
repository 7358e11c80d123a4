package classifier

import (
	"slices"
	"strings"
	"unicode"

	"github.com/tsawler/bionic/model"
)

// DefaultMargin is the height of the header and footer bands (one inch)
const DefaultMargin = 72.0

// listMarkers open a list item
var listMarkers = []string{"•", "-", "*", "○", "▪", "1.", "a.", "A."}

// TableFinder detects a ruled table on a page inside clip. A nil or empty
// matrix means no table.
type TableFinder interface {
	FindTable(page model.PageDict, clip model.Rect) *model.CellMatrix
}

// Classifier categorizes the blocks of a page
type Classifier struct {
	Tables TableFinder // may be nil: drawings are then always other
	Margin float64     // header/footer band height
}

// New creates a classifier with the default margin
func New(tables TableFinder) *Classifier {
	return &Classifier{Tables: tables, Margin: DefaultMargin}
}

// Classify categorizes the blocks of page with the default margin
func Classify(page model.PageDict, acc *Accepted, tables TableFinder) []Element {
	return New(tables).Classify(page, acc)
}

// Classify returns the elements of page in block order. Every element
// except other is added to acc; blocks colliding with acc are dropped.
func (c *Classifier) Classify(page model.PageDict, acc *Accepted) []Element {
	var elements []Element

	for i := 0; i < len(page.Blocks); i++ {
		block := page.Blocks[i]
		bbox := block.BBox

		if c.isHeaderFooter(page, block) {
			acc.Add(bbox)
			elements = append(elements, Element{Category: HeaderFooter, Block: block, Index: i})
			continue
		}

		if acc.Overlaps(bbox) {
			continue
		}

		switch {
		case block.IsText():
			if items, consumed := c.listRun(page, i, acc); len(items) > 0 {
				el := Element{Category: List, Block: block, Index: i, Items: items}
				if box, ok := el.BBox(); ok {
					acc.Add(&box)
				}
				elements = append(elements, el)
				i += consumed - 1
				continue
			}
			acc.Add(bbox)
			elements = append(elements, Element{Category: Text, Block: block, Index: i})

		case block.IsImage():
			acc.Add(bbox)
			elements = append(elements, Element{Category: Image, Block: block, Index: i})

		default:
			if cells := c.findTable(page, block); cells != nil {
				grid := cells.BBox
				acc.Add(&grid)
				elements = append(elements, Element{Category: Table, Block: block, Index: i, Cells: cells})
				continue
			}
			elements = append(elements, Element{Category: Other, Block: block, Index: i})
		}
	}

	return elements
}

// isHeaderFooter reports whether a text block starts in the top band or
// ends in the bottom band
func (c *Classifier) isHeaderFooter(page model.PageDict, b model.Block) bool {
	if !b.IsText() || b.BBox == nil {
		return false
	}
	return b.BBox.Y0 < c.Margin || b.BBox.Y1 > page.Height-c.Margin
}

// listRun returns the contiguous list items starting at block i and the
// number of blocks the run spans. The run stops before a header or footer.
// Blocks inside the run that collide with acc or repeat an earlier item's
// area are consumed without becoming items.
func (c *Classifier) listRun(page model.PageDict, i int, acc *Accepted) (items []model.Block, consumed int) {
	for _, b := range page.Blocks[i:] {
		if !IsListItem(b) || c.isHeaderFooter(page, b) {
			break
		}
		consumed++
		if consumed > 1 && (acc.Overlaps(b.BBox) || repeats(items, b)) {
			continue
		}
		items = append(items, b)
	}
	return items, consumed
}

// repeats reports whether b's box strictly intersects an item's box
func repeats(items []model.Block, b model.Block) bool {
	if b.BBox == nil {
		return false
	}
	return slices.ContainsFunc(items, func(item model.Block) bool {
		return item.BBox != nil && item.BBox.Intersects(*b.BBox)
	})
}

func (c *Classifier) findTable(page model.PageDict, b model.Block) *model.CellMatrix {
	if c.Tables == nil || b.BBox == nil {
		return nil
	}
	cells := c.Tables.FindTable(page, *b.BBox)
	if cells == nil || cells.IsEmpty() {
		return nil
	}
	return cells
}

// IsListItem reports whether the first span of a text block starts with a
// list marker
func IsListItem(b model.Block) bool {
	if !b.IsText() {
		return false
	}
	span, ok := b.FirstSpan()
	if !ok {
		return false
	}
	_, ok = ListMarker(span.Text)
	return ok
}

// ListMarker returns the list marker text starts with, ignoring leading
// white space
func ListMarker(text string) (string, bool) {
	text = strings.TrimLeft(text, " \t\r\n")
	for _, m := range listMarkers {
		if strings.HasPrefix(text, m) {
			return m, true
		}
	}
	return "", false
}

// glyphBullets are markers that carry no content of their own
var glyphBullets = []string{"•", "○", "▪"}

// SplitMarker separates the list marker from the rest of text. Glyph
// bullets, and "-" or "*" followed by white space, report bullet and are
// redrawn as a bullet. Enumerators ("1.", "a.", "A.") followed by white
// space are returned as marker and drawn as they are. Any other text,
// "-5 degrees" included, is returned whole as rest.
func SplitMarker(text string) (marker, rest string, bullet bool) {
	text = strings.TrimSpace(text)
	m, ok := ListMarker(text)
	if !ok {
		return "", text, false
	}
	after := text[len(m):]
	spaced := strings.TrimLeftFunc(after, unicode.IsSpace) != after

	switch {
	case slices.Contains(glyphBullets, m):
		return m, strings.TrimSpace(after), true
	case !spaced:
		return "", text, false
	case m == "-" || m == "*":
		return m, strings.TrimSpace(after), true
	}
	return m, strings.TrimSpace(after), false
}
