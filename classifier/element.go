package classifier

import "github.com/tsawler/bionic/model"

// Category is the kind of a classified element
type Category int

const (
	Text Category = iota
	Image
	Table
	List
	HeaderFooter
	Other
)

// Categories lists every category in declaration order
var Categories = []Category{Text, Image, Table, List, HeaderFooter, Other}

// String returns the category name
func (c Category) String() string {
	switch c {
	case Text:
		return "text"
	case Image:
		return "image"
	case Table:
		return "table"
	case List:
		return "list"
	case HeaderFooter:
		return "header_footer"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Element is a block annotated with its category. Lists carry their item
// blocks, tables their cell matrix.
type Element struct {
	Category Category
	Block    model.Block
	Index    int // position of Block in the page

	Items []model.Block
	Cells *model.CellMatrix
}

// BBox returns the area the element covers: the union of the items of a
// list, the grid of a table and the block box otherwise.
func (e Element) BBox() (model.Rect, bool) {
	switch {
	case e.Category == List && len(e.Items) > 0:
		var box model.Rect
		found := false
		for _, item := range e.Items {
			r, ok := model.BoundingBox(item)
			if !ok {
				continue
			}
			if !found {
				box, found = r, true
			} else {
				box = box.Union(r)
			}
		}
		return box, found
	case e.Category == Table && e.Cells != nil:
		return e.Cells.BBox, true
	default:
		return model.BoundingBox(e.Block)
	}
}

// Counts tallies elements per category
func Counts(elements []Element) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, el := range elements {
		counts[el.Category]++
	}
	return counts
}
