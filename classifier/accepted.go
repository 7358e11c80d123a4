package classifier

import (
	"github.com/tidwall/rtree"

	"github.com/tsawler/bionic/model"
)

// Accepted holds the boxes of the elements committed to a page. A box
// collides with the set when it intersects a member grown by the
// threshold.
type Accepted struct {
	threshold float64
	tree      rtree.RTreeG[int]
	boxes     []model.Rect
}

// NewAccepted creates an empty set
func NewAccepted(threshold float64) *Accepted {
	return &Accepted{threshold: threshold}
}

// Add records a box. Nil boxes are ignored.
func (a *Accepted) Add(r *model.Rect) {
	if r == nil {
		return
	}
	a.tree.Insert([2]float64{r.X0, r.Y0}, [2]float64{r.X1, r.Y1}, len(a.boxes))
	a.boxes = append(a.boxes, *r)
}

// Overlaps reports whether r collides with any member. A nil box
// collides with nothing.
func (a *Accepted) Overlaps(r *model.Rect) bool {
	if r == nil {
		return false
	}

	window := r.Inflate(a.threshold)
	hit := false
	a.tree.Search([2]float64{window.X0, window.Y0}, [2]float64{window.X1, window.Y1},
		func(_, _ [2]float64, i int) bool {
			hit = model.Overlaps(r, &a.boxes[i], a.threshold)
			return !hit
		})
	return hit
}

// Len returns the number of members
func (a *Accepted) Len() int {
	return len(a.boxes)
}

// Boxes returns the member boxes in insertion order
func (a *Accepted) Boxes() []model.Rect {
	return append([]model.Rect(nil), a.boxes...)
}
