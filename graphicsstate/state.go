package graphicsstate

import (
	"errors"

	"github.com/tsawler/bionic/model"
)

// ErrStackUnderflow is returned by Restore when no state was saved
var ErrStackUnderflow = errors.New("graphicsstate: restore without save")

// GraphicsState is the subset of the PDF graphics state needed to place
// text, lines and images on the page. Colors are held as RGB in [0, 1]
// whatever space they were set in.
type GraphicsState struct {
	CTM       model.Matrix
	LineWidth float64

	StrokeSpace ColorSpace
	StrokeColor [3]float64
	FillSpace   ColorSpace
	FillColor   [3]float64

	Text TextState

	saved []GraphicsState
}

// NewGraphicsState returns the state at the start of a page
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:         model.Identity(),
		LineWidth:   1,
		StrokeSpace: DeviceGray,
		FillSpace:   DeviceGray,
		Text:        newTextState(),
	}
}

// Save pushes a copy of the state (q)
func (gs *GraphicsState) Save() {
	snapshot := *gs
	snapshot.saved = nil
	gs.saved = append(gs.saved, snapshot)
}

// Restore pops the most recently saved state (Q)
func (gs *GraphicsState) Restore() error {
	n := len(gs.saved)
	if n == 0 {
		return ErrStackUnderflow
	}
	saved := gs.saved[:n-1]
	*gs = gs.saved[n-1]
	gs.saved = saved
	return nil
}

// Transform concatenates m with the CTM (cm)
func (gs *GraphicsState) Transform(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// setSpace selects a color space and resets its color to the initial
// black (CS and cs)
func (gs *GraphicsState) setSpace(stroke bool, cs ColorSpace) {
	if stroke {
		gs.StrokeSpace, gs.StrokeColor = cs, [3]float64{}
		return
	}
	gs.FillSpace, gs.FillColor = cs, [3]float64{}
}

// setColor interprets comps in the current stroke or fill space. Component
// counts the space cannot convert leave the color unchanged.
func (gs *GraphicsState) setColor(stroke bool, comps []float64) {
	space, color := &gs.FillSpace, &gs.FillColor
	if stroke {
		space, color = &gs.StrokeSpace, &gs.StrokeColor
	}
	if rgb, ok := space.toRGB(comps); ok {
		*color = rgb
	}
}
