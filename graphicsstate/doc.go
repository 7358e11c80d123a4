// Package graphicsstate interprets the state-changing operators of a PDF
// content stream and records the vector graphics and images a page paints.
//
// GraphicsState tracks the CTM, line width, stroke and fill colors (as RGB)
// and the text state. Apply consumes the operators that only change state
// so that callers handle the ones they care about:
//
//	gs := graphicsstate.NewGraphicsState()
//	for _, op := range ops {
//		if handled, err := gs.Apply(op, nil); handled {
//			...
//		}
//	}
//
// GlyphAdvance, KerningAdvance and AdvanceText move the text matrix for Tj
// and TJ, and TextPoint maps text space to device space.
//
// GraphicsExtractor builds paths in device space and, at each painting
// operator, records axis-aligned rectangles and the straight edges of
// stroked paths. Curves are reduced to their chords. Image XObjects and
// inline images are recorded with their placement.
package graphicsstate
