// Package render draws classified page elements onto an output page.
//
// Prose, list items and table cells are drawn in bionic form: each word is
// split with [transform.SplitWord], the bold part is drawn in [BoldFont]
// and the rest in [RegularFont], and a cursor advances by the measured
// width of each part plus the word gap. Headers and footers are copied
// span by span with their original style. Images are fetched from the
// source document and placed at their original box. Other drawings are
// replayed as strokes and fills.
//
//	r := render.New(src)
//	for _, el := range elements {
//		if err := r.Render(page, el); err != nil {
//			// skip the element
//		}
//	}
package render
