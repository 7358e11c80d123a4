// Package pages walks the page tree of a document.
//
// [NewCatalog] finds the tree root and [PageTree] flattens it into pages in
// document order. Each [Page] sees the inheritable attributes (Resources,
// MediaBox, CropBox, Rotate) of its nearest ancestor that sets them.
//
//	tree := pages.NewPageTree(root, resolver)
//	page, err := tree.GetPage(0)
//	box, err := page.MediaBox()
//	content, err := page.ContentData()
//
// Indirect objects are resolved through an [ObjectResolver], so the
// package does not depend on how the document was read.
package pages
