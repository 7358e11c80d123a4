// Package resolver expands the indirect references inside PDF objects.
//
// Dictionaries and arrays of a PDF file point at each other freely; a
// page's /Parent leads back to a node whose /Kids lead to the page again.
// [Resolver.Deep] follows every reference below an object and leaves a
// reference unexpanded when it would re-enter an object already being
// expanded on the current path:
//
//	res := resolver.New(r)
//	dict, err := res.Deep(pageDict)
//
// Expansion stops with an error past the maximum nesting depth, 100 by
// default:
//
//	res := resolver.New(r, resolver.WithMaxDepth(32))
package resolver
