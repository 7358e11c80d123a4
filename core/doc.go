// Package core holds the PDF object model shared by the reader, the font
// decoder and the content stream parser.
//
// The eight basic object kinds map to small Go types: [Null], [Bool],
// [Int], [Real], [String], [Name], [Array] and [Dict]. [Stream] pairs a
// dictionary with its still-encoded data and [IndirectRef] names an object
// by number. Objects are plain values; nothing here reads files.
//
// [Stream.Decode] runs the stream's /Filter chain through the filters
// package. [Number] reads an Int or Real as float64, which is how most
// geometry in a PDF arrives.
package core
