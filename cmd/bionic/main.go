// Package main provides the entry point for the bionic CLI.
//
// bionic converts PDF documents to bionic reading form, either as a batch
// over files on disk or as an HTTP service.
//
// Usage:
//
//	bionic convert report.pdf paper.pdf --out converted/
//	bionic serve --port 3003
//	bionic inspect report.pdf
//
// See --help for all available options.
package main

// main is the entry point for bionic.
func main() {
	Execute()
}
