// Package bionic converts PDF documents to bionic reading form: the first
// half of every word of body text is drawn bold, while headers, footers,
// lists, tables and images keep their place on the page.
//
// Basic usage:
//
//	out, warnings, err := bionic.Open("report.pdf").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", bionic.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := bionic.FromBytes(data).
//	    Filename("report.pdf").
//	    Logger(slog.Default()).
//	    Validate().
//	    Convert(ctx)
//
// The lower-level reader, classifier, render and writer packages are also
// available for custom pipelines.
package bionic

import (
	"context"
	"path/filepath"
)

// OutputPrefix is prepended to the name of a converted file
const OutputPrefix = "converted_"

// Open returns a Converter for the PDF file at path. The file is read when
// a terminal operation runs.
//
// Example:
//
//	out, warnings, err := bionic.Open("document.pdf").Convert(ctx)
func Open(path string) *Converter {
	return &Converter{
		path:     path,
		filename: filepath.Base(path),
		options:  defaultOptions(),
	}
}

// FromBytes returns a Converter for an in-memory PDF.
//
// Example:
//
//	out, warnings, err := bionic.FromBytes(data).Filename("upload.pdf").Convert(ctx)
func FromBytes(data []byte) *Converter {
	return &Converter{
		data:    data,
		options: defaultOptions(),
	}
}

// ConvertFile converts the PDF file at path with the default options
func ConvertFile(path string) ([]byte, []Warning, error) {
	return Open(path).Convert(context.Background())
}

// OutputName returns the file name of the converted form of filename
func OutputName(filename string) string {
	return OutputPrefix + filepath.Base(filename)
}

// Must is a helper that wraps a call to Convert and panics if
// the error is non-nil. It discards warnings and is intended for scripts
// and tests.
//
// Example:
//
//	out := bionic.Must(bionic.FromBytes(data).Convert(ctx))
func Must[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
