package bionic

import (
	"github.com/tsawler/bionic/classifier"
	"github.com/tsawler/bionic/model"
	"github.com/tsawler/bionic/writer"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Classification
	overlapThreshold   float64
	headerFooterMargin float64

	// Output
	compress    bool
	optimize    bool
	validate    bool
	mirrorFonts bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		overlapThreshold:   model.DefaultOverlapThreshold,
		headerFooterMargin: classifier.DefaultMargin,
		compress:           true,
		optimize:           true,
		validate:           false,
		mirrorFonts:        true,
	}
}

// writerOptions returns the serialization settings of the output document.
func (o ConvertOptions) writerOptions() writer.Options {
	return writer.Options{
		Compress: o.compress,
		Optimize: o.optimize,
		Validate: o.validate,
	}
}
