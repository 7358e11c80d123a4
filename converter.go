package bionic

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tsawler/bionic/classifier"
	"github.com/tsawler/bionic/reader"
	"github.com/tsawler/bionic/tables"
	"github.com/tsawler/bionic/writer"
)

// signature starts every PDF file
var signature = []byte("%PDF")

// Converter provides a fluent interface for converting a PDF. Each
// configuration method returns a new Converter, so a configured Converter
// can be shared and reused safely.
type Converter struct {
	// Source
	path     string // read on demand when set
	data     []byte
	filename string // diagnostics and output naming only

	// Configuration
	options ConvertOptions
	logger  *slog.Logger
}

// clone creates a copy of the Converter. The input bytes are shared.
func (c *Converter) clone() *Converter {
	newConv := *c
	return &newConv
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Filename sets the name used in diagnostics and by OutputName.
func (c *Converter) Filename(name string) *Converter {
	newConv := c.clone()
	newConv.filename = name
	return newConv
}

// Logger sets the structured logger. By default nothing is logged.
//
// Example:
//
//	out, _, err := bionic.Open("doc.pdf").Logger(slog.Default()).Convert(ctx)
func (c *Converter) Logger(l *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.logger = l
	return newConv
}

// OverlapThreshold sets the margin, in points, by which accepted elements
// are grown before testing a later block against them.
func (c *Converter) OverlapThreshold(points float64) *Converter {
	newConv := c.clone()
	newConv.options.overlapThreshold = points
	return newConv
}

// HeaderFooterMargin sets the height, in points, of the top and bottom
// bands whose text is copied verbatim.
func (c *Converter) HeaderFooterMargin(points float64) *Converter {
	newConv := c.clone()
	newConv.options.headerFooterMargin = points
	return newConv
}

// Compress enables or disables deflate compression of the output.
func (c *Converter) Compress(on bool) *Converter {
	newConv := c.clone()
	newConv.options.compress = on
	return newConv
}

// Optimize enables or disables the object compaction pass.
func (c *Converter) Optimize(on bool) *Converter {
	newConv := c.clone()
	newConv.options.optimize = on
	return newConv
}

// Validate checks the output with pdfcpu before returning it.
func (c *Converter) Validate() *Converter {
	newConv := c.clone()
	newConv.options.validate = true
	return newConv
}

// MirrorFonts enables or disables copying embedded fonts of the input for
// verbatim text.
func (c *Converter) MirrorFonts(on bool) *Converter {
	newConv := c.clone()
	newConv.options.mirrorFonts = on
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Convert runs the conversion and returns the output PDF. Elements that
// cannot be drawn are skipped and reported as warnings. The context is
// checked between pages.
//
// Example:
//
//	out, warnings, err := bionic.Open("document.pdf").Convert(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", bionic.FormatWarnings(warnings))
//	}
func (c *Converter) Convert(ctx context.Context) ([]byte, []Warning, error) {
	start := time.Now()
	log := c.log()

	r, err := c.open()
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	doc := writer.New(c.options.writerOptions())
	defer doc.Close()

	meta := r.Metadata()
	if err := doc.SetInfo(writer.Info{
		Title:    meta.Title,
		Author:   meta.Author,
		Subject:  meta.Subject,
		Keywords: meta.Keywords,
		Creator:  meta.Creator,
	}); err != nil {
		return nil, nil, c.fail("save", 0, err)
	}

	if c.options.mirrorFonts {
		fonts, err := r.Fonts()
		if err != nil {
			return nil, nil, c.fail("fonts", 0, err)
		}
		mirrored, err := doc.MirrorFonts(fonts)
		if err != nil {
			return nil, nil, c.fail("fonts", 0, err)
		}
		log.Debug("mirrored fonts", "fonts", len(fonts), "embedded", mirrored)
	}

	count, err := r.PageCount()
	if err != nil {
		return nil, nil, c.fail("open", 0, err)
	}

	pipeline := newPagePipeline(c.options, tables.NewFinder(), r, log)
	var warnings []Warning
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, c.fail("convert", i+1, err)
		}

		page, err := r.Page(i)
		if err != nil {
			return nil, nil, c.fail("page", i+1, err)
		}
		pageWarnings, err := pipeline.convert(doc, page)
		if err != nil {
			return nil, nil, c.fail("render", i+1, err)
		}
		warnings = append(warnings, pageWarnings...)
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, nil, c.fail("save", 0, err)
	}

	log.Info("converted document",
		"file", c.filename,
		"version", meta.Version,
		"pages", count,
		"warnings", len(warnings),
		"bytes", len(out),
		"duration", time.Since(start))
	return out, warnings, nil
}

// PageSummary is the classification of one page
type PageSummary struct {
	Number int
	Width  float64
	Height float64
	Blocks int
	Counts map[classifier.Category]int
}

// Inspect classifies every page without drawing and returns the element
// counts per page.
func (c *Converter) Inspect(ctx context.Context) ([]PageSummary, error) {
	r, err := c.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, c.fail("open", 0, err)
	}

	pipeline := newPagePipeline(c.options, tables.NewFinder(), r, c.log())
	summaries := make([]PageSummary, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, c.fail("inspect", i+1, err)
		}
		page, err := r.Page(i)
		if err != nil {
			return nil, c.fail("page", i+1, err)
		}
		summaries = append(summaries, PageSummary{
			Number: page.Number,
			Width:  page.Width,
			Height: page.Height,
			Blocks: len(page.Blocks),
			Counts: classifier.Counts(pipeline.classify(page)),
		})
	}
	return summaries, nil
}

// open reads the input if needed, checks the signature and opens a reader
func (c *Converter) open() (*reader.Reader, error) {
	data := c.data
	if c.path != "" && data == nil {
		var err error
		if data, err = os.ReadFile(c.path); err != nil {
			return nil, c.fail("read", 0, err)
		}
	}

	if !bytes.HasPrefix(data, signature) {
		c.log().Error("rejected input without PDF signature", "file", c.filename)
		return nil, c.fail("validate", 0, ErrNotPDF)
	}

	r, err := reader.OpenBytes(data)
	if err != nil {
		return nil, c.fail("open", 0, err)
	}
	return r, nil
}

func (c *Converter) fail(op string, page int, err error) error {
	return &ConvertError{Op: op, Filename: c.filename, Page: page, Err: err}
}

func (c *Converter) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}
