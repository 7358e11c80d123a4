package writer

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/bionic/internal/pdfconf"
	"github.com/tsawler/bionic/model"
)

// ErrClosed is returned by every method of a closed Document
var ErrClosed = errors.New("document is closed")

// ErrNoPage is returned when drawing before the first AddPage
var ErrNoPage = errors.New("no page added")

// Options controls serialization
type Options struct {
	Compress bool // deflate content streams
	Optimize bool // rewrite with pdfcpu to drop duplicate objects
	Validate bool // validate the result with pdfcpu
}

// DefaultOptions compresses and optimizes without validation
func DefaultOptions() Options {
	return Options{Compress: true, Optimize: true}
}

// Document is an output PDF under construction. It is not safe for
// concurrent use.
type Document struct {
	pdf      *gofpdf.Fpdf
	opts     Options
	tr       func(string) string
	mirrored map[string]string // source base font -> registered family
	images   map[string]bool
	pages    int
}

// New creates an empty document
func New(opts Options) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 612, Ht: 792},
	})
	pdf.SetCompression(opts.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	return &Document{
		pdf:      pdf,
		opts:     opts,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		mirrored: make(map[string]string),
		images:   make(map[string]bool),
	}
}

// Info is the document information dictionary of the output
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// SetInfo records the document information. Empty entries are omitted.
func (d *Document) SetInfo(info Info) error {
	if d.pdf == nil {
		return ErrClosed
	}
	for _, e := range []struct {
		value string
		set   func(string, bool)
	}{
		{info.Title, d.pdf.SetTitle},
		{info.Author, d.pdf.SetAuthor},
		{info.Subject, d.pdf.SetSubject},
		{info.Keywords, d.pdf.SetKeywords},
		{info.Creator, d.pdf.SetCreator},
	} {
		if e.value != "" {
			e.set(e.value, true)
		}
	}
	return d.takeError()
}

// AddPage starts a new page of the given size in points
func (d *Document) AddPage(width, height float64) error {
	if d.pdf == nil {
		return ErrClosed
	}
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	d.pages++
	return d.takeError()
}

// PageCount returns the number of pages added
func (d *Document) PageCount() int {
	return d.pages
}

// Text draws s with its baseline starting at (x, y)
func (d *Document) Text(x, y float64, s string, style model.TextStyle) error {
	if err := d.ready(); err != nil {
		return err
	}

	if family, ok := d.mirrored[style.Font]; ok {
		d.pdf.SetFont(family, "", style.Size)
	} else {
		family, fontStyle := CoreFont(style.Font, style.Flags)
		d.pdf.SetFont(family, fontStyle, style.Size)
		s = d.tr(s)
	}
	d.pdf.SetTextColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
	d.pdf.Text(x, y, s)
	return d.takeError()
}

// StringWidth measures text in Helvetica or Helvetica-Bold
func (d *Document) StringWidth(text string, size float64, bold bool) float64 {
	if d.pdf == nil {
		return 0
	}
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont("Helvetica", style, size)
	return d.pdf.GetStringWidth(d.tr(text))
}

// Rect strokes r when width > 0 and fills it when fill is set
func (d *Document) Rect(r model.Rect, stroke model.Color, width float64, fill *model.Color) error {
	if err := d.ready(); err != nil {
		return err
	}

	style := ""
	if width > 0 {
		d.pdf.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
		d.pdf.SetLineWidth(width)
		style = "D"
	}
	if fill != nil {
		d.pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
		style += "F"
	}
	if style == "" {
		return nil
	}
	d.pdf.Rect(r.X0, r.Y0, r.Width(), r.Height(), style)
	return d.takeError()
}

// Line strokes a segment
func (d *Document) Line(from, to model.Point, color model.Color, width float64) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	d.pdf.SetLineWidth(width)
	d.pdf.Line(from.X, from.Y, to.X, to.Y)
	return d.takeError()
}

// Image places encoded image data, "png" or "jpg", in box. Identical data
// is embedded once.
func (d *Document) Image(data []byte, format string, box model.Rect) error {
	if err := d.ready(); err != nil {
		return err
	}

	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpg", "jpeg":
		imageType = "JPG"
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	h := fnv.New64a()
	h.Write(data)
	name := fmt.Sprintf("img-%x", h.Sum64())

	opts := gofpdf.ImageOptions{ImageType: imageType}
	if !d.images[name] {
		d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if err := d.takeError(); err != nil {
			return fmt.Errorf("failed to register image: %w", err)
		}
		d.images[name] = true
	}

	d.pdf.ImageOptions(name, box.X0, box.Y0, box.Width(), box.Height(), false, opts, 0, "")
	return d.takeError()
}

// Bytes serializes the document. It may be called once; the document
// accepts no drawing afterwards.
func (d *Document) Bytes() ([]byte, error) {
	if d.pdf == nil {
		return nil, ErrClosed
	}
	if d.pages == 0 {
		d.AddPage(612, 792)
	}

	var raw bytes.Buffer
	if err := d.pdf.Output(&raw); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	out := raw.Bytes()

	if !d.opts.Optimize && !d.opts.Validate {
		return out, nil
	}

	conf := pdfconf.Configuration()
	if d.opts.Optimize {
		var optimized bytes.Buffer
		if err := api.Optimize(bytes.NewReader(out), &optimized, conf); err != nil {
			return nil, fmt.Errorf("failed to optimize PDF: %w", err)
		}
		out = optimized.Bytes()
	}
	if d.opts.Validate {
		if err := api.Validate(bytes.NewReader(out), conf); err != nil {
			return nil, fmt.Errorf("output failed validation: %w", err)
		}
	}
	return out, nil
}

// Close releases the document. It is safe to call Close multiple times.
func (d *Document) Close() error {
	d.pdf = nil
	d.mirrored = nil
	d.images = nil
	return nil
}

func (d *Document) ready() error {
	if d.pdf == nil {
		return ErrClosed
	}
	if d.pages == 0 {
		return ErrNoPage
	}
	return nil
}

// takeError returns and clears the gofpdf error so one failed call does
// not poison the document
func (d *Document) takeError() error {
	if !d.pdf.Ok() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return err
	}
	return nil
}
