// Package pdftest builds PDF documents for tests: hand-assembled object
// lists with a correct cross-reference table, and gofpdf documents for
// end-to-end fixtures.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// Build assembles a PDF from object bodies. objects[i] becomes object i+1,
// so the first body must be the catalog.
func Build(objects ...string) []byte {
	return BuildTrailer("", objects...)
}

// BuildTrailer is Build with extra trailer entries, such as "/Info 3 0 R".
func BuildTrailer(extra string, objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, extra, xref)
	return buf.Bytes()
}

// Stream returns the body of a stream object with its /Length filled in.
// dict holds the remaining entries without the enclosing << >>.
func Stream(dict string, data []byte) string {
	return fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// SinglePage builds a one-page US Letter document around a content stream.
// Object 4 is the Helvetica font /F1; extra objects start at number 5 and
// resources holds additional resource entries.
func SinglePage(content string, resources string, extra ...string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> %s >> /Contents %d 0 R >>",
			resources, 5+len(extra)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	objects = append(objects, extra...)
	objects = append(objects, Stream("", []byte(content)))
	return Build(objects...)
}

// Document renders a gofpdf document in points on US Letter pages and
// returns its bytes.
func Document(t testing.TB, draw func(pdf *gofpdf.Fpdf)) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	draw(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("pdftest: render document: %v", err)
	}
	return buf.Bytes()
}

// PNG returns a w x h image filled with c, encoded as PNG
func PNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("pdftest: encode png: %v", err)
	}
	return buf.Bytes()
}

// Paragraphs draws a sample page: a header line, two body paragraphs, a
// bulleted list and a footer line, all in Helvetica 11.
func Paragraphs(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	pdf.Text(72, 50, "Quarterly Report")
	pdf.Text(72, 150, "The quick brown fox jumps over the lazy dog.")
	pdf.Text(72, 164, "Pack my box with five dozen liquor jugs.")
	pdf.Text(72, 230, "Sphinx of black quartz, judge my vow.")

	pdf.Text(72, 300, "- first item")
	pdf.Text(72, 316, "- second item")

	pdf.Text(72, 760, "Page 1")
}
