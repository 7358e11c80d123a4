package writer

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/tsawler/bionic/font"
	"github.com/tsawler/bionic/model"
)

// probeRunes are looked up in a font's character map; a font mapping none
// of them cannot draw extracted text
const probeRunes = "eaitonsrETAOINSR0123456789 "

// standard14 names are always drawn with the core fonts
var standard14 = map[string]bool{
	"Helvetica": true, "Helvetica-Bold": true, "Helvetica-Oblique": true, "Helvetica-BoldOblique": true,
	"Times-Roman": true, "Times-Bold": true, "Times-Italic": true, "Times-BoldItalic": true,
	"Courier": true, "Courier-Bold": true, "Courier-Oblique": true, "Courier-BoldOblique": true,
	"Symbol": true, "ZapfDingbats": true,
}

// MirrorFonts registers the embedded TrueType programs of fonts so that
// spans naming them are drawn in their original typeface. Fonts are keyed
// by base font name with the subset tag, as subsets of one family carry
// different glyphs. It returns the names of the fonts registered; every
// other font falls back to a core font when drawn.
func (d *Document) MirrorFonts(fonts []*font.Font) ([]string, error) {
	if d.pdf == nil {
		return nil, ErrClosed
	}

	var names []string
	for _, f := range fonts {
		name := f.BaseFont
		if _, done := d.mirrored[name]; done || len(f.Program) == 0 || standard14[f.FamilyName()] {
			continue
		}
		if err := Usable(f.Program); err != nil {
			continue
		}

		family := fmt.Sprintf("mirror%d", len(d.mirrored)+1)
		if err := d.addFont(family, f.Program); err != nil {
			continue
		}
		d.mirrored[name] = family
		names = append(names, name)
	}
	return names, nil
}

// addFont registers a TrueType program. gofpdf panics on some malformed
// programs; those are reported as errors.
func (d *Document) addFont(family string, program []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font %s: %v", family, r)
		}
	}()
	d.pdf.AddUTF8FontFromBytes(family, "", program)
	return d.takeError()
}

// Usable reports why a TrueType program cannot be mirrored, or nil when
// it parses and maps common characters to glyphs
func Usable(program []byte) error {
	f, err := sfnt.Parse(program)
	if err != nil {
		return fmt.Errorf("invalid font program: %w", err)
	}
	if f.NumGlyphs() < 2 {
		return fmt.Errorf("font program has no glyphs")
	}

	var buf sfnt.Buffer
	for _, r := range probeRunes {
		if idx, err := f.GlyphIndex(&buf, r); err == nil && idx != 0 {
			return nil
		}
	}
	return fmt.Errorf("font program maps no common characters")
}

// CoreFont returns the gofpdf core family and style closest to a source
// font: Courier for monospaced, Times for serif and Helvetica otherwise.
func CoreFont(name string, flags model.SpanFlags) (family, style string) {
	lower := strings.ToLower(font.Family(name))

	switch {
	case flags.Has(model.FlagMono) || containsAny(lower, "courier", "mono", "consol"):
		family = "Courier"
	case strings.Contains(lower, "sans") || containsAny(lower, "helvetica", "arial"):
		family = "Helvetica"
	case flags.Has(model.FlagSerif) || containsAny(lower, "times", "serif", "georgia", "garamond", "roman"):
		family = "Times"
	default:
		family = "Helvetica"
	}

	if flags.Has(model.FlagBold) || containsAny(lower, "bold", "black", "heavy", "semibold") {
		style += "B"
	}
	if flags.Has(model.FlagItalic) || containsAny(lower, "italic", "oblique") {
		style += "I"
	}
	return family, style
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
