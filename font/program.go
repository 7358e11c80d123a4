package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// program is a parsed embedded TrueType program. It supplies advance
// widths for simple fonts that carry no /Widths.
type program struct {
	f    *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	upem float64
}

func parseProgram(data []byte) (*program, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font program: %w", err)
	}
	upem := f.UnitsPerEm()
	if upem <= 0 {
		return nil, fmt.Errorf("font program has no units per em")
	}
	return &program{f: f, ppem: fixed.I(int(upem)), upem: float64(upem)}, nil
}

// advance returns the width of the glyph for r in thousandths of an em
func (p *program) advance(r rune) (float64, bool) {
	gi, err := p.f.GlyphIndex(&p.buf, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	adv, err := p.f.GlyphAdvance(&p.buf, gi, p.ppem, xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return float64(adv) / 64 * 1000 / p.upem, true
}
