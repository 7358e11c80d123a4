package font

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/bionic/core"
)

// Resolver looks up the object an indirect reference points to
type Resolver = func(ref core.IndirectRef) (core.Object, error)

// defaultWidth is used for codes no metrics cover, in thousandths of an em
const defaultWidth = 500.0

// Font is a font resource as far as text extraction needs it: how shown
// bytes split into codes, how wide each code is and what text it stands
// for.
type Font struct {
	Name     string
	BaseFont string
	Subtype  string

	// Encoding is the name of the base encoding, or of the CMap for
	// composite fonts
	Encoding string

	// Descriptor is nil for the Standard 14 fonts
	Descriptor *FontDescriptor

	// Program holds the decoded embedded TrueType program, if any
	Program []byte

	// ToUnicodeCMap maps codes to text and takes precedence over Encoding
	ToUnicodeCMap *CMap

	enc       Encoding
	composite bool

	// widths by character code, from /Widths or /W
	widths       map[int]float64
	defaultWidth float64

	// standard metrics by rune, used when widths has no entry
	metrics *[95]float64
	program *program
}

// NewFont returns a simple font with Standard 14 metrics for baseFont, or
// Helvetica metrics when baseFont is not one of them.
func NewFont(name, baseFont, subtype string) *Font {
	f := &Font{
		Name:         name,
		BaseFont:     baseFont,
		Subtype:      subtype,
		Encoding:     "WinAnsiEncoding",
		enc:          WinAnsiEncoding,
		widths:       make(map[int]float64),
		defaultWidth: defaultWidth,
		metrics:      standardMetrics(baseFont),
	}
	return f
}

// IsStandardFont reports whether the font is one of the Standard 14
func (f *Font) IsStandardFont() bool {
	_, ok := standard14[f.FamilyName()]
	return ok
}

// IsComposite reports whether the font is a Type0 font with two-byte codes
func (f *Font) IsComposite() bool {
	return f.composite
}

// Measure returns the summed glyph widths of a shown string in thousandths
// of an em, together with the number of character codes and of single-byte
// space codes it contains.
func (f *Font) Measure(data []byte) (width float64, codes, spaces int) {
	if f.composite {
		for i := 0; i+1 < len(data); i += 2 {
			width += f.codeWidth(int(data[i])<<8 | int(data[i+1]))
			codes++
		}
		return width, codes, 0
	}

	for _, c := range data {
		width += f.codeWidth(int(c))
		codes++
		if c == ' ' {
			spaces++
		}
	}
	return width, codes, spaces
}

func (f *Font) codeWidth(code int) float64 {
	if w, ok := f.widths[code]; ok {
		return w
	}
	if f.composite {
		return f.defaultWidth
	}

	r := f.decodeCode(byte(code))
	if f.program != nil {
		if w, ok := f.program.advance(r); ok {
			return w
		}
	}
	if f.metrics != nil && r >= 32 && r <= 126 {
		return f.metrics[r-32]
	}
	return f.defaultWidth
}

// DecodeString turns shown bytes into NFC text. A ToUnicode CMap wins,
// then a UTF-16 byte order mark, then the font's encoding.
func (f *Font) DecodeString(data []byte) string {
	var s string
	switch {
	case f.ToUnicodeCMap != nil:
		s = f.ToUnicodeCMap.LookupString(data)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		s = DecodeUTF16BE(data[2:])
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		s = DecodeUTF16LE(data[2:])
	case f.composite:
		// Identity CMaps without ToUnicode: assume CIDs follow Unicode
		s = DecodeUTF16BE(data)
	default:
		s = f.encoding().DecodeString(data)
	}
	return NormalizeUnicode(s)
}

func (f *Font) encoding() Encoding {
	if f.enc == nil {
		f.enc = GetEncoding(f.Encoding)
	}
	return f.enc
}

// decodeCode maps a single-byte code to the rune it displays as
func (f *Font) decodeCode(code byte) rune {
	if f.ToUnicodeCMap != nil {
		if s := f.ToUnicodeCMap.LookupString([]byte{code}); utf8.RuneCountInString(s) == 1 {
			r, _ := utf8.DecodeRuneInString(s)
			return r
		}
	}
	return f.encoding().Decode(code)
}

// FamilyName returns the base font name without a subset prefix
// ("ABCDEF+Calibri-Bold" -> "Calibri-Bold")
func (f *Font) FamilyName() string {
	return Family(f.BaseFont)
}

// Family strips the subset tag from a base font name
func Family(baseFont string) string {
	if isSubset(baseFont) {
		return baseFont[7:]
	}
	return baseFont
}

// isSubset reports whether name carries a six-capital subset tag
func isSubset(name string) bool {
	if len(name) < 8 || name[6] != '+' {
		return false
	}
	for _, c := range name[:6] {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func (f *Font) nameHas(markers ...string) bool {
	name := strings.ToLower(f.FamilyName())
	for _, m := range markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// IsBold reports whether the font is a bold face, by descriptor flags, weight or name
func (f *Font) IsBold() bool {
	if d := f.Descriptor; d.HasFlag(FlagForceBold) || (d != nil && d.FontWeight >= 600) {
		return true
	}
	return f.nameHas("bold", "black", "heavy", "semibold", "demi")
}

// IsItalic reports whether the font is an italic or oblique face
func (f *Font) IsItalic() bool {
	if d := f.Descriptor; d.HasFlag(FlagItalic) || (d != nil && d.ItalicAngle != 0) {
		return true
	}
	return f.nameHas("italic", "oblique")
}

// IsSerif reports whether the font has serifs
func (f *Font) IsSerif() bool {
	if f.Descriptor != nil {
		return f.Descriptor.HasFlag(FlagSerif)
	}
	name := strings.ToLower(f.FamilyName())
	return strings.HasPrefix(name, "times") || (strings.Contains(name, "serif") && !strings.Contains(name, "sans"))
}

// IsMonospaced reports whether the font is fixed-pitch
func (f *Font) IsMonospaced() bool {
	return f.Descriptor.HasFlag(FlagFixedPitch) || f.nameHas("courier", "mono")
}

// IsVertical reports whether a composite font writes top to bottom
func (f *Font) IsVertical() bool {
	return f.composite && strings.HasSuffix(f.Encoding, "-V")
}
