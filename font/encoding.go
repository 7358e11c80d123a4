package font

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes to Unicode
type Encoding interface {
	Name() string
	Decode(b byte) rune
	DecodeString(data []byte) string
}

// charmapEncoding wraps an x/text code page
type charmapEncoding struct {
	name string
	cm   *charmap.Charmap
}

func (e *charmapEncoding) Name() string { return e.name }

func (e *charmapEncoding) Decode(b byte) rune {
	return e.cm.DecodeByte(b)
}

func (e *charmapEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

// tableEncoding is an encoding defined by a 256-entry table.
// Zero entries are undefined and decode to U+FFFD.
type tableEncoding struct {
	name  string
	table [256]rune
}

func (e *tableEncoding) Name() string { return e.name }

func (e *tableEncoding) Decode(b byte) rune {
	if r := e.table[b]; r != 0 {
		return r
	}
	return utf8.RuneError
}

func (e *tableEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

// CustomEncoding overlays a Differences array on a base encoding
type CustomEncoding struct {
	base        Encoding
	differences map[byte]rune
}

// NewCustomEncodingFromGlyphs creates a custom encoding from glyph names, as found
// in a font's /Differences array. Unknown glyph names are ignored.
func NewCustomEncodingFromGlyphs(base Encoding, differences map[byte]string) *CustomEncoding {
	d := make(map[byte]rune, len(differences))
	for code, glyph := range differences {
		if r, ok := GlyphToUnicode(glyph); ok {
			d[code] = r
		}
	}
	return &CustomEncoding{base: base, differences: d}
}

func (e *CustomEncoding) Name() string { return e.base.Name() + "+custom" }

func (e *CustomEncoding) Decode(b byte) rune {
	if r, ok := e.differences[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

func (e *CustomEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

func decodeBytes(enc Encoding, data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(enc.Decode(b))
	}
	return sb.String()
}

// Predefined PDF encodings
var (
	WinAnsiEncoding  Encoding = &charmapEncoding{name: "WinAnsiEncoding", cm: charmap.Windows1252}
	MacRomanEncoding Encoding = &charmapEncoding{name: "MacRomanEncoding", cm: charmap.Macintosh}
	PDFDocEncoding   Encoding = &tableEncoding{name: "PDFDocEncoding", table: pdfDocTable()}

	// StandardEncodingTable is Adobe StandardEncoding, the built-in encoding of most Type1 fonts
	StandardEncodingTable Encoding = &tableEncoding{name: "StandardEncoding", table: standardTable()}
)

// GetEncoding returns the encoding with the given PDF name, defaulting to WinAnsiEncoding
func GetEncoding(name string) Encoding {
	switch strings.TrimPrefix(name, "/") {
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	case "StandardEncoding":
		return StandardEncodingTable
	default:
		return WinAnsiEncoding
	}
}

// NormalizeUnicode converts s to NFC
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// DecodeUTF16BE decodes big-endian UTF-16 bytes. A trailing odd byte is dropped.
func DecodeUTF16BE(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}

// DecodeUTF16LE decodes little-endian UTF-16 bytes. A trailing odd byte is dropped.
func DecodeUTF16LE(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
	}
	return string(utf16.Decode(units))
}

// DecodeTextString decodes a PDF text string such as a document title:
// UTF-16BE or UTF-8 after a byte order mark, PDFDocEncoding otherwise.
func DecodeTextString(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return DecodeUTF16BE(data[2:])
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:])
	}
	return PDFDocEncoding.DecodeString(data)
}

// GlyphToUnicode resolves a glyph name to a rune. Besides the named glyphs it
// understands the uniXXXX and uXXXX[XX] forms.
func GlyphToUnicode(glyph string) (rune, bool) {
	if r, ok := glyphNameToUnicode[glyph]; ok {
		return r, true
	}
	// Variants such as "a.sc" or "f_i.alt" share the base glyph
	if i := strings.IndexByte(glyph, '.'); i > 0 {
		if r, ok := glyphNameToUnicode[glyph[:i]]; ok {
			return r, true
		}
	}
	if strings.HasPrefix(glyph, "uni") && len(glyph) >= 7 {
		if v, err := strconv.ParseUint(glyph[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if strings.HasPrefix(glyph, "u") && len(glyph) >= 5 && len(glyph) <= 7 {
		if v, err := strconv.ParseUint(glyph[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return 0, false
}

func asciiTable() [256]rune {
	var t [256]rune
	for i := 0x20; i < 0x7F; i++ {
		t[i] = rune(i)
	}
	t['\t'] = '\t'
	t['\n'] = '\n'
	t['\r'] = '\r'
	return t
}

func pdfDocTable() [256]rune {
	t := asciiTable()
	// 0x18-0x1F hold spacing diacritics
	copy(t[0x18:], []rune{'˘', 'ˇ', 'ˆ', '˙', '˝', '˛', '˚', '˜'})
	copy(t[0x80:], []rune{
		'•', '†', '‡', '…', '—', '–', 'ƒ', '⁄', '‹', '›', '−', '‰', '„', '“', '”', '‘',
		'’', '‚', '™', 'ﬁ', 'ﬂ', 'Ł', 'Œ', 'Š', 'Ÿ', 'Ž', 'ı', 'ł', 'œ', 'š', 'ž',
	})
	t[0xA0] = '€'
	for i := 0xA1; i <= 0xFF; i++ {
		if i != 0xAD {
			t[i] = rune(i)
		}
	}
	return t
}

func standardTable() [256]rune {
	t := asciiTable()
	t[0x27] = '’'
	t[0x60] = '‘'
	high := map[byte]rune{
		0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄', 0xA5: '¥', 0xA6: 'ƒ', 0xA7: '§',
		0xA8: '¤', 0xA9: '\'', 0xAA: '“', 0xAB: '«', 0xAC: '‹', 0xAD: '›', 0xAE: 'ﬁ',
		0xAF: 'ﬂ', 0xB1: '–', 0xB2: '†', 0xB3: '‡', 0xB4: '·', 0xB6: '¶', 0xB7: '•',
		0xB8: '‚', 0xB9: '„', 0xBA: '”', 0xBB: '»', 0xBC: '…', 0xBD: '‰', 0xBF: '¿',
		0xC1: '`', 0xC2: '´', 0xC3: 'ˆ', 0xC4: '˜', 0xC5: '¯', 0xC6: '˘', 0xC7: '˙',
		0xC8: '¨', 0xCA: '˚', 0xCB: '¸', 0xCD: '˝', 0xCE: '˛', 0xCF: 'ˇ', 0xD0: '—',
		0xE1: 'Æ', 0xE3: 'ª', 0xE8: 'Ł', 0xE9: 'Ø', 0xEA: 'Œ', 0xEB: 'º', 0xF1: 'æ',
		0xF5: 'ı', 0xF8: 'ł', 0xF9: 'ø', 0xFA: 'œ', 0xFB: 'ß',
	}
	for b, r := range high {
		t[b] = r
	}
	return t
}

// glyphNameToUnicode covers the Adobe Glyph List names that occur in Latin text fonts
var glyphNameToUnicode = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#', "dollar": '$',
	"percent": '%', "ampersand": '&', "quotesingle": '\'', "parenleft": '(',
	"parenright": ')', "asterisk": '*', "plus": '+', "comma": ',', "hyphen": '-',
	"period": '.', "slash": '/', "zero": '0', "one": '1', "two": '2', "three": '3',
	"four": '4', "five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_', "grave": '`',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',

	"quoteleft": '‘', "quoteright": '’', "quotedblleft": '“', "quotedblright": '”',
	"quotesinglbase": '‚', "quotedblbase": '„', "guilsinglleft": '‹',
	"guilsinglright": '›', "guillemotleft": '«', "guillemotright": '»',
	"bullet": '•', "periodcentered": '·', "ellipsis": '…', "endash": '–',
	"emdash": '—', "minus": '−', "dagger": '†', "daggerdbl": '‡', "perthousand": '‰',
	"trademark": '™', "copyright": '©', "registered": '®', "section": '§',
	"paragraph": '¶', "degree": '°', "plusminus": '±', "multiply": '×',
	"divide": '÷', "fraction": '⁄', "Euro": '€', "cent": '¢', "sterling": '£',
	"yen": '¥', "currency": '¤', "florin": 'ƒ', "brokenbar": '¦',
	"exclamdown": '¡', "questiondown": '¿', "ordfeminine": 'ª', "ordmasculine": 'º',
	"logicalnot": '¬', "mu": 'µ', "onehalf": '½', "onequarter": '¼',
	"threequarters": '¾', "onesuperior": '¹', "twosuperior": '²', "threesuperior": '³',
	"fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ', "ffi": 'ﬃ', "ffl": 'ﬄ', "dotlessi": 'ı',
	"germandbls": 'ß', "nbspace": '\u00A0', "sfthyphen": '\u00AD',
	"acute": '´', "dieresis": '¨', "macron": '¯', "cedilla": '¸', "circumflex": 'ˆ',
	"tilde": '˜', "breve": '˘', "dotaccent": '˙', "ring": '˚', "ogonek": '˛',
	"caron": 'ˇ', "hungarumlaut": '˝',

	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â', "Atilde": 'Ã', "Adieresis": 'Ä',
	"Aring": 'Å', "AE": 'Æ', "Ccedilla": 'Ç', "Egrave": 'È', "Eacute": 'É',
	"Ecircumflex": 'Ê', "Edieresis": 'Ë', "Igrave": 'Ì', "Iacute": 'Í',
	"Icircumflex": 'Î', "Idieresis": 'Ï', "Eth": 'Ð', "Ntilde": 'Ñ', "Ograve": 'Ò',
	"Oacute": 'Ó', "Ocircumflex": 'Ô', "Otilde": 'Õ', "Odieresis": 'Ö', "Oslash": 'Ø',
	"Ugrave": 'Ù', "Uacute": 'Ú', "Ucircumflex": 'Û', "Udieresis": 'Ü', "Yacute": 'Ý',
	"Thorn": 'Þ', "OE": 'Œ', "Scaron": 'Š', "Zcaron": 'Ž', "Ydieresis": 'Ÿ',
	"Lslash": 'Ł',
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â', "atilde": 'ã', "adieresis": 'ä',
	"aring": 'å', "ae": 'æ', "ccedilla": 'ç', "egrave": 'è', "eacute": 'é',
	"ecircumflex": 'ê', "edieresis": 'ë', "igrave": 'ì', "iacute": 'í',
	"icircumflex": 'î', "idieresis": 'ï', "eth": 'ð', "ntilde": 'ñ', "ograve": 'ò',
	"oacute": 'ó', "ocircumflex": 'ô', "otilde": 'õ', "odieresis": 'ö', "oslash": 'ø',
	"ugrave": 'ù', "uacute": 'ú', "ucircumflex": 'û', "udieresis": 'ü', "yacute": 'ý',
	"thorn": 'þ', "ydieresis": 'ÿ', "oe": 'œ', "scaron": 'š', "zcaron": 'ž',
	"lslash": 'ł',
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		glyphNameToUnicode[string(c)] = c
		glyphNameToUnicode[string(c+'a'-'A')] = c + 'a' - 'A'
	}
}
