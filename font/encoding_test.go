package font

import (
	"testing"
	"unicode/utf8"
)

func TestGetEncoding(t *testing.T) {
	tests := []struct {
		name string
		code byte
		want rune
	}{
		{"WinAnsiEncoding", 0x80, '€'},
		{"WinAnsiEncoding", 0x93, '“'},
		{"/WinAnsiEncoding", 'A', 'A'},
		{"MacRomanEncoding", 0x8E, 'é'},
		{"MacRomanEncoding", 0xA5, '•'},
		{"PDFDocEncoding", 0x80, '•'},
		{"PDFDocEncoding", 0xA0, '€'},
		{"PDFDocEncoding", 0x7F, utf8.RuneError},
		{"StandardEncoding", 0x27, '’'},
		{"StandardEncoding", 0xAE, 'ﬁ'},
		{"StandardEncoding", 0xA0, utf8.RuneError},
		{"NoSuchEncoding", 0xE9, 'é'},
	}

	for _, tt := range tests {
		if got := GetEncoding(tt.name).Decode(tt.code); got != tt.want {
			t.Errorf("%s.Decode(0x%02X) = %q, want %q", tt.name, tt.code, got, tt.want)
		}
	}
}

func TestCustomEncoding(t *testing.T) {
	enc := NewCustomEncodingFromGlyphs(WinAnsiEncoding, map[byte]string{
		'a':  "alpha.sc",
		'b':  "uni03B2",
		'c':  "u1F600",
		0x80: "notaglyph",
	})

	if got := enc.DecodeString([]byte("abcd\x80")); got != "aβ😀d€" {
		t.Errorf("DecodeString = %q, want %q", got, "aβ😀d€")
	}
	if enc.Name() != "WinAnsiEncoding+custom" {
		t.Errorf("unexpected name %q", enc.Name())
	}
}

func TestGlyphToUnicode(t *testing.T) {
	tests := []struct {
		glyph string
		want  rune
		ok    bool
	}{
		{"eacute", 'é', true},
		{"A", 'A', true},
		{"z", 'z', true},
		{"fi", 'ﬁ', true},
		{"quotedblleft", '“', true},
		{"uni20AC", '€', true},
		{"u1F600", '😀', true},
		{"one.oldstyle", '1', true},
		{"uniZZZZ", 0, false},
		{"g123", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := GlyphToUnicode(tt.glyph)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GlyphToUnicode(%q) = %q, %v; want %q, %v", tt.glyph, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDecodeUTF16(t *testing.T) {
	if got := DecodeUTF16BE([]byte{0xD8, 0x3D, 0xDE, 0x00, 0x00}); got != "😀" {
		t.Errorf("DecodeUTF16BE = %q", got)
	}
	if got := DecodeUTF16LE([]byte{'h', 0, 'i', 0}); got != "hi" {
		t.Errorf("DecodeUTF16LE = %q", got)
	}
}

func TestDecodeTextString(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("Report"), "Report"},
		{[]byte{0xFE, 0xFF, 0x00, 'J', 0x00, 0xF6}, "Jö"},
		{[]byte{0xEF, 0xBB, 0xBF, 'c', 0xC3, 0xA9}, "cé"},
		{[]byte{'a', 0xA0}, "a€"},
	}
	for _, tt := range tests {
		if got := DecodeTextString(tt.in); got != tt.want {
			t.Errorf("DecodeTextString(% x) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
