package font

import (
	"testing"
)

func TestNewFont(t *testing.T) {
	f := NewFont("F1", "Helvetica", "Type1")
	if f.Name != "F1" || f.BaseFont != "Helvetica" || f.Subtype != "Type1" {
		t.Errorf("unexpected font %+v", f)
	}
	if f.Encoding != "WinAnsiEncoding" {
		t.Errorf("expected WinAnsiEncoding, got %s", f.Encoding)
	}
	if !f.IsStandardFont() {
		t.Error("expected Helvetica to be a standard font")
	}
	if NewFont("F2", "Calibri", "TrueType").IsStandardFont() {
		t.Error("Calibri is not a standard font")
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		base   string
		text   string
		width  float64
		codes  int
		spaces int
	}{
		{"Helvetica", "Hi", 722 + 222, 2, 0},
		{"Helvetica", "a b", 556 + 278 + 556, 3, 1},
		{"Helvetica-Bold", "Hi", 722 + 278, 2, 0},
		{"Times-Roman", "Hi", 722 + 278, 2, 0},
		{"Times-BoldItalic", "W", 1000, 1, 0},
		{"Courier", "iii", 1800, 3, 0},
		{"ABCDEF+ArialMT", "A", 667, 1, 0},
		{"Unknown-Sans", "A", 667, 1, 0},
		{"Helvetica", "\xe9", 500, 1, 0},
		{"Helvetica", "", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.base+"/"+tt.text, func(t *testing.T) {
			width, codes, spaces := NewFont("F1", tt.base, "Type1").Measure([]byte(tt.text))
			if width != tt.width || codes != tt.codes || spaces != tt.spaces {
				t.Errorf("Measure(%q) = %v, %d, %d; want %v, %d, %d",
					tt.text, width, codes, spaces, tt.width, tt.codes, tt.spaces)
			}
		})
	}
}

func TestMeasure_Composite(t *testing.T) {
	f := NewFont("F1", "Ryumin", "Type0")
	f.composite = true
	f.defaultWidth = 1000
	f.widths[0x0102] = 250

	width, codes, spaces := f.Measure([]byte{0x01, 0x02, 0x00, 0x20, 0x05})
	if width != 1250 || codes != 2 || spaces != 0 {
		t.Errorf("Measure = %v, %d, %d; want 1250, 2, 0", width, codes, spaces)
	}
}

func TestDecodeString(t *testing.T) {
	composite := NewFont("F2", "Ryumin", "Type0")
	composite.composite = true

	tests := []struct {
		name string
		font *Font
		data []byte
		want string
	}{
		{"winansi", NewFont("F1", "Helvetica", "Type1"), []byte("caf\xe9 \x80"), "café €"},
		{"utf16 be bom", NewFont("F1", "Helvetica", "Type1"), []byte{0xFE, 0xFF, 0x00, 'O', 0x00, 'K'}, "OK"},
		{"utf16 le bom", NewFont("F1", "Helvetica", "Type1"), []byte{0xFF, 0xFE, 'O', 0x00, 'K', 0x00}, "OK"},
		{"nfc", NewFont("F1", "Helvetica", "Type1"), []byte{0xFE, 0xFF, 0x00, 'e', 0x03, 0x01}, "é"},
		{"composite without cmap", composite, []byte{0x65, 0xE5, 0x67, 0x2C}, "日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.font.DecodeString(tt.data); got != tt.want {
				t.Errorf("DecodeString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeString_ToUnicodeWins(t *testing.T) {
	cm, err := ParseCMap([]byte("1 beginbfchar <69> <0057> endbfchar"))
	if err != nil {
		t.Fatalf("ParseCMap failed: %v", err)
	}
	f := NewFont("F1", "Helvetica", "Type1")
	f.ToUnicodeCMap = cm

	if got := f.DecodeString([]byte("iC")); got != "WC" {
		t.Errorf("DecodeString = %q, want %q", got, "WC")
	}
	// widths follow the decoded rune
	if w, _, _ := f.Measure([]byte("i")); w != 944 {
		t.Errorf("width of i shown as W = %v, want 944", w)
	}
}

func TestFamilyName(t *testing.T) {
	tests := map[string]string{
		"ABCDEF+Calibri-Bold": "Calibri-Bold",
		"Calibri":             "Calibri",
		"abcdef+Calibri":      "abcdef+Calibri",
		"ABCDE+X":             "ABCDE+X",
		"":                    "",
	}
	for base, want := range tests {
		if got := NewFont("F1", base, "TrueType").FamilyName(); got != want {
			t.Errorf("FamilyName(%q) = %q, want %q", base, got, want)
		}
		if got := Family(base); got != want {
			t.Errorf("Family(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		base       string
		descriptor *FontDescriptor
		bold       bool
		italic     bool
		serif      bool
		mono       bool
	}{
		{base: "Helvetica"},
		{base: "Helvetica-BoldOblique", bold: true, italic: true},
		{base: "Times-Italic", italic: true, serif: true},
		{base: "Courier-Bold", bold: true, mono: true},
		{base: "ABCDEF+SourceSerif-Semibold", bold: true, serif: true},
		{base: "NotoSans-Regular"},
		{base: "Plain", descriptor: &FontDescriptor{Flags: FlagForceBold | FlagSerif}, bold: true, serif: true},
		{base: "Plain", descriptor: &FontDescriptor{FontWeight: 700}, bold: true},
		{base: "Plain", descriptor: &FontDescriptor{ItalicAngle: -12}, italic: true},
		{base: "Plain", descriptor: &FontDescriptor{Flags: FlagFixedPitch}, mono: true},
		{base: "Times-Roman", descriptor: &FontDescriptor{}},
	}

	for _, tt := range tests {
		f := NewFont("F1", tt.base, "Type1")
		f.Descriptor = tt.descriptor
		if f.IsBold() != tt.bold || f.IsItalic() != tt.italic || f.IsSerif() != tt.serif || f.IsMonospaced() != tt.mono {
			t.Errorf("%s %+v: bold=%v italic=%v serif=%v mono=%v", tt.base, tt.descriptor,
				f.IsBold(), f.IsItalic(), f.IsSerif(), f.IsMonospaced())
		}
	}
}

func TestIsVertical(t *testing.T) {
	f := NewFont("F1", "Ryumin", "Type0")
	f.composite = true
	f.Encoding = "Identity-V"
	if !f.IsVertical() {
		t.Error("expected Identity-V to be vertical")
	}
	f.Encoding = "UniJIS-UCS2-H"
	if f.IsVertical() {
		t.Error("expected -H CMap to be horizontal")
	}
	if NewFont("F2", "Helvetica", "Type1").IsVertical() {
		t.Error("simple fonts are horizontal")
	}
}
