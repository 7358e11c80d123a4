package core

import (
	"bytes"
	"compress/zlib"
	"testing"
)

func TestObjectString(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{Null{}, "null"},
		{Bool(true), "true"},
		{Int(-42), "-42"},
		{Real(1.5), "1.5"},
		{Name("Type"), "/Type"},
		{String("hi"), "hi"},
		{Array{Int(1), Name("A"), nil}, "[1 /A null]"},
		{Dict{"Type": Name("Page"), "Count": Int(2)}, "<</Count 2 /Type /Page >>"},
		{IndirectRef{Number: 12}, "12 0 R"},
	}
	for _, tt := range tests {
		if got := tt.obj.String(); got != tt.want {
			t.Errorf("%T String() = %q, want %q", tt.obj, got, tt.want)
		}
	}
}

func TestDictAccessors(t *testing.T) {
	d := Dict{
		"Type":   Name("Font"),
		"Width":  Int(600),
		"Ascent": Real(718.5),
		"Flag":   Bool(true),
		"Title":  String("t"),
		"Kids":   Array{IndirectRef{Number: 3}},
		"Res":    Dict{},
		"Parent": IndirectRef{Number: 2},
	}

	if n, ok := d.GetName("Type"); !ok || n != "Font" {
		t.Errorf("GetName = %v, %v", n, ok)
	}
	if _, ok := d.GetName("Width"); ok {
		t.Error("GetName should reject an integer")
	}
	if v, ok := d.GetNumber("Width"); !ok || v != 600 {
		t.Errorf("GetNumber(Width) = %v, %v", v, ok)
	}
	if v, ok := d.GetNumber("Ascent"); !ok || v != 718.5 {
		t.Errorf("GetNumber(Ascent) = %v, %v", v, ok)
	}
	if _, ok := d.GetInt("Ascent"); ok {
		t.Error("GetInt should reject a real")
	}
	if b, ok := d.GetBool("Flag"); !ok || !bool(b) {
		t.Error("GetBool failed")
	}
	if s, ok := d.GetString("Title"); !ok || s != "t" {
		t.Error("GetString failed")
	}
	if a, ok := d.GetArray("Kids"); !ok || len(a) != 1 {
		t.Error("GetArray failed")
	}
	if _, ok := d.GetDict("Res"); !ok {
		t.Error("GetDict failed")
	}
	if r, ok := d.GetIndirectRef("Parent"); !ok || r.Number != 2 {
		t.Error("GetIndirectRef failed")
	}
	if !d.Has("Res") || d.Has("Missing") || d.Get("Missing") != nil {
		t.Error("Has or Get misreport a missing key")
	}
}

func TestArrayAccessors(t *testing.T) {
	a := Array{Name("Indexed"), Int(255)}
	if n, ok := a.GetName(0); !ok || n != "Indexed" {
		t.Error("GetName(0) failed")
	}
	if i, ok := a.GetInt(1); !ok || i != 255 {
		t.Error("GetInt(1) failed")
	}
	if a.Get(-1) != nil || a.Get(2) != nil {
		t.Error("Get out of range should return nil")
	}
}

func TestNumber(t *testing.T) {
	if v, ok := Number(Int(3)); !ok || v != 3 {
		t.Error("Number(Int) failed")
	}
	if v, ok := Number(Real(-0.5)); !ok || v != -0.5 {
		t.Error("Number(Real) failed")
	}
	if _, ok := Number(Name("3")); ok {
		t.Error("Number(Name) should fail")
	}
	if _, ok := Number(nil); ok {
		t.Error("Number(nil) should fail")
	}
}

func flate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func TestStreamDecode(t *testing.T) {
	content := []byte("q 1 0 0 1 0 0 cm Q")
	hex := []byte("48656C6C6F>")

	tests := []struct {
		name   string
		stream *Stream
		want   []byte
	}{
		{"no filter", &Stream{Dict: Dict{}, Data: content}, content},
		{"null filter", &Stream{Dict: Dict{"Filter": Null{}}, Data: content}, content},
		{"single", &Stream{Dict: Dict{"Filter": Name("FlateDecode")}, Data: flate(t, content)}, content},
		{"chain", &Stream{
			Dict: Dict{"Filter": Array{Name("ASCIIHexDecode")}},
			Data: hex,
		}, []byte("Hello")},
		{"chain with parms array", &Stream{
			Dict: Dict{
				"Filter":      Array{Name("FlateDecode")},
				"DecodeParms": Array{Dict{"Predictor": Int(12), "Columns": Int(3)}},
			},
			Data: flate(t, []byte{0, 1, 2, 3, 2, 1, 1, 1}),
		}, []byte{1, 2, 3, 2, 3, 4}},
		{"image data stays encoded", &Stream{Dict: Dict{"Filter": Name("DCTDecode")}, Data: []byte{0xff, 0xd8}}, []byte{0xff, 0xd8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.stream.Decode()
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStreamDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		dict Dict
	}{
		{"filter is not a name", Dict{"Filter": Array{Int(1)}}},
		{"filter of wrong type", Dict{"Filter": Int(1)}},
		{"unsupported filter", Dict{"Filter": Name("JBIG2Decode")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (&Stream{Dict: tt.dict, Data: []byte("x")}).Decode(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStreamDecoded_Caches(t *testing.T) {
	s := &Stream{Dict: Dict{"Filter": Name("FlateDecode")}, Data: flate(t, []byte("once"))}
	first, err := s.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	s.Data = nil
	second, err := s.Decoded()
	if err != nil || !bytes.Equal(first, second) {
		t.Errorf("Decoded did not reuse the first result: %q, %v", second, err)
	}
}

func TestStreamFilters(t *testing.T) {
	s := &Stream{Dict: Dict{"Filter": Array{Name("A85"), Name("Fl")}}}
	got := s.Filters()
	if len(got) != 2 || got[0] != "A85" || got[1] != "Fl" {
		t.Errorf("Filters() = %v", got)
	}
}
