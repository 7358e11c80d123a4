package contentstream

import (
	"reflect"
	"testing"

	"github.com/tsawler/bionic/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Operation
	}{
		{"empty", "", nil},
		{"comment only", "% nothing here\n", nil},
		{"no operands", "q Q", []Operation{{Operator: "q"}, {Operator: "Q"}}},
		{"numbers", "1 0 0 -1 +2.5 .5 cm", []Operation{{Operator: "cm", Operands: []core.Object{
			core.Int(1), core.Int(0), core.Int(0), core.Int(-1), core.Real(2.5), core.Real(0.5),
		}}}},
		{"malformed number reads as zero", "--3 w", []Operation{{Operator: "w", Operands: []core.Object{core.Int(0)}}}},
		{"text block", "BT /F1 12 Tf (Hi) Tj ET", []Operation{
			{Operator: "BT"},
			{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Int(12)}},
			{Operator: "Tj", Operands: []core.Object{core.String("Hi")}},
			{Operator: "ET"},
		}},
		{"no space before delimiters", "BT/F1 9 Tf[(A)-20(B)]TJ ET", []Operation{
			{Operator: "BT"},
			{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Int(9)}},
			{Operator: "TJ", Operands: []core.Object{core.Array{core.String("A"), core.Int(-20), core.String("B")}}},
			{Operator: "ET"},
		}},
		{"quote operators", "(a) ' 1 2 (b) \"", []Operation{
			{Operator: "'", Operands: []core.Object{core.String("a")}},
			{Operator: "\"", Operands: []core.Object{core.Int(1), core.Int(2), core.String("b")}},
		}},
		{"star and digit operators", "T* 0 0 d0 f*", []Operation{
			{Operator: "T*"},
			{Operator: "d0", Operands: []core.Object{core.Int(0), core.Int(0)}},
			{Operator: "f*"},
		}},
		{"comment between operands", "1 % one\n2 m", []Operation{
			{Operator: "m", Operands: []core.Object{core.Int(1), core.Int(2)}},
		}},
		{"marked content dictionary", "/Span <</ActualText (x) /MCID 3>> BDC EMC", []Operation{
			{Operator: "BDC", Operands: []core.Object{core.Name("Span"), core.Dict{"ActualText": core.String("x"), "MCID": core.Int(3)}}},
			{Operator: "EMC"},
		}},
		{"booleans and null", "true false null sh", []Operation{
			{Operator: "sh", Operands: []core.Object{core.Bool(true), core.Bool(false), core.Null{}}},
		}},
		{"trailing operands dropped", "q 1 2", []Operation{{Operator: "q"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser([]byte(tt.input)).Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestParse_Strings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(plain)`, "plain"},
		{`(nested (parens) ok)`, "nested (parens) ok"},
		{`(esc \( \) \\ \n\t)`, "esc ( ) \\ \n\t"},
		{`(\101\102C)`, "ABC"},
		{`(\0053)`, "\x053"},
		{"(line \\\ncontinued)", "line continued"},
		{"(line \\\r\ncontinued)", "line continued"},
		{`(unknown \q escape)`, "unknown q escape"},
		{`<48656C6C6F>`, "Hello"},
		{`<48 65 6c>`, "Hel"},
		{`<4>`, "@"},
		{`<>`, ""},
	}

	for _, tt := range tests {
		ops, err := NewParser([]byte(tt.input + " Tj")).Parse()
		if err != nil {
			t.Errorf("%s: Parse failed: %v", tt.input, err)
			continue
		}
		if len(ops) != 1 || len(ops[0].Operands) != 1 {
			t.Errorf("%s: got %v", tt.input, ops)
			continue
		}
		if got := ops[0].Operands[0]; got != core.String(tt.want) {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParse_Names(t *testing.T) {
	tests := map[string]string{
		"/F1":             "F1",
		"/A#20B":          "A B",
		"/Bad#zz":         "Bad#zz",
		"/Trailing#4":     "Trailing#4",
		"/":               "",
		"/Name#2Fslashes": "Name/slashes",
	}
	for input, want := range tests {
		ops, err := NewParser([]byte(input + " gs")).Parse()
		if err != nil {
			t.Errorf("%s: Parse failed: %v", input, err)
			continue
		}
		if got := ops[0].Operands[0]; got != core.Name(want) {
			t.Errorf("%s: got %q, want %q", input, got, want)
		}
	}
}

func TestParse_InlineImage(t *testing.T) {
	data := "q BI /W 2 /H 1 /CS /G /BPC 8 /IM false /F [/AHx] ID \x00\xffEIx\nEI Q"
	ops, err := NewParser([]byte(data)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 3 || ops[1].Operator != "BI" {
		t.Fatalf("got %#v", ops)
	}

	dict := ops[1].Operands[0].(core.Dict)
	want := core.Dict{
		"W": core.Int(2), "H": core.Int(1), "CS": core.Name("G"), "BPC": core.Int(8),
		"IM": core.Bool(false), "F": core.Array{core.Name("AHx")},
	}
	if !reflect.DeepEqual(dict, want) {
		t.Errorf("dict = %v, want %v", dict, want)
	}
	if got := ops[1].Operands[1]; got != core.String("\x00\xffEIx") {
		t.Errorf("data = %q", got)
	}
	if ops[2].Operator != "Q" {
		t.Errorf("expected Q after the image, got %s", ops[2].Operator)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"(unclosed Tj",
		"<4G> Tj",
		"<41 Tj",
		"[1 2 TJ",
		"<< /A 1 ",
		"<< 1 2 >> BDC",
		"] Tj",
		"BI /W 1 ID data without end",
		"BI /W 1",
		"BI W 1 ID x EI",
	}
	for _, input := range tests {
		if _, err := NewParser([]byte(input)).Parse(); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}
