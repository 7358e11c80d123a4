package transform

import (
	"testing"
	"unicode/utf8"
)

func TestSplitWord(t *testing.T) {
	tests := []struct {
		word        string
		wantBold    string
		wantRegular string
	}{
		{"", "", ""},
		{"a", "", "a"},
		{"to", "t", "o"},
		{"the", "t", "he"},
		{"Hello", "He", "llo"},
		{"world", "wo", "rld"},
		{"reading", "rea", "ding"},
		{"naïve", "na", "ïve"},
		{"日本語です", "日本", "語です"},
		{"über", "üb", "er"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			bold, regular := SplitWord(tt.word)
			if bold != tt.wantBold || regular != tt.wantRegular {
				t.Errorf("SplitWord(%q) = (%q, %q), want (%q, %q)",
					tt.word, bold, regular, tt.wantBold, tt.wantRegular)
			}
		})
	}
}

func TestSplitWord_Lengths(t *testing.T) {
	words := []string{"", "x", "ab", "abc", "bionic", "conversion", "ça", "straße", "résumé", "😀😀😀"}

	for _, w := range words {
		bold, regular := SplitWord(w)
		n := utf8.RuneCountInString(w)
		if got := utf8.RuneCountInString(bold) + utf8.RuneCountInString(regular); got != n {
			t.Errorf("%q: parts hold %d runes, want %d", w, got, n)
		}
		if got := utf8.RuneCountInString(bold); got != n/2 {
			t.Errorf("%q: bold part holds %d runes, want %d", w, got, n/2)
		}
		if bold+regular != w {
			t.Errorf("%q: parts do not rebuild the word", w)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("  Hello \t world\n again ")
	want := []string{"Hello", "world", "again"}
	if len(got) != len(want) {
		t.Fatalf("expected %d words, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if len(Words("   ")) != 0 {
		t.Error("expected no words in blank text")
	}
}

type fixedMeasurer struct {
	calls int
}

func (m *fixedMeasurer) StringWidth(text string, size float64, bold bool) float64 {
	m.calls++
	w := float64(utf8.RuneCountInString(text)) * size * 0.5
	if bold {
		w += 1
	}
	return w
}

func TestAdvanceWidth(t *testing.T) {
	m := &fixedMeasurer{}

	if got := AdvanceWidth(m, "He", 12, true); got != 13 {
		t.Errorf("expected 13, got %v", got)
	}
	if got := AdvanceWidth(m, "llo", 12, false); got != 18 {
		t.Errorf("expected 18, got %v", got)
	}
	if got := AdvanceWidth(m, "", 12, true); got != 0 {
		t.Errorf("expected 0 for empty text, got %v", got)
	}
	if m.calls != 2 {
		t.Errorf("expected empty text not to be measured, got %d calls", m.calls)
	}
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"prose", ProseSpacing(12), 2.4},
		{"list", ListSpacing(10), 3},
		{"table", TableCellGap, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := tt.got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}
