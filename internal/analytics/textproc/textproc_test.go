package textproc

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Saya SUKA Produk Ini", "saya suka produk ini"},
		{"strips punctuation", "I love this, it's amazing!", "i love this its amazing"},
		{"collapses whitespace", "  a \t b\n\nc  ", "a b c"},
		{"keeps digits", "rating 10 dari 10", "rating 10 dari 10"},
		{"drops non-latin", "产品 bagus", "bagus"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Saya suka produk ini!",
		"  MIXED case,  with   spaces ",
		"already clean text",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanAllFiltersEmpties(t *testing.T) {
	got := CleanAll([]string{"Bagus!", "", "???", "  ", "ok"})
	want := []string{"bagus", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanAll = %v, want %v", got, want)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Produk ini BAGUS sekali!")
	want := []string{"produk", "ini", "bagus", "sekali"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
	if Tokens("") != nil {
		t.Error("Tokens(\"\") should be nil")
	}
}

func TestContentTokensDropsStopwords(t *testing.T) {
	got := ContentTokens("saya suka produk ini dan itu")
	want := []string{"suka", "produk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentTokens = %v, want %v", got, want)
	}
}

func TestStopwords(t *testing.T) {
	for _, w := range []string{"yang", "dan", "the", "and"} {
		if !IsStopword(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	for _, w := range []string{"produk", "bagus", "love"} {
		if IsStopword(w) {
			t.Errorf("did not expect %q to be a stopword", w)
		}
	}
	if len(Stopwords()) == 0 {
		t.Error("Stopwords() returned empty list")
	}
}
