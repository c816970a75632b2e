package analytics

import (
	"reflect"
	"testing"
)

func TestExtractKeywordsBasic(t *testing.T) {
	texts := []string{
		"Dinner date tonight! Dinner was amazing.",
		"Another dinner, another argument about work.",
	}
	got := ExtractKeywords(texts, 3)
	if len(got) == 0 || got[0] != "dinner" {
		t.Fatalf("keywords = %v, want dinner first", got)
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	texts := []string{"walk park walk coffee park movie coffee walk"}
	first := ExtractKeywords(texts, 5)
	for i := 0; i < 10; i++ {
		if got := ExtractKeywords(texts, 5); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
	// walk x3, 之后 park/coffee 各 2 次按首见顺序
	want := []string{"walk", "park", "coffee", "movie"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("keywords = %v, want %v", first, want)
	}
}

func TestExtractKeywordsFiltersStopwordsAndShortTokens(t *testing.T) {
	texts := []string{"I am so very happy today because the a x yz"}
	got := ExtractKeywords(texts, 10)
	for _, w := range got {
		if _, stop := keywordStopwords[w]; stop {
			t.Fatalf("stopword %q leaked into %v", w, got)
		}
		if len([]rune(w)) < 2 {
			t.Fatalf("short token %q leaked into %v", w, got)
		}
	}
}

func TestExtractKeywordsStripsPunctuation(t *testing.T) {
	got := ExtractKeywords([]string{"anniversary!!! (anniversary)"}, 5)
	if len(got) != 1 || got[0] != "anniversary" {
		t.Fatalf("keywords = %v, want [anniversary]", got)
	}
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	if got := ExtractKeywords(nil, 5); len(got) != 0 {
		t.Fatalf("keywords from nil = %v, want empty", got)
	}
}
