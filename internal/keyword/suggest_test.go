package keyword

import (
	"errors"
	"testing"
)

type mockTermDictionary struct {
	terms map[string]int
	err   error
	calls int
}

func (m *mockTermDictionary) Terms() (map[string]int, error) {
	m.calls++
	return m.terms, m.err
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"stripe", "stripe", 0},
		{"strpe", "stripe", 1},
		{"kitten", "sitting", 3},
		{"stirpe", "stripe", 1},
		{"müller", "muller", 1},
		{"ca", "abc", 3},
	}

	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpellChecker_Suggest(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{
		"stripe": 2, "strike": 1, "notion": 20, "linear": 2,
	}}
	s := NewSpellChecker(dict)

	tests := []struct {
		term   string
		want   string
		wantOK bool
	}{
		{"strpe", "stripe", true},
		{"notoin", "notion", true},
		{"lnear", "linear", true},
		{"zzzzzz", "", false},
	}

	for _, tt := range tests {
		got, ok := s.Suggest(tt.term)
		if ok != tt.wantOK {
			t.Errorf("Suggest(%q) ok = %v, want %v", tt.term, ok, tt.wantOK)
			continue
		}
		if ok && got.Term != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.term, got.Term, tt.want)
		}
	}

	if dict.calls != 1 {
		t.Errorf("dictionary loaded %d times, want 1", dict.calls)
	}
}

func TestSpellChecker_Suggest_PrefersFrequency(t *testing.T) {
	s := NewSpellChecker(&mockTermDictionary{terms: map[string]int{"kim": 1, "tim": 5}})

	got, ok := s.Suggest("jim")
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if got.Term != "tim" {
		t.Errorf("Suggest(jim) = %q, want tim", got.Term)
	}
}

func TestSpellChecker_Suggest_ShortTermsUseDistanceOne(t *testing.T) {
	s := NewSpellChecker(&mockTermDictionary{terms: map[string]int{"sara": 1}})

	if _, ok := s.Suggest("soro"); ok {
		t.Error("expected no suggestion two edits away for a four-rune term")
	}
}

func TestSpellChecker_SuggestQuery(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{"stripe": 2, "who": 1}}
	s := NewSpellChecker(dict)

	got, ok := s.SuggestQuery("Who do I know at Strpe?")
	if !ok {
		t.Fatal("expected a corrected query")
	}
	if got != "who do i know at stripe" {
		t.Errorf("SuggestQuery = %q", got)
	}

	if _, ok := s.SuggestQuery("stripe"); ok {
		t.Error("expected no correction for a known term")
	}
}

func TestSpellChecker_Invalidate(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{"stripe": 1}}
	s := NewSpellChecker(dict)

	s.Suggest("strpe")
	s.Invalidate()
	s.Suggest("strpe")

	if dict.calls != 2 {
		t.Errorf("dictionary loaded %d times, want 2", dict.calls)
	}
}

func TestSpellChecker_DictionaryError(t *testing.T) {
	s := NewSpellChecker(&mockTermDictionary{err: errors.New("mock error")})

	if _, ok := s.Suggest("strpe"); ok {
		t.Error("expected no suggestion when the dictionary fails")
	}
	if got, ok := s.SuggestQuery("strpe"); ok || got != "strpe" {
		t.Errorf("SuggestQuery = %q, %v; want original query", got, ok)
	}
}
