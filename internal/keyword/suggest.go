package keyword

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Suggestion is a dictionary term close to a query term.
type Suggestion struct {
	Term      string // The suggested term
	Distance  int    // Edit distance from the query term
	Frequency int    // Document frequency
}

// SpellChecker suggests corrected queries from an index's term dictionary.
type SpellChecker struct {
	dictionary  TermDictionary
	maxDistance int
	minFreq     int

	mu    sync.RWMutex
	terms map[string]int
	valid bool
}

// SpellCheckerOption is a functional option for configuring SpellChecker.
type SpellCheckerOption func(*SpellChecker)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMinFrequency ignores dictionary terms seen in fewer than f documents.
func WithMinFrequency(f int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if f >= 0 {
			s.minFreq = f
		}
	}
}

// NewSpellChecker creates a new SpellChecker with the given dictionary.
func NewSpellChecker(dict TermDictionary, opts ...SpellCheckerOption) *SpellChecker {
	s := &SpellChecker{
		dictionary:  dict,
		maxDistance: 2,
		minFreq:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invalidate drops the cached dictionary; the next lookup reloads it.
// Call after the index is rebuilt.
func (s *SpellChecker) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}

func (s *SpellChecker) load() (map[string]int, error) {
	s.mu.RLock()
	if s.valid {
		terms := s.terms
		s.mu.RUnlock()
		return terms, nil
	}
	s.mu.RUnlock()

	terms, err := s.dictionary.Terms()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.terms, s.valid = terms, true
	s.mu.Unlock()
	return terms, nil
}

// Suggest returns the best dictionary term for term, preferring the smallest
// distance, then the highest frequency, then alphabetical order.
func (s *SpellChecker) Suggest(term string) (Suggestion, bool) {
	terms, err := s.load()
	if err != nil {
		return Suggestion{}, false
	}
	term = strings.ToLower(term)
	n := utf8.RuneCountInString(term)
	maxDist := termFuzziness(n, s.maxDistance)

	var (
		best  Suggestion
		found bool
	)
	for dictTerm, freq := range terms {
		if freq < s.minFreq || dictTerm == term {
			continue
		}
		diff := utf8.RuneCountInString(dictTerm) - n
		if diff > maxDist || -diff > maxDist {
			continue
		}
		d := EditDistance(term, dictTerm)
		if d > maxDist {
			continue
		}
		cand := Suggestion{Term: dictTerm, Distance: d, Frequency: freq}
		if !found || better(cand, best) {
			best, found = cand, true
		}
	}
	return best, found
}

func better(a, b Suggestion) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.Term < b.Term
}

// SuggestQuery rewrites each unknown query term of at least three runes to
// its best suggestion. It reports false when nothing changed.
func (s *SpellChecker) SuggestQuery(query string) (string, bool) {
	terms, err := s.load()
	if err != nil {
		return query, false
	}

	words := tokenizeQuery(query)
	changed := false
	for i, w := range words {
		if utf8.RuneCountInString(w) < minFuzzyTermLen {
			continue
		}
		if _, ok := terms[w]; ok {
			continue
		}
		if sug, ok := s.Suggest(w); ok {
			words[i] = sug.Term
			changed = true
		}
	}
	if !changed {
		return query, false
	}
	return strings.Join(words, " "), true
}
