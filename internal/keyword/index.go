// Package keyword provides the typo-tolerant people index used when a query
// matches nobody exactly, and the spelling suggester built on its terms.
package keyword

import (
	"context"

	"github.com/hyperjump/kue/internal/models"
)

// SearchOptions optional parameters for people search. Nil means use defaults.
type SearchOptions struct {
	// NameBoost multiplies the score contribution from matches in the name field.
	// Values > 1 make name matches rank above title/company matches. Use 1.0 for no boost.
	NameBoost float64
	// FuzzyEnabled enables fuzzy matching for typo tolerance.
	FuzzyEnabled bool
	// Fuzziness is the maximum Levenshtein edit distance for fuzzy matching (1 or 2).
	// Default is 2 when FuzzyEnabled is true. Terms of four runes or fewer use at most 1.
	Fuzziness int
}

// PeopleIndex defines people search operations.
type PeopleIndex interface {
	// IndexPeople replaces the indexed people with people.
	IndexPeople(ctx context.Context, people []models.Person) error
	Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error)
	Close() error
	// DocCount returns the total number of people in the index.
	DocCount() (uint64, error)
}

// KeywordResult is a single people search hit; ID is the person id.
type KeywordResult struct {
	ID    string
	Score float64
}

// TermDictionary provides access to the term dictionary for spelling suggestions.
type TermDictionary interface {
	// Terms returns every indexed term with its document frequency.
	Terms() (map[string]int, error)
}
