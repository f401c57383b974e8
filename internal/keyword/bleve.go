package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	bleveindex "github.com/blevesearch/bleve_index_api"

	"github.com/hyperjump/kue/internal/models"
)

// searchFields are the person fields matched by queries.
var searchFields = []string{"name", "title", "company"}

// minFuzzyTermLen skips short words ("at", "i") that would fuzzy-match almost anything.
const minFuzzyTermLen = 3

// personDoc is the indexed form of a Person.
type personDoc struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// BleveIndex implements PeopleIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An empty path keeps
// the index in memory.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so names match as typed.
	textFieldMapping.Analyzer = standard.Name
	for _, field := range searchFields {
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	im.AddDocumentMapping("person", docMapping)
	im.DefaultType = "person"
	im.DefaultMapping = docMapping

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory Bleve index: %w", err)
		}
		return &BleveIndex{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// IndexPeople replaces the index contents with people in one batch.
func (b *BleveIndex) IndexPeople(ctx context.Context, people []models.Person) error {
	existing, err := b.allIDs()
	if err != nil {
		return err
	}

	batch := b.index.NewBatch()
	keep := make(map[string]struct{}, len(people))
	for _, p := range people {
		keep[p.ID] = struct{}{}
		doc := personDoc{ID: p.ID, Name: p.Name, Title: p.Title, Company: p.Company}
		if err := batch.Index(p.ID, doc); err != nil {
			return fmt.Errorf("failed to index person %s: %w", p.ID, err)
		}
	}
	for _, id := range existing {
		if _, ok := keep[id]; !ok {
			batch.Delete(id)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch: %w", err)
	}
	return nil
}

func (b *BleveIndex) allIDs() ([]string, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get doc count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	req.Size = int(count)
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// Search runs a match (or fuzzy) query across name, title and company and
// returns up to limit person ids, best first.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error) {
	nameBoost := 1.0
	fuzzyEnabled := false
	fuzziness := 2
	if opts != nil {
		if opts.NameBoost > 0 {
			nameBoost = opts.NameBoost
		}
		fuzzyEnabled = opts.FuzzyEnabled
		if opts.Fuzziness > 0 {
			fuzziness = opts.Fuzziness
		}
	}
	if limit <= 0 {
		limit = 10
	}

	fieldQueries := make([]blevequery.Query, 0, len(searchFields))
	for _, field := range searchFields {
		var q blevequery.Query
		if fuzzyEnabled {
			q = buildFuzzyQuery(query, fuzziness, field)
		} else {
			mq := bleve.NewMatchQuery(query)
			mq.SetField(field)
			q = mq
		}
		if q == nil {
			continue
		}
		if bq, ok := q.(blevequery.BoostableQuery); ok && field == "name" && nameBoost != 1.0 {
			bq.SetBoost(nameBoost)
		}
		fieldQueries = append(fieldQueries, q)
	}
	if len(fieldQueries) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(fieldQueries...))
	req.Size = limit
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*KeywordResult, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &KeywordResult{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// tokenizeQuery splits query into lowercase terms, filtering out empty strings.
func tokenizeQuery(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !isWordRune(r)
	})
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			terms = append(terms, w)
		}
	}
	return terms
}

// buildFuzzyQuery creates a disjunction of FuzzyQueries for each usable term
// in the query, restricted to field. It returns nil when no term is long enough.
func buildFuzzyQuery(queryStr string, fuzziness int, field string) blevequery.Query {
	queries := make([]blevequery.Query, 0)
	for _, term := range tokenizeQuery(queryStr) {
		n := utf8.RuneCountInString(term)
		if n < minFuzzyTermLen {
			continue
		}
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(termFuzziness(n, fuzziness))
		fq.SetField(field)
		queries = append(queries, fq)
	}
	switch len(queries) {
	case 0:
		return nil
	case 1:
		return queries[0]
	default:
		// Any term can match (OR semantics)
		return bleve.NewDisjunctionQuery(queries...)
	}
}

// termFuzziness caps the edit distance for short terms.
func termFuzziness(runes, fuzziness int) int {
	if runes <= 4 && fuzziness > 1 {
		return 1
	}
	return fuzziness
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

// DocCount returns the total number of people in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Terms returns every term of the searched fields with its document frequency.
func (b *BleveIndex) Terms() (map[string]int, error) {
	terms := make(map[string]int)
	for _, field := range searchFields {
		dict, err := b.index.FieldDict(field)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s dictionary: %w", field, err)
		}
		if err := addTerms(terms, dict); err != nil {
			return nil, fmt.Errorf("failed to read %s dictionary: %w", field, err)
		}
	}
	return terms, nil
}

// termDict is the part of a Bleve field dictionary that Terms reads.
type termDict interface {
	Next() (*bleveindex.DictEntry, error)
	Close() error
}

// addTerms drains dict into terms and closes it.
func addTerms(terms map[string]int, dict termDict) error {
	defer dict.Close()
	for {
		entry, err := dict.Next()
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		terms[entry.Term] += int(entry.Count)
	}
}
