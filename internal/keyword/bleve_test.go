package keyword

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	bleveindex "github.com/blevesearch/bleve_index_api"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
)

func newFixtureIndex(t *testing.T, path string) *BleveIndex {
	t.Helper()
	idx, err := NewBleveIndex(path)
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() {
		_ = idx.Close()
	})
	if err := idx.IndexPeople(context.Background(), dataset.Fixture().People()); err != nil {
		t.Fatalf("IndexPeople: %v", err)
	}
	return idx
}

func TestBleveIndex_SearchExact(t *testing.T) {
	idx := newFixtureIndex(t, "")

	results, err := idx.Search(context.Background(), "Rachel", 10, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected a result for \"Rachel\"")
	}
	if results[0].ID != "p-10" {
		t.Errorf("first result ID = %q, want p-10", results[0].ID)
	}
}

func TestBleveIndex_SearchFuzzy(t *testing.T) {
	idx := newFixtureIndex(t, "")
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"misspelled first name", "Rachl", "p-10"},
		{"misspelled last name", "Torress", "p-8"},
		{"misspelled company", "Vercell", "p-6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact, err := idx.Search(ctx, tt.query, 10, nil)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(exact) != 0 {
				t.Errorf("expected no exact hits for %q, got %d", tt.query, len(exact))
			}

			results, err := idx.Search(ctx, tt.query, 10, &SearchOptions{FuzzyEnabled: true, NameBoost: 2})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(results) == 0 {
				t.Fatalf("expected fuzzy hits for %q", tt.query)
			}
			if results[0].ID != tt.want {
				t.Errorf("first result ID = %q, want %q", results[0].ID, tt.want)
			}
		})
	}
}

func TestBleveIndex_FuzzySkipsShortTerms(t *testing.T) {
	idx := newFixtureIndex(t, "")

	results, err := idx.Search(context.Background(), "at", 10, &SearchOptions{FuzzyEnabled: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no hits for a short term, got %d", len(results))
	}
}

func TestBleveIndex_IndexPeopleReplaces(t *testing.T) {
	idx := newFixtureIndex(t, "")
	ctx := context.Background()

	people := []models.Person{{ID: "x-1", Name: "Grace Hopper", Title: "Admiral", Company: "Navy"}}
	if err := idx.IndexPeople(ctx, people); err != nil {
		t.Fatalf("IndexPeople: %v", err)
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 1 {
		t.Errorf("DocCount = %d, want 1", count)
	}

	results, err := idx.Search(ctx, "Rachel", 10, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected replaced people to be gone, got %d hits", len(results))
	}
}

func TestNewBleveIndex_OnDisk(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "people")

	idx, err := NewBleveIndex(indexPath)
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	if err := idx.IndexPeople(context.Background(), dataset.Fixture().People()); err != nil {
		t.Fatalf("IndexPeople: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(indexPath); err != nil {
		t.Fatalf("index directory should exist: %v", err)
	}

	// Reopen the existing index.
	idx2, err := NewBleveIndex(indexPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx2.Close()

	count, err := idx2.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 31 {
		t.Errorf("DocCount = %d, want 31", count)
	}
}

func TestBleveIndex_Terms(t *testing.T) {
	idx := newFixtureIndex(t, "")

	terms, err := idx.Terms()
	if err != nil {
		t.Fatalf("Terms: %v", err)
	}
	if terms["stripe"] != 2 {
		t.Errorf("terms[stripe] = %d, want 2", terms["stripe"])
	}
	if terms["rachel"] != 1 {
		t.Errorf("terms[rachel] = %d, want 1", terms["rachel"])
	}
}

// brokenDict yields its entries and then fails.
type brokenDict struct {
	entries []*bleveindex.DictEntry
	err     error
	closed  bool
}

func (d *brokenDict) Next() (*bleveindex.DictEntry, error) {
	if len(d.entries) == 0 {
		return nil, d.err
	}
	e := d.entries[0]
	d.entries = d.entries[1:]
	return e, nil
}

func (d *brokenDict) Close() error {
	d.closed = true
	return nil
}

func TestAddTerms_ReturnsDictionaryError(t *testing.T) {
	readErr := errors.New("segment read failed")
	dict := &brokenDict{entries: []*bleveindex.DictEntry{{Term: "stripe", Count: 2}}, err: readErr}
	terms := make(map[string]int)
	if err := addTerms(terms, dict); !errors.Is(err, readErr) {
		t.Fatalf("addTerms error = %v, want %v", err, readErr)
	}
	if !dict.closed {
		t.Error("dictionary should be closed after an error")
	}
	if terms["stripe"] != 2 {
		t.Errorf("terms[stripe] = %d, want 2", terms["stripe"])
	}
}
