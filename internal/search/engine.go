// Package search resolves free-text queries to ranked, explained connections.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/config"
	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/keyword"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/ranking"
	"github.com/hyperjump/kue/pkg/utils"
)

// maxLoggedQuery bounds the query text written to debug logs.
const maxLoggedQuery = 120

// Engine runs connection search against the live dataset snapshot.
type Engine struct {
	holder  *dataset.Holder
	hubs    models.Hubs
	ranker  *ranking.Ranker
	config  *config.SearchConfig
	people  keyword.PeopleIndex
	speller *keyword.SpellChecker
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = utils.OrNop(l)
	}
}

// WithClock overrides the clock used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPeopleIndex enables the typo-tolerant fallback. speller may be nil.
func WithPeopleIndex(idx keyword.PeopleIndex, speller *keyword.SpellChecker) Option {
	return func(e *Engine) {
		e.people = idx
		e.speller = speller
	}
}

// NewEngine creates a search engine over holder. The people index, when set,
// is rebuilt after every snapshot swap; call Reindex once for the initial snapshot.
func NewEngine(holder *dataset.Holder, hubs models.Hubs, cfg *config.SearchConfig, opts ...Option) *Engine {
	e := &Engine{
		holder: holder,
		hubs:   hubs,
		ranker: ranking.NewRanker(&cfg.RankingConfig),
		config: cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	holder.OnSwap(func(ds *dataset.Dataset) {
		if err := e.index(context.Background(), ds); err != nil {
			e.logger.Error("failed to rebuild people index", zap.Error(err))
		}
	})
	return e
}

// Reindex rebuilds the people index from the current snapshot.
func (e *Engine) Reindex(ctx context.Context) error {
	return e.index(ctx, e.holder.Current())
}

func (e *Engine) index(ctx context.Context, ds *dataset.Dataset) error {
	if e.people == nil {
		return nil
	}
	if err := e.people.IndexPeople(ctx, ds.People()); err != nil {
		return fmt.Errorf("index people: %w", err)
	}
	if e.speller != nil {
		e.speller.Invalidate()
	}
	e.logger.Debug("people index rebuilt", zap.Int("people", len(ds.People())))
	return nil
}

// Snapshot returns the dataset snapshot queries currently run against.
func (e *Engine) Snapshot() *dataset.Dataset {
	return e.holder.Current()
}

// Hubs returns the configured hub ids.
func (e *Engine) Hubs() models.Hubs {
	return e.hubs
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Search runs connection search and returns ranked, filtered and limited results.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ProcessQuery(query, e.config); err != nil {
		return nil, err
	}

	ds := e.holder.Current()
	now := e.now()
	response := &models.SearchResponse{
		Query:   query.Query,
		Results: []*models.Connection{},
	}

	candidates := Candidates(ds, e.hubs, query.Query)
	if len(candidates) == 0 && query.FuzzyEnabled && query.Normalized() != "" {
		fuzzy, err := e.fuzzyCandidates(ctx, ds, query.Query)
		if err != nil {
			return nil, err
		}
		candidates = fuzzy
		response.Fuzzy = len(fuzzy) > 0
		if e.speller != nil {
			if suggestion, ok := e.speller.SuggestQuery(query.Query); ok {
				response.Suggestion = suggestion
			}
		}
	}

	conns := BuildConnections(ds, e.hubs, e.ranker, now, candidates)
	conns = FilterBySources(ds, e.hubs, conns, query.Sources)

	response.Total = len(conns)
	if len(conns) > query.Limit {
		conns = conns[:query.Limit]
	}
	response.Results = append(response.Results, conns...)
	response.Context, _ = QueryContext(ds, e.hubs, query.Query)
	response.QueryTime = time.Since(startTime).Milliseconds()

	e.logger.Debug("search completed",
		zap.String("query", utils.Truncate(query.Query, maxLoggedQuery)),
		zap.Int("total", response.Total),
		zap.Bool("fuzzy", response.Fuzzy),
		zap.Int64("query_time_ms", response.QueryTime),
	)
	return response, nil
}

// fuzzyCandidates looks query up in the people index, best hit first.
func (e *Engine) fuzzyCandidates(ctx context.Context, ds *dataset.Dataset, query string) ([]models.Person, error) {
	if e.people == nil {
		return nil, nil
	}
	hits, err := e.people.Search(ctx, query, e.config.MaxLimit, &keyword.SearchOptions{
		FuzzyEnabled: true,
		NameBoost:    e.config.FuzzyNameBoost,
	})
	if err != nil {
		return nil, fmt.Errorf("fuzzy people search failed: %w", err)
	}
	people := make([]models.Person, 0, len(hits))
	for _, hit := range hits {
		if e.hubs.IsHub(hit.ID) {
			continue
		}
		if p, ok := ds.Person(hit.ID); ok {
			people = append(people, p)
		}
	}
	return people, nil
}

// QueryContext returns the "results for X" label for query.
func (e *Engine) QueryContext(query string) (string, bool) {
	return QueryContext(e.holder.Current(), e.hubs, query)
}

// Sources counts the people each source contributes.
func (e *Engine) Sources() models.SourceCounts {
	return CountSources(e.holder.Current(), e.hubs)
}
