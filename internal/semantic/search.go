package semantic

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campuskg/scholargraph/internal/embedding"
	"github.com/campuskg/scholargraph/internal/graphstore"
)

// DefaultTopK is the default number of search results.
const DefaultTopK = 10

// Engine is the retrieval service object. It owns the current index
// snapshot and serializes rebuilds against queries: Rebuild holds the write
// lock for the duration of the build, Search the read lock, so a rebuild
// never overlaps an in-flight query and a query never observes a
// half-replaced snapshot.
type Engine struct {
	provider embedding.Provider
	store    graphstore.Store
	logger   *slog.Logger
	progress ProgressReporter

	mu   sync.RWMutex
	snap *Snapshot
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-hit degradation notices.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProgressReporter sets the progress reporter for rebuilds.
func WithProgressReporter(reporter ProgressReporter) EngineOption {
	return func(e *Engine) {
		e.progress = reporter
	}
}

// NewEngine creates a retrieval engine over the given provider and store.
// The engine starts without an index; call Rebuild or Restore first.
func NewEngine(provider embedding.Provider, store graphstore.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		provider: provider,
		store:    store,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ready reports whether the engine holds a built index.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap != nil
}

// Snapshot returns the current snapshot, or nil before the first build.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Rebuild constructs a fresh snapshot from the graph store and swaps it in
// atomically. On failure the previous snapshot stays in place, except for
// ErrEmptyCorpus where the engine also keeps its previous state.
func (e *Engine) Rebuild(ctx context.Context) (*BuildStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	builder := NewBuilder(e.provider, e.store)
	if e.progress != nil {
		builder.SetProgressReporter(e.progress)
	}

	snap, stats, err := builder.Build(ctx)
	if err != nil {
		if err == ErrEmptyCorpus {
			e.logger.Warn("no documents to index, keeping previous index")
		}
		return stats, err
	}

	e.snap = snap
	return stats, nil
}

// Restore installs a previously persisted snapshot.
func (e *Engine) Restore(snap *Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = snap
}

// Search encodes the query, finds the topK nearest documents, and enriches
// each hit with authors and an affiliation from the graph store. A failed
// author lookup degrades that single hit to empty authors and continues
// with the rest of the batch. Results are ordered by descending similarity,
// ties stable by index position.
//
// Returns ErrIndexNotBuilt with an empty result list when no index has been
// built yet.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.snap == nil {
		return nil, ErrIndexNotBuilt
	}

	emb, err := e.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.snap.index.Search(embedding.Normalize(emb.Vector), topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		docID, ok := e.snap.DocumentID(hit.Position)
		if !ok {
			// Positions outside the mapping are dropped, matching the
			// not-found sentinel filtering of vector index libraries.
			continue
		}

		meta, _ := e.snap.Metadata(docID)
		result := Result{
			DocumentID: docID,
			Title:      meta.Title,
			Abstract:   meta.Abstract,
			Year:       meta.Year,
			Citations:  meta.Citations,
			Similarity: hit.Score,
			Authors:    []string{},
		}

		authors, err := e.store.DocumentAuthors(ctx, docID)
		if err != nil {
			e.logger.Warn("author lookup failed, returning result without authors",
				"document_id", docID, "error", err)
		} else {
			if len(authors.Authors) > 0 {
				result.Authors = authors.Authors
			}
			result.Affiliation = authors.Affiliation
		}

		results = append(results, result)
	}

	return results, nil
}
