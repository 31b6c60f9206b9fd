package semantic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campuskg/scholargraph/internal/embedding"
	"github.com/campuskg/scholargraph/internal/graphstore"
)

// ProgressReporter receives progress updates during index building.
type ProgressReporter interface {
	// OnProgress is called with the current progress.
	OnProgress(current, total int)
}

// ProgressFunc is a function adapter for ProgressReporter.
type ProgressFunc func(current, total int)

// OnProgress implements ProgressReporter.
func (f ProgressFunc) OnProgress(current, total int) {
	f(current, total)
}

// Builder constructs an index snapshot from the documents in the graph store.
type Builder struct {
	provider embedding.Provider
	store    graphstore.Store
	progress ProgressReporter
}

// NewBuilder creates a new index builder.
func NewBuilder(provider embedding.Provider, store graphstore.Store) *Builder {
	return &Builder{
		provider: provider,
		store:    store,
	}
}

// SetProgressReporter sets the progress reporter for the builder.
func (b *Builder) SetProgressReporter(reporter ProgressReporter) {
	b.progress = reporter
}

// Build reads every titled document from the graph store, embeds its text,
// and assembles a snapshot. Documents whose title is empty after trimming
// are skipped and counted. Returns ErrEmptyCorpus when nothing is left to
// index. A graph store failure here aborts the whole build.
func (b *Builder) Build(ctx context.Context) (*Snapshot, *BuildStats, error) {
	startTime := time.Now()

	docs, err := b.store.ListDocuments(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing documents: %w", err)
	}

	stats := &BuildStats{}

	// Assemble the corpus first so positions follow corpus order exactly.
	var (
		texts  []string
		docIDs []string
	)
	meta := make(map[string]DocumentMeta)

	for _, doc := range docs {
		text, ok := corpusText(doc)
		if !ok {
			stats.DocumentsSkipped++
			continue
		}
		texts = append(texts, text)
		docIDs = append(docIDs, doc.ID)
		meta[doc.ID] = DocumentMeta{
			Title:     doc.Title,
			Abstract:  doc.Abstract,
			Year:      doc.Year,
			Citations: doc.CitationCount,
		}
	}

	if len(texts) == 0 {
		stats.Duration = time.Since(startTime)
		return nil, stats, ErrEmptyCorpus
	}

	index := NewIndex(b.provider.Dimensions())
	vectors := make([][]float32, 0, len(texts))

	for i, text := range texts {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		if b.progress != nil {
			b.progress.OnProgress(i+1, len(texts))
		}

		emb, err := b.provider.Embed(ctx, text)
		if err != nil {
			return nil, nil, fmt.Errorf("embedding document %s: %w", docIDs[i], err)
		}
		vectors = append(vectors, embedding.Normalize(emb.Vector))
	}

	if err := index.Add(vectors); err != nil {
		return nil, nil, fmt.Errorf("populating index: %w", err)
	}

	stats.DocumentsIndexed = len(texts)
	stats.Duration = time.Since(startTime)

	return newSnapshot(index, docIDs, meta, b.provider.ModelName(), stats.DocumentsSkipped), stats, nil
}

// corpusText derives the embedding text for a document: the title alone, or
// "{title}. {abstract}" when the trimmed abstract is non-empty. Returns
// false for documents with an empty or whitespace-only title.
func corpusText(doc graphstore.Document) (string, bool) {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		return "", false
	}
	abstract := strings.TrimSpace(doc.Abstract)
	if abstract == "" {
		return title, true
	}
	return title + ". " + abstract, true
}
