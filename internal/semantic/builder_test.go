package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskg/scholargraph/internal/graphstore"
)

func TestCorpusText(t *testing.T) {
	tests := []struct {
		name     string
		doc      graphstore.Document
		expected string
		ok       bool
	}{
		{
			name:     "title and abstract",
			doc:      graphstore.Document{Title: "A Title", Abstract: "An abstract."},
			expected: "A Title. An abstract.",
			ok:       true,
		},
		{
			name:     "title only",
			doc:      graphstore.Document{Title: "A Title"},
			expected: "A Title",
			ok:       true,
		},
		{
			name:     "whitespace abstract treated as absent",
			doc:      graphstore.Document{Title: "A Title", Abstract: "   \n\t "},
			expected: "A Title",
			ok:       true,
		},
		{
			name: "empty title skipped",
			doc:  graphstore.Document{Title: "", Abstract: "Orphan abstract"},
			ok:   false,
		},
		{
			name: "whitespace title skipped",
			doc:  graphstore.Document{Title: "   "},
			ok:   false,
		},
		{
			name:     "title trimmed",
			doc:      graphstore.Document{Title: "  Padded  "},
			expected: "Padded",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := corpusText(tt.doc)
			if ok != tt.ok {
				t.Fatalf("corpusText() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("corpusText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	store := newFakeStore()
	store.docs = []graphstore.Document{
		{ID: "doc1", Title: "Deep learning for cancer detection", Abstract: "Abstract about CT scans", Year: 2023, CitationCount: 10},
		{ID: "doc2", Title: "", Abstract: "No title here"},
		{ID: "doc3", Title: "Graph databases in practice", Year: 2020, CitationCount: 4},
	}

	builder := NewBuilder(newFakeProvider(), store)
	snap, stats, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if stats.DocumentsIndexed != 2 {
		t.Errorf("DocumentsIndexed = %d, want 2", stats.DocumentsIndexed)
	}
	if stats.DocumentsSkipped != 1 {
		t.Errorf("DocumentsSkipped = %d, want 1", stats.DocumentsSkipped)
	}
	if snap.Len() != 2 {
		t.Errorf("snapshot Len() = %d, want 2", snap.Len())
	}

	meta, ok := snap.Metadata("doc1")
	if !ok {
		t.Fatal("doc1 metadata missing")
	}
	if meta.Title != "Deep learning for cancer detection" || meta.Year != 2023 || meta.Citations != 10 {
		t.Errorf("doc1 metadata = %+v", meta)
	}
}

func TestBuilder_Build_MappingsAreInverses(t *testing.T) {
	store := newFakeStore()
	store.docs = []graphstore.Document{
		{ID: "a", Title: "First paper"},
		{ID: "b", Title: "Second paper"},
		{ID: "c", Title: "Third paper"},
	}

	builder := NewBuilder(newFakeProvider(), store)
	snap, _, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for pos := 0; pos < snap.Len(); pos++ {
		id, ok := snap.DocumentID(pos)
		if !ok {
			t.Fatalf("no document at position %d", pos)
		}
		back, ok := snap.Position(id)
		if !ok {
			t.Fatalf("no position for document %s", id)
		}
		if back != pos {
			t.Errorf("Position(DocumentID(%d)) = %d, want %d", pos, back, pos)
		}
	}

	for _, doc := range store.docs {
		pos, ok := snap.Position(doc.ID)
		if !ok {
			t.Fatalf("no position for document %s", doc.ID)
		}
		id, ok := snap.DocumentID(pos)
		if !ok || id != doc.ID {
			t.Errorf("DocumentID(Position(%s)) = %s", doc.ID, id)
		}
	}
}

func TestBuilder_Build_EmptyCorpus(t *testing.T) {
	store := newFakeStore()
	store.docs = []graphstore.Document{
		{ID: "doc1", Title: "   "},
	}

	builder := NewBuilder(newFakeProvider(), store)
	snap, stats, err := builder.Build(context.Background())
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Build() error = %v, want ErrEmptyCorpus", err)
	}
	if snap != nil {
		t.Error("no snapshot expected for empty corpus")
	}
	if stats == nil || stats.DocumentsSkipped != 1 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
}

func TestBuilder_Build_StoreFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection reset")

	builder := NewBuilder(newFakeProvider(), store)
	if _, _, err := builder.Build(context.Background()); err == nil {
		t.Error("expected error when the graph store fails")
	}
}

func TestBuilder_Build_ReportsProgress(t *testing.T) {
	store := newFakeStore()
	store.docs = []graphstore.Document{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	}

	var calls int
	builder := NewBuilder(newFakeProvider(), store)
	builder.SetProgressReporter(ProgressFunc(func(current, total int) {
		calls++
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	}))

	if _, _, err := builder.Build(context.Background()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
}
