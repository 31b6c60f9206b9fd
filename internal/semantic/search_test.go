package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskg/scholargraph/internal/graphstore"
)

func medicalCorpus() *fakeStore {
	store := newFakeStore()
	store.docs = []graphstore.Document{
		{ID: "doc1", Title: "Deep learning for cancer detection", Abstract: "Abstract about CT scans", Year: 2023, CitationCount: 10},
		{ID: "doc2", Title: "Transformer models for protein folding", Abstract: "Structure prediction with attention", Year: 2021, CitationCount: 50},
		{ID: "doc3", Title: "Medieval trade routes of the Hanseatic league", Year: 1998, CitationCount: 3},
	}
	store.authors["doc1"] = graphstore.DocumentAuthors{
		Authors:     []string{"Smith J.", "Jones A."},
		Affiliation: "University of Birmingham",
	}
	store.authors["doc2"] = graphstore.DocumentAuthors{
		Authors: []string{"Chen L."},
	}
	return store
}

func builtEngine(t *testing.T, store *fakeStore) *Engine {
	t.Helper()
	engine := NewEngine(newFakeProvider(), store)
	if _, err := engine.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return engine
}

func TestEngine_Search_BeforeBuild(t *testing.T) {
	engine := NewEngine(newFakeProvider(), newFakeStore())

	results, err := engine.Search(context.Background(), "anything", 5)
	if !errors.Is(err, ErrIndexNotBuilt) {
		t.Errorf("Search() error = %v, want ErrIndexNotBuilt", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestEngine_Search_RelevanceAndOrder(t *testing.T) {
	engine := builtEngine(t, medicalCorpus())

	results, err := engine.Search(context.Background(), "cancer detection", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].DocumentID != "doc1" {
		t.Errorf("top result = %s, want doc1", results[0].DocumentID)
	}
	if results[0].Similarity <= 0.3 {
		t.Errorf("same-topic similarity = %v, want > 0.3", results[0].Similarity)
	}

	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not sorted by similarity at %d", i)
		}
	}
	for _, r := range results {
		if r.Similarity < -1.0001 || r.Similarity > 1.0001 {
			t.Errorf("similarity %v outside [-1, 1]", r.Similarity)
		}
	}
}

func TestEngine_Search_EnrichesAuthors(t *testing.T) {
	engine := builtEngine(t, medicalCorpus())

	results, err := engine.Search(context.Background(), "cancer detection", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if len(r.Authors) != 2 || r.Authors[0] != "Smith J." {
		t.Errorf("authors = %v, want [Smith J. Jones A.]", r.Authors)
	}
	if r.Affiliation != "University of Birmingham" {
		t.Errorf("affiliation = %q", r.Affiliation)
	}
	if r.Title != "Deep learning for cancer detection" || r.Year != 2023 || r.Citations != 10 {
		t.Errorf("cached metadata not copied: %+v", r)
	}
}

func TestEngine_Search_AuthorLookupFailureIsIsolated(t *testing.T) {
	store := medicalCorpus()
	store.authorErr["doc1"] = errors.New("session expired")
	engine := builtEngine(t, store)

	results, err := engine.Search(context.Background(), "cancer detection", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (batch must continue)", len(results))
	}

	// The failed hit degrades to empty authors and absent affiliation
	if results[0].DocumentID != "doc1" {
		t.Fatalf("top result = %s, want doc1", results[0].DocumentID)
	}
	if len(results[0].Authors) != 0 {
		t.Errorf("degraded hit authors = %v, want empty", results[0].Authors)
	}
	if results[0].Affiliation != "" {
		t.Errorf("degraded hit affiliation = %q, want empty", results[0].Affiliation)
	}

	// Other hits keep their enrichment
	for _, r := range results[1:] {
		if r.DocumentID == "doc2" && len(r.Authors) != 1 {
			t.Errorf("doc2 authors = %v, want [Chen L.]", r.Authors)
		}
	}
}

func TestEngine_Search_DefaultTopK(t *testing.T) {
	engine := builtEngine(t, medicalCorpus())

	results, err := engine.Search(context.Background(), "learning", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// Corpus smaller than DefaultTopK: all documents returned
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestEngine_Search_LimitRespected(t *testing.T) {
	engine := builtEngine(t, medicalCorpus())

	results, err := engine.Search(context.Background(), "learning", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestEngine_Rebuild_ReplacesIndex(t *testing.T) {
	store := medicalCorpus()
	engine := builtEngine(t, store)

	// Replace the corpus and rebuild: old mappings must be gone
	store.docs = []graphstore.Document{
		{ID: "new1", Title: "Quantum error correction"},
	}
	if _, err := engine.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	results, err := engine.Search(context.Background(), "quantum error correction", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].DocumentID != "new1" {
		t.Errorf("results = %+v, want only new1", results)
	}
}

func TestEngine_Rebuild_EmptyCorpusKeepsPreviousIndex(t *testing.T) {
	store := medicalCorpus()
	engine := builtEngine(t, store)

	store.docs = nil
	if _, err := engine.Rebuild(context.Background()); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("Rebuild() error = %v, want ErrEmptyCorpus", err)
	}

	// Previous index still answers
	results, err := engine.Search(context.Background(), "cancer detection", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1 from the previous index", len(results))
	}
}

func TestEngine_SearchDeterministic(t *testing.T) {
	engine := builtEngine(t, medicalCorpus())

	first, err := engine.Search(context.Background(), "cancer detection", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := engine.Search(context.Background(), "cancer detection", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	for i := range first {
		if first[i].DocumentID != second[i].DocumentID || first[i].Similarity != second[i].Similarity {
			t.Errorf("search not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
