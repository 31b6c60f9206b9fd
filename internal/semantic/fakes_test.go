package semantic

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/campuskg/scholargraph/internal/embedding"
	"github.com/campuskg/scholargraph/internal/graphstore"
)

// fakeProvider is a deterministic bag-of-tokens embedder: each token bumps
// one dimension chosen by hashing. Texts sharing tokens get correlated
// vectors, so same-topic text scores well above unrelated text.
type fakeProvider struct {
	dims int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{dims: 256}
}

func (p *fakeProvider) Embed(ctx context.Context, text string) (embedding.Embedding, error) {
	vec := make([]float32, p.dims)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?()\"'")
		if token == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(p.dims)]++
	}
	return embedding.Embedding{Vector: vec}, nil
}

func (p *fakeProvider) ModelName() string { return "fake-tokens" }
func (p *fakeProvider) Dimensions() int   { return p.dims }

// fakeStore is an in-memory graphstore.Store with per-document error
// injection for author lookups.
type fakeStore struct {
	docs      []graphstore.Document
	authors   map[string]graphstore.DocumentAuthors
	authorErr map[string]error
	listErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		authors:   make(map[string]graphstore.DocumentAuthors),
		authorErr: make(map[string]error),
	}
}

func (s *fakeStore) ListDocuments(ctx context.Context) ([]graphstore.Document, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.docs, nil
}

func (s *fakeStore) DocumentAuthors(ctx context.Context, documentID string) (graphstore.DocumentAuthors, error) {
	if err := s.authorErr[documentID]; err != nil {
		return graphstore.DocumentAuthors{}, err
	}
	return s.authors[documentID], nil
}

func (s *fakeStore) CoAuthors(ctx context.Context, authorName string) ([]graphstore.CoAuthor, error) {
	return nil, nil
}

func (s *fakeStore) TopAuthors(ctx context.Context, affiliationContains string, limit int) ([]graphstore.AuthorStats, error) {
	return nil, nil
}

func (s *fakeStore) PapersByYear(ctx context.Context, affiliationContains string, sinceYear int) ([]graphstore.YearCount, error) {
	return nil, nil
}

func (s *fakeStore) Close(ctx context.Context) error { return nil }
