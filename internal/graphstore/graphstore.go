// Package graphstore provides access to the property graph of documents,
// authors, and affiliations that backs retrieval and ranking.
package graphstore

import (
	"context"
	"errors"
)

// MaxDocumentAuthors caps how many distinct author names are resolved per document.
const MaxDocumentAuthors = 5

// Errors returned by graph store operations.
var (
	ErrNotConnected = errors.New("graph store not reachable")
	ErrNotFound     = errors.New("record not found in graph store")
)

// Document is a paper node as stored in the graph.
type Document struct {
	ID            string `json:"document_id"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract,omitempty"`
	Year          int    `json:"year,omitempty"` // 0 if unknown
	CitationCount int    `json:"citation_count"`
}

// DocumentAuthors holds the author enrichment for one document: up to
// MaxDocumentAuthors distinct names and at most one affiliation (the first
// one the store returns; no tie-break is defined between affiliations).
type DocumentAuthors struct {
	Authors     []string `json:"authors"`
	Affiliation string   `json:"affiliation,omitempty"`
}

// CoAuthor is one collaborator of an author with the shared-document count.
type CoAuthor struct {
	Name        string `json:"name"`
	SharedCount int    `json:"shared_count"`
}

// AuthorStats summarizes one author's output for insight queries.
type AuthorStats struct {
	Name      string `json:"name"`
	Papers    int    `json:"papers"`
	Citations int    `json:"citations"`
}

// YearCount is the number of papers published in one year.
type YearCount struct {
	Year   int `json:"year"`
	Papers int `json:"papers"`
}

// Store is the read contract the retrieval pipeline depends on.
// Implementations open a short-lived session per call and release it on
// completion.
type Store interface {
	// ListDocuments returns every document with a non-null, non-empty title.
	// No particular ordering is guaranteed.
	ListDocuments(ctx context.Context) ([]Document, error)

	// DocumentAuthors returns up to MaxDocumentAuthors distinct author names
	// and at most one affiliation name for the given document.
	DocumentAuthors(ctx context.Context, documentID string) (DocumentAuthors, error)

	// CoAuthors returns the distinct collaborators of the named author with
	// shared-document counts, most frequent first.
	CoAuthors(ctx context.Context, authorName string) ([]CoAuthor, error)

	// TopAuthors returns authors affiliated with an institution whose name
	// contains the given substring (case-insensitive), ranked by paper count.
	TopAuthors(ctx context.Context, affiliationContains string, limit int) ([]AuthorStats, error)

	// PapersByYear returns yearly paper counts since the given year for the
	// matching institution, most recent year first.
	PapersByYear(ctx context.Context, affiliationContains string, sinceYear int) ([]YearCount, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
