// Package semantic provides hybrid retrieval over the document corpus:
// a cosine-similarity vector index built from title and abstract text,
// combined with author enrichment from the graph store.
package semantic

import "time"

// DocumentMeta is the per-document metadata cached alongside the index so
// search hits can be resolved without a round trip to the graph store.
type DocumentMeta struct {
	Title     string `json:"title"`
	Abstract  string `json:"abstract,omitempty"`
	Year      int    `json:"year,omitempty"`
	Citations int    `json:"citations"`
}

// Hit is a raw nearest-neighbor match from the index.
type Hit struct {
	Score    float32 `json:"score"`    // cosine similarity, in [-1, 1]
	Position int     `json:"position"` // insertion position in the index
}

// Result is a search hit enriched with cached metadata and graph-resolved
// authors. Authors may be empty and Affiliation absent when the per-hit
// author lookup failed or the graph holds none.
type Result struct {
	DocumentID  string   `json:"document_id"`
	Title       string   `json:"title"`
	Abstract    string   `json:"abstract,omitempty"`
	Year        int      `json:"year,omitempty"`
	Citations   int      `json:"citations"`
	Similarity  float32  `json:"similarity"`
	Authors     []string `json:"authors"`
	Affiliation string   `json:"affiliation,omitempty"`
}

// BuildStats contains statistics from an index build.
type BuildStats struct {
	DocumentsIndexed int           `json:"documents_indexed"`
	DocumentsSkipped int           `json:"documents_skipped"` // empty or whitespace-only title
	Duration         time.Duration `json:"duration"`
}
