package graphstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Default connection settings for a local Neo4j instance.
const (
	DefaultNeo4jURI      = "neo4j://127.0.0.1:7687"
	DefaultNeo4jDatabase = "neo4j"
)

// Neo4jStore implements Store against a Neo4j property graph with the
// schema (:Author)-[:AUTHOR_OF]->(:Document),
// (:Author)-[:AFFILIATED_WITH]->(:Affiliation) and
// (:Author)-[:CO_AUTHOR]-(:Author) carrying collaboration_count.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// Neo4jConfig holds connection parameters for a Neo4j store.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// OpenNeo4j connects to Neo4j and verifies connectivity. A connection or
// authentication failure here is fatal: the caller gets an error and no
// store (no automatic retry).
func OpenNeo4j(ctx context.Context, cfg Neo4jConfig) (*Neo4jStore, error) {
	uri := cfg.URI
	if uri == "" {
		uri = DefaultNeo4jURI
	}
	database := cfg.Database
	if database == "" {
		database = DefaultNeo4jDatabase
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	return &Neo4jStore{driver: driver, database: database}, nil
}

// Close releases the underlying driver and its connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// session opens a read session scoped to a single call.
func (s *Neo4jStore) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
}

// ListDocuments returns every document with a non-null, non-empty title.
func (s *Neo4jStore) ListDocuments(ctx context.Context) ([]Document, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (d:Document)
		WHERE d.title IS NOT NULL AND trim(d.title) <> ''
		RETURN d.document_id AS document_id, d.title AS title,
		       d.abstract AS abstract, d.year AS year,
		       d.citation_count AS citation_count`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var docs []Document
	for result.Next(ctx) {
		rec := result.Record()
		docs = append(docs, Document{
			ID:            recordString(rec, "document_id"),
			Title:         recordString(rec, "title"),
			Abstract:      recordString(rec, "abstract"),
			Year:          recordInt(rec, "year"),
			CitationCount: recordInt(rec, "citation_count"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading document records: %w", err)
	}
	return docs, nil
}

// DocumentAuthors returns up to MaxDocumentAuthors author names and one
// affiliation for a document.
func (s *Neo4jStore) DocumentAuthors(ctx context.Context, documentID string) (DocumentAuthors, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (a:Author)-[:AUTHOR_OF]->(d:Document {document_id: $document_id})
		OPTIONAL MATCH (a)-[:AFFILIATED_WITH]->(af:Affiliation)
		RETURN collect(DISTINCT a.full_name)[..$max_authors] AS authors,
		       head(collect(DISTINCT af.name)) AS affiliation`,
		map[string]any{
			"document_id": documentID,
			"max_authors": MaxDocumentAuthors,
		})
	if err != nil {
		return DocumentAuthors{}, fmt.Errorf("querying authors for %s: %w", documentID, err)
	}

	rec, err := result.Single(ctx)
	if err != nil {
		return DocumentAuthors{}, fmt.Errorf("reading author record for %s: %w", documentID, err)
	}

	var da DocumentAuthors
	if raw, ok := rec.Get("authors"); ok {
		if list, ok := raw.([]any); ok {
			for _, v := range list {
				if name, ok := v.(string); ok && name != "" {
					da.Authors = append(da.Authors, name)
				}
			}
		}
	}
	if raw, ok := rec.Get("affiliation"); ok {
		if name, ok := raw.(string); ok {
			da.Affiliation = name
		}
	}
	return da, nil
}

// CoAuthors returns distinct collaborators with shared-document counts.
func (s *Neo4jStore) CoAuthors(ctx context.Context, authorName string) ([]CoAuthor, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (a:Author {full_name: $name})-[co:CO_AUTHOR]-(b:Author)
		RETURN DISTINCT b.full_name AS name, co.collaboration_count AS shared
		ORDER BY shared DESC, name ASC`,
		map[string]any{"name": authorName})
	if err != nil {
		return nil, fmt.Errorf("querying co-authors of %s: %w", authorName, err)
	}

	var coauthors []CoAuthor
	for result.Next(ctx) {
		rec := result.Record()
		coauthors = append(coauthors, CoAuthor{
			Name:        recordString(rec, "name"),
			SharedCount: recordInt(rec, "shared"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading co-author records: %w", err)
	}
	return coauthors, nil
}

// TopAuthors returns the most productive authors for an institution.
func (s *Neo4jStore) TopAuthors(ctx context.Context, affiliationContains string, limit int) ([]AuthorStats, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (a:Author)-[:AFFILIATED_WITH]->(af:Affiliation)
		WHERE toLower(af.name) CONTAINS $substr
		OPTIONAL MATCH (a)-[:AUTHOR_OF]->(d:Document)
		RETURN a.full_name AS name, COUNT(DISTINCT d) AS papers,
		       COALESCE(SUM(d.citation_count), 0) AS citations
		ORDER BY papers DESC, name ASC
		LIMIT $limit`,
		map[string]any{
			"substr": strings.ToLower(affiliationContains),
			"limit":  limit,
		})
	if err != nil {
		return nil, fmt.Errorf("querying top authors: %w", err)
	}

	var stats []AuthorStats
	for result.Next(ctx) {
		rec := result.Record()
		stats = append(stats, AuthorStats{
			Name:      recordString(rec, "name"),
			Papers:    recordInt(rec, "papers"),
			Citations: recordInt(rec, "citations"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading author stats: %w", err)
	}
	return stats, nil
}

// PapersByYear returns yearly paper counts for an institution.
func (s *Neo4jStore) PapersByYear(ctx context.Context, affiliationContains string, sinceYear int) ([]YearCount, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (a:Author)-[:AFFILIATED_WITH]->(af:Affiliation)
		WHERE toLower(af.name) CONTAINS $substr
		MATCH (a)-[:AUTHOR_OF]->(d:Document)
		WHERE d.year >= $since
		RETURN d.year AS year, COUNT(DISTINCT d) AS papers
		ORDER BY year DESC`,
		map[string]any{
			"substr": strings.ToLower(affiliationContains),
			"since":  sinceYear,
		})
	if err != nil {
		return nil, fmt.Errorf("querying papers by year: %w", err)
	}

	var counts []YearCount
	for result.Next(ctx) {
		rec := result.Record()
		counts = append(counts, YearCount{
			Year:   recordInt(rec, "year"),
			Papers: recordInt(rec, "papers"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading yearly counts: %w", err)
	}
	return counts, nil
}

// recordString extracts a string field from a record, tolerating nulls.
func recordString(rec *neo4j.Record, key string) string {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return ""
	}
	s, _ := raw.(string)
	return s
}

// recordInt extracts an integer field from a record, tolerating nulls.
// Neo4j returns integers as int64.
func recordInt(rec *neo4j.Record, key string) int {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return 0
	}
	switch v := raw.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
