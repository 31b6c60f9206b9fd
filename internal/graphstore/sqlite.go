package graphstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded SQLite database that mirrors
// the graph schema as node and relationship tables. It serves local use and
// tests where no Neo4j instance is available.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite-backed graph store at the given path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			document_id TEXT PRIMARY KEY,
			title TEXT,
			abstract TEXT,
			year INTEGER,
			citation_count INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS authors (
			author_id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS affiliations (
			affiliation_id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);

		-- Relationship tables mirror the graph edges
		CREATE TABLE IF NOT EXISTS author_of (
			author_id TEXT NOT NULL,
			document_id TEXT NOT NULL,
			PRIMARY KEY (author_id, document_id)
		);

		CREATE TABLE IF NOT EXISTS affiliated_with (
			author_id TEXT NOT NULL,
			affiliation_id TEXT NOT NULL,
			PRIMARY KEY (author_id, affiliation_id)
		);

		CREATE TABLE IF NOT EXISTS co_author (
			author1_id TEXT NOT NULL,
			author2_id TEXT NOT NULL,
			collaboration_count INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (author1_id, author2_id)
		);

		CREATE INDEX IF NOT EXISTS idx_author_of_doc ON author_of(document_id);
		CREATE INDEX IF NOT EXISTS idx_affiliated_author ON affiliated_with(author_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// AddDocument inserts or replaces a document node.
func (s *SQLiteStore) AddDocument(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (document_id, title, abstract, year, citation_count)
		VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Abstract, nullableYear(doc.Year), doc.CitationCount)
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.ID, err)
	}
	return nil
}

// AddAuthor inserts or replaces an author node.
func (s *SQLiteStore) AddAuthor(ctx context.Context, authorID, fullName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO authors (author_id, full_name) VALUES (?, ?)`,
		authorID, fullName)
	if err != nil {
		return fmt.Errorf("inserting author %s: %w", authorID, err)
	}
	return nil
}

// AddAffiliation inserts or replaces an affiliation node.
func (s *SQLiteStore) AddAffiliation(ctx context.Context, affiliationID, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO affiliations (affiliation_id, name) VALUES (?, ?)`,
		affiliationID, name)
	if err != nil {
		return fmt.Errorf("inserting affiliation %s: %w", affiliationID, err)
	}
	return nil
}

// LinkAuthorOf records an AUTHOR_OF edge.
func (s *SQLiteStore) LinkAuthorOf(ctx context.Context, authorID, documentID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO author_of (author_id, document_id) VALUES (?, ?)`,
		authorID, documentID)
	if err != nil {
		return fmt.Errorf("linking author %s to document %s: %w", authorID, documentID, err)
	}
	return nil
}

// LinkAffiliatedWith records an AFFILIATED_WITH edge.
func (s *SQLiteStore) LinkAffiliatedWith(ctx context.Context, authorID, affiliationID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO affiliated_with (author_id, affiliation_id) VALUES (?, ?)`,
		authorID, affiliationID)
	if err != nil {
		return fmt.Errorf("linking author %s to affiliation %s: %w", authorID, affiliationID, err)
	}
	return nil
}

// LinkCoAuthors records a CO_AUTHOR edge with its collaboration count.
// The pair is stored once with the lexically smaller ID first.
func (s *SQLiteStore) LinkCoAuthors(ctx context.Context, author1ID, author2ID string, count int) error {
	if author2ID < author1ID {
		author1ID, author2ID = author2ID, author1ID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO co_author (author1_id, author2_id, collaboration_count)
		VALUES (?, ?, ?)`,
		author1ID, author2ID, count)
	if err != nil {
		return fmt.Errorf("linking co-authors %s and %s: %w", author1ID, author2ID, err)
	}
	return nil
}

// ListDocuments returns every document with a non-null, non-empty title.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, title, COALESCE(abstract, ''), COALESCE(year, 0), citation_count
		FROM documents
		WHERE title IS NOT NULL AND trim(title) <> ''
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Abstract, &d.Year, &d.CitationCount); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DocumentAuthors returns up to MaxDocumentAuthors author names and one
// affiliation for a document.
func (s *SQLiteStore) DocumentAuthors(ctx context.Context, documentID string) (DocumentAuthors, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.full_name
		FROM authors a
		JOIN author_of ao ON ao.author_id = a.author_id
		WHERE ao.document_id = ?
		GROUP BY a.full_name
		ORDER BY MIN(a.rowid)
		LIMIT ?`, documentID, MaxDocumentAuthors)
	if err != nil {
		return DocumentAuthors{}, fmt.Errorf("querying authors for %s: %w", documentID, err)
	}
	defer rows.Close()

	var da DocumentAuthors
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return DocumentAuthors{}, fmt.Errorf("scanning author name: %w", err)
		}
		if name != "" {
			da.Authors = append(da.Authors, name)
		}
	}
	if err := rows.Err(); err != nil {
		return DocumentAuthors{}, err
	}

	// First affiliation among the document's authors, if any
	err = s.db.QueryRowContext(ctx, `
		SELECT af.name
		FROM affiliations af
		JOIN affiliated_with aw ON aw.affiliation_id = af.affiliation_id
		JOIN author_of ao ON ao.author_id = aw.author_id
		WHERE ao.document_id = ?
		ORDER BY af.rowid
		LIMIT 1`, documentID).Scan(&da.Affiliation)
	if err != nil && err != sql.ErrNoRows {
		return DocumentAuthors{}, fmt.Errorf("querying affiliation for %s: %w", documentID, err)
	}
	return da, nil
}

// CoAuthors returns distinct collaborators with shared-document counts.
func (s *SQLiteStore) CoAuthors(ctx context.Context, authorName string) ([]CoAuthor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT other.full_name, ca.collaboration_count
		FROM co_author ca
		JOIN authors me ON me.author_id IN (ca.author1_id, ca.author2_id)
		JOIN authors other ON other.author_id IN (ca.author1_id, ca.author2_id)
		 AND other.author_id <> me.author_id
		WHERE me.full_name = ?
		ORDER BY ca.collaboration_count DESC, other.full_name ASC`, authorName)
	if err != nil {
		return nil, fmt.Errorf("querying co-authors of %s: %w", authorName, err)
	}
	defer rows.Close()

	var coauthors []CoAuthor
	for rows.Next() {
		var ca CoAuthor
		if err := rows.Scan(&ca.Name, &ca.SharedCount); err != nil {
			return nil, fmt.Errorf("scanning co-author: %w", err)
		}
		coauthors = append(coauthors, ca)
	}
	return coauthors, rows.Err()
}

// TopAuthors returns the most productive authors for an institution.
func (s *SQLiteStore) TopAuthors(ctx context.Context, affiliationContains string, limit int) ([]AuthorStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.full_name,
		       COUNT(DISTINCT ao.document_id) AS papers,
		       COALESCE(SUM(d.citation_count), 0) AS citations
		FROM authors a
		LEFT JOIN author_of ao ON ao.author_id = a.author_id
		LEFT JOIN documents d ON d.document_id = ao.document_id
		WHERE EXISTS (
			SELECT 1 FROM affiliated_with aw
			JOIN affiliations af ON af.affiliation_id = aw.affiliation_id
			WHERE aw.author_id = a.author_id
			  AND instr(lower(af.name), ?) > 0
		)
		GROUP BY a.author_id
		ORDER BY papers DESC, a.full_name ASC
		LIMIT ?`, strings.ToLower(affiliationContains), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top authors: %w", err)
	}
	defer rows.Close()

	var stats []AuthorStats
	for rows.Next() {
		var as AuthorStats
		if err := rows.Scan(&as.Name, &as.Papers, &as.Citations); err != nil {
			return nil, fmt.Errorf("scanning author stats: %w", err)
		}
		stats = append(stats, as)
	}
	return stats, rows.Err()
}

// PapersByYear returns yearly paper counts for an institution.
func (s *SQLiteStore) PapersByYear(ctx context.Context, affiliationContains string, sinceYear int) ([]YearCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.year, COUNT(DISTINCT d.document_id) AS papers
		FROM documents d
		JOIN author_of ao ON ao.document_id = d.document_id
		WHERE d.year >= ?
		  AND EXISTS (
			SELECT 1 FROM affiliated_with aw
			JOIN affiliations af ON af.affiliation_id = aw.affiliation_id
			WHERE aw.author_id = ao.author_id
			  AND instr(lower(af.name), ?) > 0
		)
		GROUP BY d.year
		ORDER BY d.year DESC`, sinceYear, strings.ToLower(affiliationContains))
	if err != nil {
		return nil, fmt.Errorf("querying papers by year: %w", err)
	}
	defer rows.Close()

	var counts []YearCount
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Papers); err != nil {
			return nil, fmt.Errorf("scanning yearly count: %w", err)
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}

// nullableYear maps the zero year to NULL so unknown years stay unknown.
func nullableYear(year int) any {
	if year == 0 {
		return nil
	}
	return year
}
