package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/record"
	"github.com/segmentio/encoding/json"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite query index. The JSONL records file is the source of
// truth; the database can be deleted and rebuilt at any time.
type DB struct {
	db *sql.DB
}

// Document is a stored record with its row number in the records file.
type Document struct {
	Row    int           `json:"row"`
	Record record.Record `json:"record"`
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			doc_row INTEGER PRIMARY KEY,
			doi TEXT,
			title TEXT,
			author TEXT,
			year INTEGER,
			source_title TEXT,
			document_type TEXT,
			source TEXT,
			citations INTEGER NOT NULL DEFAULT 0,
			record_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_doi ON documents(doi) WHERE doi IS NOT NULL;
		CREATE INDEX IF NOT EXISTS idx_documents_year ON documents(year);

		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			doc_row UNINDEXED,
			title,
			abstract,
			keywords,
			author
		);

		CREATE TABLE IF NOT EXISTS entities (
			id TEXT,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			documents INTEGER NOT NULL,
			citations INTEGER NOT NULL,
			h_index INTEGER NOT NULL DEFAULT 0,
			g_index INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (kind, name)
		);

		CREATE INDEX IF NOT EXISTS idx_entities_id ON entities(id) WHERE id IS NOT NULL;
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return createEdgesSchema(db)
}

// RebuildFromJSONL clears the database and rebuilds it from a records file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	t, err := ReadRecords(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	return d.Rebuild(t)
}

// Rebuild replaces the indexed documents, entities and edges with those of
// t and returns the number of documents indexed.
func (d *DB) Rebuild(t *record.Table) (int, error) {
	ix := index.Build(t)

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "documents_fts", "entities", "edges"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	if err := insertDocuments(tx, ix); err != nil {
		return 0, err
	}
	if err := insertEntities(tx, ix); err != nil {
		return 0, err
	}
	if err := insertEdges(tx, ix); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return t.Len(), nil
}

func insertDocuments(tx *sql.Tx, ix *index.Index) error {
	docStmt, err := tx.Prepare(`
		INSERT INTO documents (
			doc_row, doi, title, author, year, source_title,
			document_type, source, citations, record_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing documents insert: %w", err)
	}
	defer docStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO documents_fts (doc_row, title, abstract, keywords, author)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	docs := ix.Documents()
	for i, r := range ix.Table().Rows() {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling record %d: %w", i, err)
		}
		_, err = docStmt.Exec(
			i, nullableString(r.Get("doi")), nullableString(r.Get("title")),
			nullableString(r.Get("author")), nullableYear(docs[i].Year),
			nullableString(r.Get("abbrev_source_title")),
			nullableString(r.Get("document_type")), nullableString(r.Get("source")),
			docs[i].Citations, string(data),
		)
		if err != nil {
			return fmt.Errorf("inserting document %d: %w", i, err)
		}

		keywords := strings.Join(knownValues(r.Get("author_keywords"), r.Get("keywords")), "; ")
		_, err = ftsStmt.Exec(i, ftsText(r.Get("title")), ftsText(r.Get("abstract")), keywords, ftsText(r.Get("author")))
		if err != nil {
			return fmt.Errorf("inserting fts for document %d: %w", i, err)
		}
	}
	return nil
}

func insertEntities(tx *sql.Tx, ix *index.Index) error {
	stmt, err := tx.Prepare(`
		INSERT INTO entities (id, kind, name, documents, citations, h_index, g_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entities insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range index.Kinds {
		for _, e := range ix.Entities(k) {
			_, err := stmt.Exec(nullableString(e.ID), string(k), e.Name, e.Documents, e.Citations, e.HIndex, e.GIndex)
			if err != nil {
				return fmt.Errorf("inserting %s entity %q: %w", k, e.Name, err)
			}
		}
	}
	return nil
}

// Get returns the document stored at row, or nil if there is none.
func (d *DB) Get(row int) (*Document, error) {
	var data string
	err := d.db.QueryRow(`SELECT record_json FROM documents WHERE doc_row = ?`, row).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("getting document %d: %w", row, err)
	}
	return decodeDocument(row, data)
}

// FindByDOI returns the documents carrying doi, compared case-insensitively.
func (d *DB) FindByDOI(doi string) ([]Document, error) {
	rows, err := d.db.Query(`
		SELECT doc_row, record_json FROM documents
		WHERE lower(doi) = lower(?)
		ORDER BY doc_row`, strings.TrimSpace(doi))
	if err != nil {
		return nil, fmt.Errorf("finding DOI: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// SearchFilters contains optional filters for Search. Set fields are
// combined with AND.
type SearchFilters struct {
	Keyword      string   // Full-text search over title, abstract, keywords and authors
	Authors      []string // Author names (prefix matching on each word)
	Title        string   // Full-text search in titles only
	YearFrom     int      // Minimum year (0 = no minimum)
	YearTo       int      // Maximum year (0 = no maximum)
	Source       string   // Source title substring, case-insensitive
	DocumentType string   // Exact document type
}

// Search returns documents matching every set filter in row order.
func (d *DB) Search(filters SearchFilters, limit int) ([]Document, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:("+prepareFTSQuery(filters.Title)+")")
	}
	for _, author := range filters.Authors {
		if q := prepareAuthorQuery(author); q != "" {
			ftsTerms = append(ftsTerms, "author:"+q)
		}
	}

	query := `SELECT doc_row, record_json FROM documents WHERE 1=1`
	if len(ftsTerms) > 0 {
		query += ` AND doc_row IN (SELECT doc_row FROM documents_fts WHERE documents_fts MATCH ?)`
		args = append(args, strings.Join(ftsTerms, " AND "))
	}
	if filters.YearFrom > 0 {
		query += " AND year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Source != "" {
		query += " AND source_title LIKE ?"
		args = append(args, "%"+filters.Source+"%")
	}
	if filters.DocumentType != "" {
		query += " AND document_type = ?"
		args = append(args, filters.DocumentType)
	}
	query += " ORDER BY doc_row"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Entities returns the stored entities of kind k in table order, by
// descending document count for sources and keywords and by name otherwise.
func (d *DB) Entities(k index.Kind, limit int) ([]index.Entity, error) {
	order := "name"
	switch k {
	case index.Sources, index.AuthorKeywords, index.KeywordsPlus:
		order = "documents DESC, name"
	}
	query := `SELECT id, name, documents, citations, h_index, g_index
		FROM entities WHERE kind = ? ORDER BY ` + order
	args := []interface{}{string(k)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s entities: %w", k, err)
	}
	defer rows.Close()

	var out []index.Entity
	for rows.Next() {
		var e index.Entity
		var id sql.NullString
		if err := rows.Scan(&id, &e.Name, &e.Documents, &e.Citations, &e.HIndex, &e.GIndex); err != nil {
			return nil, err
		}
		e.ID = id.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of indexed documents.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		var row int
		var data string
		if err := rows.Scan(&row, &data); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(row, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func decodeDocument(row int, data string) (*Document, error) {
	var r record.Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("parsing record JSON for row %d: %w", row, err)
	}
	return &Document{Row: row, Record: r}, nil
}

// nullableString maps Unknown and empty values to NULL.
func nullableString(s string) sql.NullString {
	if record.IsUnknown(s) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableYear(y int) sql.NullInt64 {
	if y <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(y), Valid: true}
}

func ftsText(s string) string {
	if record.IsUnknown(s) {
		return ""
	}
	return s
}

func knownValues(vs ...string) []string {
	var out []string
	for _, v := range vs {
		if !record.IsUnknown(v) {
			out = append(out, v)
		}
	}
	return out
}

// prepareFTSQuery quotes queries containing FTS5 operators so they match as
// a phrase.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,;") {
		return "\"" + strings.ReplaceAll(query, "\"", "\"\"") + "\""
	}
	return query
}

// prepareAuthorQuery turns each word of a name into a prefix term, so
// "smith j" matches "Smith J.".
func prepareAuthorQuery(author string) string {
	var terms []string
	for _, part := range strings.Fields(author) {
		part = strings.Trim(part, ".,;")
		if part == "" {
			continue
		}
		terms = append(terms, "\""+strings.ReplaceAll(part, "\"", "\"\"")+"\"*")
	}
	if len(terms) == 0 {
		return ""
	}
	return "(" + strings.Join(terms, " AND ") + ")"
}
