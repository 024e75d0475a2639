package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/bibscope/internal/index"
)

func createEdgesSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS edges (
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			relation TEXT NOT NULL,
			weight INTEGER NOT NULL,
			PRIMARY KEY (source_id, target_id, relation)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
		CREATE INDEX IF NOT EXISTS idx_edges_relation ON edges(relation);
	`
	_, err := db.Exec(schema)
	return err
}

func insertEdges(tx *sql.Tx, ix *index.Index) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO edges (source_id, target_id, relation, weight)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing edges insert: %w", err)
	}
	defer stmt.Close()

	for _, rel := range index.Relations {
		for _, e := range ix.Edges(rel) {
			if _, err := stmt.Exec(e.SourceID, e.TargetID, string(e.Relation), e.Weight); err != nil {
				return fmt.Errorf("inserting %s edge %s-%s: %w", rel, e.SourceID, e.TargetID, err)
			}
		}
	}
	return nil
}

// EdgesByRelation returns the edges of rel, heaviest first.
func (d *DB) EdgesByRelation(rel index.Relation, limit int) ([]index.Edge, error) {
	query := `
		SELECT source_id, target_id, relation, weight
		FROM edges
		WHERE relation = ?
		ORDER BY weight DESC, source_id, target_id`
	args := []interface{}{string(rel)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying edges by relation: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// EdgesFor returns every edge touching id, in either direction.
func (d *DB) EdgesFor(id string) ([]index.Edge, error) {
	rows, err := d.db.Query(`
		SELECT source_id, target_id, relation, weight
		FROM edges
		WHERE source_id = ? OR target_id = ?
		ORDER BY relation, source_id, target_id
	`, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying edges for %s: %w", id, err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// CountEdges returns the number of edges per relation.
func (d *DB) CountEdges() (map[index.Relation]int, error) {
	rows, err := d.db.Query(`SELECT relation, COUNT(*) FROM edges GROUP BY relation`)
	if err != nil {
		return nil, fmt.Errorf("counting edges: %w", err)
	}
	defer rows.Close()

	counts := make(map[index.Relation]int)
	for rows.Next() {
		var rel string
		var n int
		if err := rows.Scan(&rel, &n); err != nil {
			return nil, err
		}
		counts[index.Relation(rel)] = n
	}
	return counts, rows.Err()
}

func scanEdges(rows *sql.Rows) ([]index.Edge, error) {
	var edges []index.Edge
	for rows.Next() {
		var e index.Edge
		var rel string
		if err := rows.Scan(&e.SourceID, &e.TargetID, &rel, &e.Weight); err != nil {
			return nil, err
		}
		e.Relation = index.Relation(rel)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
