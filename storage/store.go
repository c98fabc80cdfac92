// Package storage persists converted ontologies in SQLite.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store handles database operations.
type Store struct {
	db *sql.DB
}

// Record describes a stored ontology.
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IRI        string    `json:"iri"`
	VersionIRI string    `json:"version_iri,omitempty"`
	Complete   bool      `json:"complete"`
	CreatedAt  time.Time `json:"created_at"`
}

// StoredAxiom is an axiom as persisted: its kind and functional syntax.
type StoredAxiom struct {
	Kind      string `json:"kind"`
	Rendering string `json:"rendering"`
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin starts a new ontology row named name and returns a sink writing
// into it. The row is marked complete by Sink.Commit.
func (s *Store) Begin(ctx context.Context, name string) (*Sink, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO ontologies (id, name, created_at) VALUES (?, ?, ?)",
		id, name, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert ontology: %w", err)
	}
	return newSink(s.db, id), nil
}

// Get returns the ontology with id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, iri, version_iri, complete, created_at FROM ontologies WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Name, &r.IRI, &r.VersionIRI, &r.Complete, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get ontology: %w", err)
	}
	return &r, nil
}

// Latest returns the most recent complete ontology with name.
func (s *Store) Latest(ctx context.Context, name string) (*Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, iri, version_iri, complete, created_at FROM ontologies
		 WHERE name = ? AND complete = 1 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		name,
	).Scan(&r.ID, &r.Name, &r.IRI, &r.VersionIRI, &r.Complete, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get ontology: %w", err)
	}
	return &r, nil
}

// List returns every stored ontology, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, iri, version_iri, complete, created_at FROM ontologies ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list ontologies: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.IRI, &r.VersionIRI, &r.Complete, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ontology: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Axioms returns the stored axioms of an ontology, optionally restricted to
// one kind name, ordered by rendering.
func (s *Store) Axioms(ctx context.Context, id, kind string) ([]StoredAxiom, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	query := "SELECT kind, rendering FROM axioms WHERE ontology_id = ?"
	args := []any{id}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	rows, err := s.db.QueryContext(ctx, query+" ORDER BY rendering", args...)
	if err != nil {
		return nil, fmt.Errorf("list axioms: %w", err)
	}
	defer rows.Close()

	var out []StoredAxiom
	for rows.Next() {
		var a StoredAxiom
		if err := rows.Scan(&a.Kind, &a.Rendering); err != nil {
			return nil, fmt.Errorf("scan axiom: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an ontology and everything stored for it.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ontologies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete ontology: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
