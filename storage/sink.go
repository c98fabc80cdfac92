package storage

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/c360studio/oboowl/owl"
)

// Sink is an owl.Sink that writes one ontology row through to SQLite. It
// keeps the typed axioms in an in-memory mirror, which answers reads.
type Sink struct {
	db     *sql.DB
	id     string
	mirror *owl.Ontology

	mu     sync.Mutex
	closed bool
	seq    int
}

var _ owl.Sink = (*Sink)(nil)

func newSink(db *sql.DB, id string) *Sink {
	return &Sink{db: db, id: id, mirror: owl.NewOntology()}
}

// ID returns the ontology row id.
func (s *Sink) ID() string { return s.id }

// Ontology returns the in-memory mirror.
func (s *Sink) Ontology() *owl.Ontology { return s.mirror }

func (s *Sink) exec(query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.db.Exec(query, args...)
	return err
}

func (s *Sink) Declare(e owl.Entity) error {
	return s.AddAxiom(owl.NewDeclaration(e))
}

func (s *Sink) AddAxiom(a owl.Axiom) error {
	if a == nil {
		return owl.ErrNilAxiom
	}
	if err := s.exec(
		"INSERT OR IGNORE INTO axioms (ontology_id, kind, rendering) VALUES (?, ?, ?)",
		s.id, a.Kind().String(), a.String(),
	); err != nil {
		return fmt.Errorf("insert axiom: %w", err)
	}
	return s.mirror.AddAxiom(a)
}

func (s *Sink) AddAxioms(axioms []owl.Axiom) error {
	for _, a := range axioms {
		if err := s.AddAxiom(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sink) RemoveAxioms(axioms []owl.Axiom) error {
	for _, a := range axioms {
		if a == nil {
			continue
		}
		if err := s.exec(
			"DELETE FROM axioms WHERE ontology_id = ? AND rendering = ?",
			s.id, a.String(),
		); err != nil {
			return fmt.Errorf("delete axiom: %w", err)
		}
	}
	return s.mirror.RemoveAxioms(axioms)
}

func (s *Sink) Axioms(kind owl.AxiomKind) []owl.Axiom {
	return s.mirror.Axioms(kind)
}

func (s *Sink) AddOntologyAnnotation(a owl.Annotation) error {
	if err := s.exec(
		"INSERT OR IGNORE INTO ontology_annotations (ontology_id, rendering) VALUES (?, ?)",
		s.id, a.String(),
	); err != nil {
		return fmt.Errorf("insert annotation: %w", err)
	}
	return s.mirror.AddOntologyAnnotation(a)
}

func (s *Sink) OntologyAnnotations() []owl.Annotation {
	return s.mirror.OntologyAnnotations()
}

func (s *Sink) SetOntologyIdentity(iri, version owl.IRI) error {
	if err := s.exec(
		"UPDATE ontologies SET iri = ?, version_iri = ? WHERE id = ?",
		string(iri), string(version), s.id,
	); err != nil {
		return fmt.Errorf("update ontology: %w", err)
	}
	return s.mirror.SetOntologyIdentity(iri, version)
}

func (s *Sink) RequestImport(iri owl.IRI) error {
	if err := s.exec(
		"INSERT OR IGNORE INTO imports (ontology_id, iri, seq) VALUES (?, ?, (SELECT COUNT(*) FROM imports WHERE ontology_id = ?))",
		s.id, string(iri), s.id,
	); err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	return s.mirror.RequestImport(iri)
}

func (s *Sink) AddRawAxioms(text string) error {
	s.mu.Lock()
	seq := s.seq
	s.seq++
	s.mu.Unlock()
	if err := s.exec(
		"INSERT INTO raw_axioms (ontology_id, seq, text) VALUES (?, ?, ?)",
		s.id, seq, text,
	); err != nil {
		return fmt.Errorf("insert raw axioms: %w", err)
	}
	return s.mirror.AddRawAxioms(text)
}

// IRI returns the ontology IRI.
func (s *Sink) IRI() owl.IRI { return s.mirror.IRI() }

// VersionIRI returns the version IRI.
func (s *Sink) VersionIRI() owl.IRI { return s.mirror.VersionIRI() }

// Imports returns the requested imports in request order.
func (s *Sink) Imports() []owl.IRI { return s.mirror.Imports() }

// RawAxioms returns raw axiom text in insertion order.
func (s *Sink) RawAxioms() []string { return s.mirror.RawAxioms() }

// Commit marks the ontology complete. The sink rejects writes afterwards.
func (s *Sink) Commit() error {
	if err := s.exec("UPDATE ontologies SET complete = 1 WHERE id = ?", s.id); err != nil {
		return fmt.Errorf("commit ontology: %w", err)
	}
	s.close()
	return nil
}

// Discard deletes the partial ontology after an aborted conversion.
func (s *Sink) Discard() error {
	if err := s.exec("DELETE FROM ontologies WHERE id = ?", s.id); err != nil {
		return fmt.Errorf("discard ontology: %w", err)
	}
	s.close()
	return nil
}

func (s *Sink) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
