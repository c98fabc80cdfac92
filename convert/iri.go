package convert

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// absoluteSchemes mark identifiers that are already IRIs.
var absoluteSchemes = []string{"http:", "https:", "ftp:", "urn:"}

// privilegedXrefPrefixes rank shorthand expansion candidates, highest first.
var privilegedXrefPrefixes = []string{"RO:", "BFO:"}

// resolve maps a document identifier to an IRI.
func (s *session) resolve(id string) (owl.IRI, error) {
	return s.resolveVisited(id, nil)
}

func (s *session) resolveVisited(id string, visited map[string]bool) (owl.IRI, error) {
	if strings.Contains(id, " ") {
		return "", &IdentifierError{ID: id, Err: ErrInvalidIdentifier}
	}
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(id, scheme) {
			return owl.IRI(id), nil
		}
	}

	if !strings.Contains(id, ":") {
		if expanded := s.expandShorthand(id); expanded != id && !visited[expanded] {
			if visited == nil {
				visited = make(map[string]bool)
			}
			visited[id] = true
			return s.resolveVisited(expanded, visited)
		}
	}

	var ns, db, local string
	if i := strings.Index(id, ":"); i >= 0 {
		ns, local = id[:i], id[i+1:]
		if strings.Contains(local, "_") {
			db = ns + "#_"
		} else {
			db = ns + "_"
		}
	} else {
		ns, local = s.defaultIDSpace, id
		db = ns + "#"
	}

	prefix := oio.OBONamespace + db
	if override, ok := s.idSpaces[ns]; ok {
		prefix = override
	}

	iri := prefix + encodeLocalID(local)
	u, err := url.Parse(iri)
	if err != nil || !u.IsAbs() {
		return "", &IdentifierError{ID: id, Err: fmt.Errorf("%w: %q", ErrIdentifierConstruction, iri)}
	}
	return owl.IRI(iri), nil
}

// expandShorthand returns the namespaced id a bare relation name stands for,
// taken from the xrefs of its typedef frame. RO xrefs win over BFO xrefs,
// which win over the first other xref. It returns id when nothing applies.
func (s *session) expandShorthand(id string) string {
	f := s.doc.TypedefFrame(id)
	if f == nil {
		return id
	}
	best, rank := "", len(privilegedXrefPrefixes)+1
	for _, x := range f.Xrefs() {
		if x.ID == id || x.ID == "" {
			continue
		}
		r := len(privilegedXrefPrefixes)
		for i, p := range privilegedXrefPrefixes {
			if strings.HasPrefix(x.ID, p) {
				r = i
				break
			}
		}
		if r < rank {
			best, rank = x.ID, r
		}
	}
	if best == "" {
		return id
	}
	return best
}

// mapPropID substitutes a relation id with an xref whose namespace is
// declared equivalent.
func (s *session) mapPropID(id string) string {
	if len(s.equivalentXrefNS) == 0 {
		return id
	}
	f := s.doc.TypedefFrame(id)
	if f == nil {
		return id
	}
	for _, x := range f.Xrefs() {
		if s.equivalentXrefNS[idPrefix(x.ID)] {
			return x.ID
		}
	}
	return id
}

// propertyIRI resolves a relation id used as an annotation or object
// property.
func (s *session) propertyIRI(id string) (owl.IRI, error) {
	if id == "" {
		return "", ErrMissingValue
	}
	return s.resolve(s.mapPropID(id))
}

func (s *session) class(id string) (owl.Class, error) {
	if id == "" {
		return owl.Class{}, ErrMissingValue
	}
	iri, err := s.resolve(id)
	if err != nil {
		return owl.Class{}, err
	}
	return owl.Class{IRI: iri}, nil
}

func idPrefix(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[:i]
	}
	return id
}

// encodeLocalID percent-encodes an identifier's local part the way legacy
// OBO tooling does: ASCII letters, digits and ".-*_" pass through, space
// becomes "_", any non-ASCII rune becomes "%3F" and other bytes are
// escaped as uppercase %XX.
func encodeLocalID(local string) string {
	var sb strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '*', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteByte('_')
		case r > 0x7f:
			sb.WriteString("%3F")
		default:
			fmt.Fprintf(&sb, "%%%02X", r)
		}
	}
	return sb.String()
}

// frameSubject resolves a frame id, failing when the frame has none.
func (s *session) frameSubject(f *obo.Frame) (owl.IRI, error) {
	if f.ID == "" {
		return "", fmt.Errorf("%s frame: %w", f.Type, ErrMissingFrameID)
	}
	return s.resolve(f.ID)
}
