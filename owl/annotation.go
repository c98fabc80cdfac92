package owl

import (
	"sort"
	"strings"

	"github.com/c360studio/oboowl/vocabulary/oio"
)

// AnnotationValue is the object of an annotation: an IRI or a Literal.
type AnnotationValue interface {
	String() string
	annotationValue()
}

// Literal is an OWL literal. An empty Datatype denotes a plain string.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

// NewStringLiteral returns a plain string literal.
func NewStringLiteral(s string) Literal {
	return Literal{Lexical: s}
}

// NewBoolLiteral returns an xsd:boolean literal.
func NewBoolLiteral(b bool) Literal {
	lex := "false"
	if b {
		lex = "true"
	}
	return Literal{Lexical: lex, Datatype: oio.XSDBoolean}
}

// NewTypedLiteral returns a literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	if datatype == oio.XSDString {
		datatype = ""
	}
	return Literal{Lexical: lexical, Datatype: datatype}
}

func (l Literal) String() string {
	s := `"` + escapeLiteral(l.Lexical) + `"`
	switch {
	case l.Lang != "":
		return s + "@" + l.Lang
	case l.Datatype != "":
		return s + "^^" + l.Datatype.String()
	default:
		return s
	}
}

func (Literal) annotationValue() {}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Annotation is a property/value pair, optionally annotated itself. The
// translator never nests deeper than one level.
type Annotation struct {
	Property    IRI
	Value       AnnotationValue
	Annotations []Annotation
}

// NewAnnotation returns an annotation with a normalized set of nested
// annotations.
func NewAnnotation(property IRI, value AnnotationValue, nested ...Annotation) Annotation {
	return Annotation{Property: property, Value: value, Annotations: NormalizeAnnotations(nested)}
}

func (a Annotation) String() string {
	var sb strings.Builder
	sb.WriteString("Annotation(")
	for _, n := range a.Annotations {
		sb.WriteString(n.String())
		sb.WriteString(" ")
	}
	sb.WriteString(a.Property.String())
	sb.WriteString(" ")
	if a.Value != nil {
		sb.WriteString(a.Value.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// NormalizeAnnotations deduplicates annotations by rendering and sorts them.
// It returns nil for an empty input.
func NormalizeAnnotations(anns []Annotation) []Annotation {
	if len(anns) == 0 {
		return nil
	}
	seen := make(map[string]Annotation, len(anns))
	for _, a := range anns {
		seen[a.String()] = a
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Annotation, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}
