package owl

import (
	"sync"
	"testing"

	"github.com/c360studio/oboowl/vocabulary/oio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	foo1 IRI = "http://purl.obolibrary.org/obo/FOO_1"
	foo2 IRI = "http://purl.obolibrary.org/obo/FOO_2"
	foo3 IRI = "http://purl.obolibrary.org/obo/FOO_3"
	part IRI = "http://purl.obolibrary.org/obo/BFO_0000050"
)

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"plain", NewStringLiteral("cell"), `"cell"`},
		{"escaped", NewStringLiteral(`a "b" \c`), `"a \"b\" \\c"`},
		{"bool", NewBoolLiteral(true), `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`},
		{"xsd string folds", NewTypedLiteral("x", oio.XSDString), `"x"`},
		{"lang", Literal{Lexical: "cellule", Lang: "fr"}, `"cellule"@fr`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}

func TestExpressions_Normalized(t *testing.T) {
	a := IntersectionOf(Class{IRI: foo2}, Class{IRI: foo1}, Class{IRI: foo2})
	b := IntersectionOf(Class{IRI: foo1}, Class{IRI: foo2})

	assert.Equal(t, a.String(), b.String())
	assert.Len(t, a.Operands, 2)
	assert.True(t, a.IsAnonymous())
	assert.False(t, Class{IRI: foo1}.IsAnonymous())
}

func TestExpressions_String(t *testing.T) {
	some := ObjectSomeValuesFrom{Property: part, Filler: Class{IRI: foo2}}
	assert.Equal(t, "ObjectSomeValuesFrom(<"+string(part)+"> <"+string(foo2)+">)", some.String())

	minCard := ObjectMinCardinality{N: 2, Property: part, Filler: Class{IRI: foo2}}
	assert.Equal(t, "ObjectMinCardinality(2 <"+string(part)+"> <"+string(foo2)+">)", minCard.String())

	not := ObjectComplementOf{Operand: Class{IRI: foo2}}
	assert.Equal(t, "ObjectComplementOf(<"+string(foo2)+">)", not.String())
}

func TestAxiom_AnnotationsAreSet(t *testing.T) {
	ann := NewAnnotation("http://example.org/p", NewStringLiteral("v"))
	a := NewSubClassOf(Class{IRI: foo1}, Class{IRI: foo2}, ann, ann)
	require.Len(t, a.Annotations(), 1)
	assert.Equal(t,
		`SubClassOf(Annotation(<http://example.org/p> "v") <`+string(foo1)+`> <`+string(foo2)+`>)`,
		a.String())
}

func TestSubPropertyChainOf_KeepsOrder(t *testing.T) {
	a := NewSubPropertyChainOf([]IRI{foo2, foo1}, foo3)
	assert.Equal(t, KindSubPropertyChainOf, a.Kind())
	assert.Equal(t,
		"SubObjectPropertyOf(ObjectPropertyChain(<"+string(foo2)+"> <"+string(foo1)+">) <"+string(foo3)+">)",
		a.String())
}

func TestPropertyCharacteristic(t *testing.T) {
	a := NewPropertyCharacteristic(KindTransitiveObjectProperty, part)
	assert.Equal(t, KindTransitiveObjectProperty, a.Kind())
	assert.Equal(t, "TransitiveObjectProperty(<"+string(part)+">)", a.String())
}

func TestOntology_SetSemantics(t *testing.T) {
	o := NewOntology()

	require.NoError(t, o.Declare(NewClass(foo1)))
	require.NoError(t, o.Declare(NewClass(foo1)))
	require.NoError(t, o.AddAxiom(NewSubClassOf(Class{IRI: foo1}, Class{IRI: foo2})))
	require.NoError(t, o.AddAxiom(NewSubClassOf(Class{IRI: foo1}, Class{IRI: foo2})))

	assert.Equal(t, 2, o.Len())
	assert.Len(t, o.Axioms(KindDeclaration), 1)
	assert.Len(t, o.Axioms(KindSubClassOf), 1)
	assert.Len(t, o.Axioms(AnyKind), 2)

	assert.ErrorIs(t, o.AddAxiom(nil), ErrNilAxiom)
}

func TestOntology_RemoveAxioms(t *testing.T) {
	o := NewOntology()
	eq := NewEquivalentClasses([]ClassExpression{Class{IRI: foo1}, Class{IRI: foo2}})
	require.NoError(t, o.AddAxioms([]Axiom{eq}))
	require.True(t, o.Contains(eq))

	// Operand order does not affect identity.
	same := NewEquivalentClasses([]ClassExpression{Class{IRI: foo2}, Class{IRI: foo1}})
	require.NoError(t, o.RemoveAxioms([]Axiom{same}))
	assert.False(t, o.Contains(eq))
	assert.Equal(t, 0, o.Len())
}

func TestOntology_Identity(t *testing.T) {
	o := NewOntology()
	require.NoError(t, o.SetOntologyIdentity("http://purl.obolibrary.org/obo/go.owl", "http://purl.obolibrary.org/obo/go/1/go.owl"))
	assert.Equal(t, IRI("http://purl.obolibrary.org/obo/go.owl"), o.IRI())
	assert.Equal(t, IRI("http://purl.obolibrary.org/obo/go/1/go.owl"), o.VersionIRI())

	require.NoError(t, o.RequestImport("http://example.org/a.owl"))
	require.NoError(t, o.RequestImport("http://example.org/a.owl"))
	assert.Equal(t, []IRI{"http://example.org/a.owl"}, o.Imports())

	require.NoError(t, o.AddRawAxioms("SubClassOf(<a> <b>)"))
	assert.Equal(t, []string{"SubClassOf(<a> <b>)"}, o.RawAxioms())
}

func TestOntology_ConcurrentProducers(t *testing.T) {
	o := NewOntology()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = o.Declare(NewClass(foo1))
				_ = o.AddOntologyAnnotation(NewAnnotation(foo2, NewStringLiteral("x")))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, o.Len())
	assert.Len(t, o.OntologyAnnotations(), 1)
}
