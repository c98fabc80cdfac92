package convert

import "github.com/c360studio/oboowl/owl"

// Skip reasons recorded in the Report.
const (
	skipRelationBoolean      = "relation boolean expression"
	skipPropertyValueArity   = "property_value arity"
	skipMetadataIsA          = "is_a between metadata relations"
	skipRelationRelationship = "relationship to object property on relation"
	skipInstanceFrame        = "instance frame"
)

// outcome is the result of translating one clause: either axioms or the
// reason nothing was produced. Failures travel separately as errors.
type outcome struct {
	axioms []owl.Axiom
	skip   string
}

func emit(axioms ...owl.Axiom) outcome {
	return outcome{axioms: axioms}
}

func skip(reason string) outcome {
	return outcome{skip: reason}
}

func (o outcome) skipped() bool {
	return o.skip != ""
}
