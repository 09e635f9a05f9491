package resolution

import (
	"github.com/hanpama/queryshape/internal/language"
)

// buildVariables produces the operation's Variables record plus one
// default-value accessor signature per declared variable. An operation
// without variables still gets an empty record, so call sites always
// have a uniform variables value to construct. Accessor bodies are a
// later stage's obligation; the core only fixes name and type.
func buildVariables(op *Operation, opts Options) (*Definition, []*DefaultAccessor, error) {
	rec := &RecordDef{}
	var defaults []*DefaultAccessor
	for _, v := range op.Definition.VariableDefinitions {
		node, err := decorateVariableType(v)
		if err != nil {
			return nil, nil, err
		}
		rec.Fields = append(rec.Fields, &RecordField{
			Name:     v.Variable,
			WireName: v.Variable,
			Type:     node,
		})
		defaults = append(defaults, &DefaultAccessor{Variable: v.Variable, Type: node})
	}
	def := &Definition{
		Name:     "Variables",
		Category: CategoryVariables,
		Derives:  opts.VariableDerives,
		Record:   rec,
	}
	return def, defaults, nil
}

func decorateVariableType(v *language.VariableDefinition) (*TypeNode, error) {
	name, qualifiers := variableQualifiers(v.Type)
	return DecorateType(name, qualifiers)
}

// variableQualifiers flattens a declared AST type into its base name
// and outer-to-inner qualifier sequence.
func variableQualifiers(t *language.Type) (string, []TypeQualifier) {
	var qualifiers []TypeQualifier
	for t != nil {
		if t.NonNull {
			qualifiers = append(qualifiers, QualifierRequired)
			t = &language.Type{NamedType: t.NamedType, Elem: t.Elem}
			continue
		}
		if t.Elem != nil {
			qualifiers = append(qualifiers, QualifierList)
			t = t.Elem
			continue
		}
		return t.NamedType, qualifiers
	}
	return "", qualifiers
}
