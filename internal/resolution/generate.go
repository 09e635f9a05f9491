package resolution

import (
	"fmt"

	"github.com/hanpama/queryshape/internal/language"
	"github.com/hanpama/queryshape/internal/schema"
)

// responseShapeName is the root record every operation's response
// decodes into.
const responseShapeName = "ResponseData"

// Operation is one executable definition together with the fragment
// table of the document it came from.
type Operation struct {
	Definition *language.OperationDefinition
	Fragments  language.FragmentDefinitionList
}

// NewOperation pairs an operation with its document's fragments.
func NewOperation(doc *language.QueryDocument, def *language.OperationDefinition) *Operation {
	return &Operation{Definition: def, Fragments: doc.Fragments}
}

func (op *Operation) fragment(name string) *language.FragmentDefinition {
	return op.Fragments.ForName(name)
}

func (op *Operation) rootType(s *schema.Schema) (*schema.Type, error) {
	var root *schema.Type
	switch op.Definition.Operation {
	case language.Query:
		root = s.GetQueryType()
	case language.Mutation:
		root = s.GetMutationType()
	case language.Subscription:
		root = s.GetSubscriptionType()
	}
	if root == nil {
		return nil, fmt.Errorf("schema declares no root type for %s operations", op.Definition.Operation)
	}
	return root, nil
}

// Generate resolves the operation's used-types catalog and derives the
// full typed surface for it: scalar aliases, enums, input records, the
// variables record, one shape per reachable fragment, and the response
// shape tree. The pass is pure; inputs are never mutated and the
// result is complete or the error is terminal.
func Generate(s *schema.Schema, op *Operation, opts Options) (*Output, error) {
	used, err := CollectUsedTypes(s, op)
	if err != nil {
		return nil, err
	}

	out := &Output{OperationName: op.Definition.Name}

	for _, t := range used.Scalars() {
		out.Definitions = append(out.Definitions, &Definition{
			Name:     t.Name,
			Category: CategoryScalar,
			Alias:    &AliasDef{Target: opts.scalarTarget(t.Name)},
		})
	}
	for _, t := range used.Enums() {
		out.Definitions = append(out.Definitions, buildEnumDefinition(t, opts))
	}
	for _, t := range used.Inputs() {
		def, err := buildInputDefinition(t, opts)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}

	variables, defaults, err := buildVariables(op, opts)
	if err != nil {
		return nil, err
	}
	out.Definitions = append(out.Definitions, variables)
	out.Defaults = defaults

	b := &shapeBuilder{schema: s, op: op, opts: opts}
	for _, frag := range used.Fragments() {
		if err := b.fragmentShape(frag); err != nil {
			return nil, err
		}
	}

	root, err := op.rootType(s)
	if err != nil {
		return nil, err
	}
	if _, err := b.record(responseShapeName, CategoryResponseObject, op.Definition.SelectionSet, root); err != nil {
		return nil, err
	}
	out.Definitions = append(out.Definitions, b.defs...)
	return out, nil
}

// buildInputDefinition emits the record for one input object type.
// Fields keep schema declaration order; types reference sibling
// definitions by name, so recursive inputs need no special casing.
func buildInputDefinition(t *schema.Type, opts Options) (*Definition, error) {
	rec := &RecordDef{}
	for _, f := range t.InputFields {
		node, err := decorateRef(f.Type, "")
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, &RecordField{
			Name:     f.Name,
			WireName: f.Name,
			Type:     node,
		})
	}
	return &Definition{
		Name:     t.Name,
		Category: CategoryInput,
		Derives:  opts.VariableDerives,
		Record:   rec,
	}, nil
}
