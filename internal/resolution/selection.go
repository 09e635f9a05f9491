package resolution

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/hanpama/queryshape/internal/language"
	"github.com/hanpama/queryshape/internal/schema"
)

// shapeBuilder accumulates the record and union definitions produced
// for one operation. Nested shapes are appended before the record that
// references them, so the output reads leaf-first.
type shapeBuilder struct {
	schema *schema.Schema
	op     *Operation
	opts   Options
	defs   []*Definition
}

// fragmentShape builds the single standalone shape for a fragment.
// Every spread site references this one definition.
func (b *shapeBuilder) fragmentShape(frag *language.FragmentDefinition) error {
	cond, ok := b.schema.Types[frag.TypeCondition]
	if !ok {
		return errUnknownType(frag.TypeCondition)
	}
	_, err := b.record(fragmentShapeName(frag), CategoryFragment, frag.SelectionSet, cond)
	return err
}

// record builds the shape for one selection set against its target
// type, emits it (and any nested shapes) into b.defs, and returns it.
func (b *shapeBuilder) record(name string, cat Category, sel language.SelectionSet, on *schema.Type) (*Definition, error) {
	g := &shapeGather{builder: b, shapeName: name, pending: map[string]*pendingEntry{}}
	if err := g.selectionSet(sel, on); err != nil {
		return nil, err
	}
	fields, err := g.finalize(on)
	if err != nil {
		return nil, err
	}

	rec := &RecordDef{Fields: fields}
	if len(g.branchOrder) > 0 {
		// The union occupies the "on" key of the record; a selection
		// that already claimed that output name cannot share it.
		if _, ok := g.pending["on"]; ok {
			return nil, errFieldCollision("on", name)
		}
		unionName, err := b.branchUnion(name, on, g)
		if err != nil {
			return nil, err
		}
		rec.On = unionName
		rec.Fields = append(rec.Fields, &RecordField{
			Name:    "on",
			Type:    NamedNode(unionName),
			Flatten: true,
		})
	}

	def := &Definition{
		Name:     name,
		Category: cat,
		Derives:  b.opts.ResponseDerives,
		Record:   rec,
	}
	b.defs = append(b.defs, def)
	return def, nil
}

// branchUnion synthesizes the <ShapeName>On tagged union from the
// gathered type-conditioned branches. Branches sharing one condition
// were already merged; two distinct conditions that can resolve to the
// same concrete runtime type are rejected as ambiguous, because the
// discriminant could not select a single variant for it.
func (b *shapeBuilder) branchUnion(name string, on *schema.Type, g *shapeGather) (string, error) {
	for i, c1 := range g.branchOrder {
		for _, c2 := range g.branchOrder[i+1:] {
			if overlap := b.conditionOverlap(c1, c2); overlap != "" {
				return "", errAmbiguousTypeCondition(fmt.Sprintf(
					"type conditions %q and %q in %s both match concrete type %q",
					c1, c2, name, overlap))
			}
		}
	}

	unionName := name + "On"
	union := &UnionDef{Discriminant: on.Discriminant()}
	for _, cond := range g.branchOrder {
		condType, ok := b.schema.Types[cond]
		if !ok {
			return "", errUnknownType(cond)
		}
		variantName := unionName + strcase.ToCamel(cond)
		var merged language.SelectionSet
		for _, sel := range g.branches[cond] {
			merged = append(merged, sel...)
		}
		if _, err := b.record(variantName, CategoryResponseObject, merged, condType); err != nil {
			return "", err
		}
		union.Variants = append(union.Variants, &UnionVariant{
			TypeCondition: cond,
			Shape:         variantName,
		})
	}
	b.defs = append(b.defs, &Definition{
		Name:     unionName,
		Category: CategoryResponseObject,
		Derives:  b.opts.ResponseDerives,
		Union:    union,
	})
	return unionName, nil
}

// conditionOverlap returns a concrete type name reachable through both
// conditions, or "" when they are disjoint.
func (b *shapeBuilder) conditionOverlap(c1, c2 string) string {
	t1, ok1 := b.schema.Types[c1]
	t2, ok2 := b.schema.Types[c2]
	if !ok1 || !ok2 {
		return ""
	}
	set2 := concreteSet(t2)
	for _, name := range concreteList(t1) {
		if set2[name] {
			return name
		}
	}
	return ""
}

func concreteList(t *schema.Type) []string {
	if t.Kind == schema.TypeKindObject {
		return []string{t.Name}
	}
	return t.PossibleTypes
}

func concreteSet(t *schema.Type) map[string]bool {
	set := map[string]bool{}
	for _, name := range concreteList(t) {
		set[name] = true
	}
	return set
}

// shapeGather flattens one selection set into pending record entries
// and type-conditioned branches. Same-level fragments merge into the
// entry list; a field selected more than once merges its selection
// sets so the nested shape is built exactly once. Subtype conditions
// accumulate per condition name in first-seen order.
type shapeGather struct {
	builder   *shapeBuilder
	shapeName string

	order   []string
	pending map[string]*pendingEntry

	branches    map[string][]language.SelectionSet
	branchOrder []string
}

// pendingEntry is one future record field: either a direct field
// (with its merged sub-selections) or a flattened fragment reference.
type pendingEntry struct {
	output     string
	field      *schema.Field // nil for discriminant and fragment entries
	isTypename bool
	fragment   string // fragment shape name when the entry is a flattened spread
	selections language.SelectionSet
}

func (g *shapeGather) selectionSet(sel language.SelectionSet, on *schema.Type) error {
	for _, item := range sel {
		switch item := item.(type) {
		case *language.Field:
			if err := g.field(item, on); err != nil {
				return err
			}
		case *language.FragmentSpread:
			if err := g.spread(item, on); err != nil {
				return err
			}
		case *language.InlineFragment:
			if err := g.inline(item, on); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *shapeGather) field(f *language.Field, on *schema.Type) error {
	outputName := f.Alias
	if outputName == "" {
		outputName = f.Name
	}

	if f.Name == on.Discriminant() {
		return g.merge(&pendingEntry{output: outputName, isTypename: true})
	}

	fd := on.GetField(f.Name)
	if fd == nil {
		return errUnknownField(f.Name, on.Name)
	}
	return g.mergeField(&pendingEntry{
		output:     outputName,
		field:      fd,
		selections: f.SelectionSet,
	})
}

func (g *shapeGather) spread(spread *language.FragmentSpread, on *schema.Type) error {
	b := g.builder
	frag := b.op.fragment(spread.Name)
	if frag == nil {
		return errUnresolvedFragment(spread.Name)
	}
	cond, ok := b.schema.Types[frag.TypeCondition]
	if !ok {
		return errUnknownType(frag.TypeCondition)
	}

	// A spread on the target type itself (or a supertype of it) merges
	// at the same serialized level: the shape holds one flattened
	// reference to the fragment's single standalone definition.
	if cond == on || b.schema.IsSubtypeOf(on, cond) {
		return g.merge(&pendingEntry{output: frag.Name, fragment: fragmentShapeName(frag)})
	}
	g.addBranch(cond.Name, language.SelectionSet{spread})
	return nil
}

func (g *shapeGather) inline(inline *language.InlineFragment, on *schema.Type) error {
	b := g.builder
	if inline.TypeCondition == "" || inline.TypeCondition == on.Name {
		return g.selectionSet(inline.SelectionSet, on)
	}
	cond, ok := b.schema.Types[inline.TypeCondition]
	if !ok {
		return errUnknownType(inline.TypeCondition)
	}
	if b.schema.IsSubtypeOf(on, cond) {
		// Condition widens to a supertype; its fields apply
		// unconditionally and merge in place.
		return g.selectionSet(inline.SelectionSet, on)
	}
	g.addBranch(cond.Name, inline.SelectionSet)
	return nil
}

// mergeField merges a direct field selection into the pending entries.
// Re-selecting the same output name is fine when it names the same
// declared field: the sub-selections concatenate. A field sharing its
// output name with a non-field entry collides; two different declared
// fields cannot share a serialized key and are rejected.
func (g *shapeGather) mergeField(e *pendingEntry) error {
	prev, ok := g.pending[e.output]
	if !ok {
		return g.merge(e)
	}
	if prev.field == nil {
		return errFieldCollision(e.output, g.shapeName)
	}
	if prev.field != e.field {
		return errAmbiguousTypeCondition(fmt.Sprintf(
			"selection %q in %s refers to conflicting fields", e.output, g.shapeName))
	}
	prev.selections = append(prev.selections, e.selections...)
	return nil
}

// merge adds a discriminant or fragment-reference entry. Repeating the
// same entry deduplicates; any other occupant of the output name is a
// collision.
func (g *shapeGather) merge(e *pendingEntry) error {
	prev, ok := g.pending[e.output]
	if !ok {
		g.pending[e.output] = e
		g.order = append(g.order, e.output)
		return nil
	}
	if prev.isTypename && e.isTypename {
		return nil
	}
	if prev.fragment != "" && prev.fragment == e.fragment {
		return nil
	}
	return errFieldCollision(e.output, g.shapeName)
}

func (g *shapeGather) addBranch(cond string, sel language.SelectionSet) {
	if g.branches == nil {
		g.branches = map[string][]language.SelectionSet{}
	}
	if _, ok := g.branches[cond]; !ok {
		g.branchOrder = append(g.branchOrder, cond)
	}
	g.branches[cond] = append(g.branches[cond], sel)
}

// finalize turns the pending entries into record fields, building each
// composite field's nested shape exactly once from its merged
// selections.
func (g *shapeGather) finalize(on *schema.Type) ([]*RecordField, error) {
	b := g.builder
	var fields []*RecordField
	for _, output := range g.order {
		e := g.pending[output]

		if e.fragment != "" {
			fields = append(fields, &RecordField{
				Name:    e.output,
				Type:    NamedNode(e.fragment),
				Flatten: true,
			})
			continue
		}
		if e.isTypename {
			node, err := DecorateType("String", []TypeQualifier{QualifierRequired})
			if err != nil {
				return nil, err
			}
			fields = append(fields, &RecordField{Name: e.output, WireName: e.output, Type: node})
			continue
		}

		target, ok := b.schema.Types[e.field.Type.GetNamedType()]
		if !ok {
			return nil, errUnknownType(e.field.Type.GetNamedType())
		}
		rename := ""
		if target.IsComposite() {
			childName := g.shapeName + strcase.ToCamel(e.output)
			if _, err := b.record(childName, CategoryResponseObject, e.selections, target); err != nil {
				return nil, err
			}
			rename = childName
		}
		node, err := decorateRef(e.field.Type, rename)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &RecordField{Name: e.output, WireName: e.output, Type: node})
	}
	return fields, nil
}

func fragmentShapeName(frag *language.FragmentDefinition) string {
	return strcase.ToCamel(frag.Name)
}
