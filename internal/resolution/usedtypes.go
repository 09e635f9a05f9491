package resolution

import (
	"github.com/hanpama/queryshape/internal/language"
	"github.com/hanpama/queryshape/internal/schema"
)

// UsedTypes is the deduplicated, first-seen-ordered catalog of every
// schema type and fragment the operation transitively reaches.
// Membership is by identity, not by name, and the catalog is immutable
// once collected, so repeated generation runs walk it in the same
// order.
type UsedTypes struct {
	types     []*schema.Type
	seenTypes map[*schema.Type]bool
	fragments []*language.FragmentDefinition
	seenFrags map[*language.FragmentDefinition]bool
}

// Scalars returns the used custom scalars in first-seen order.
func (u *UsedTypes) Scalars() []*schema.Type { return u.ofKind(schema.TypeKindScalar) }

// Enums returns the used enum types in first-seen order.
func (u *UsedTypes) Enums() []*schema.Type { return u.ofKind(schema.TypeKindEnum) }

// Inputs returns the used input object types in first-seen order.
func (u *UsedTypes) Inputs() []*schema.Type { return u.ofKind(schema.TypeKindInputObject) }

// Fragments returns the reachable fragments in first-seen order.
func (u *UsedTypes) Fragments() []*language.FragmentDefinition { return u.fragments }

func (u *UsedTypes) ofKind(kind schema.TypeKind) []*schema.Type {
	var out []*schema.Type
	for _, t := range u.types {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func (u *UsedTypes) addType(t *schema.Type) bool {
	if u.seenTypes[t] {
		return false
	}
	u.seenTypes[t] = true
	u.types = append(u.types, t)
	return true
}

func (u *UsedTypes) addFragment(f *language.FragmentDefinition) bool {
	if u.seenFrags[f] {
		return false
	}
	u.seenFrags[f] = true
	u.fragments = append(u.fragments, f)
	return true
}

// CollectUsedTypes walks the operation's selection tree and variable
// declarations and catalogs every custom scalar, enum, input object
// and fragment reachable from them. Fragments are entered at most
// once, which both deduplicates the catalog and terminates the walk;
// recursive input objects terminate through the same identity set.
func CollectUsedTypes(s *schema.Schema, op *Operation) (*UsedTypes, error) {
	c := &collector{
		schema: s,
		op:     op,
		used: &UsedTypes{
			seenTypes: make(map[*schema.Type]bool),
			seenFrags: make(map[*language.FragmentDefinition]bool),
		},
	}
	root, err := op.rootType(s)
	if err != nil {
		return nil, err
	}
	if err := c.selectionSet(op.Definition.SelectionSet, root); err != nil {
		return nil, err
	}
	for _, v := range op.Definition.VariableDefinitions {
		named := v.Type.NamedType
		if named == "" && v.Type.Elem != nil {
			named = elemNamedType(v.Type)
		}
		t, ok := s.Types[named]
		if !ok {
			return nil, errUnknownType(named)
		}
		c.inputType(t)
	}
	return c.used, nil
}

type collector struct {
	schema *schema.Schema
	op     *Operation
	used   *UsedTypes
}

func (c *collector) selectionSet(sel language.SelectionSet, on *schema.Type) error {
	for _, item := range sel {
		switch item := item.(type) {
		case *language.Field:
			if item.Name == on.Discriminant() {
				continue
			}
			fd := on.GetField(item.Name)
			if fd == nil {
				return errUnknownField(item.Name, on.Name)
			}
			t, ok := c.schema.Types[fd.Type.GetNamedType()]
			if !ok {
				return errUnknownType(fd.Type.GetNamedType())
			}
			switch t.Kind {
			case schema.TypeKindScalar:
				if !schema.IsBuiltinScalar(t.Name) {
					c.used.addType(t)
				}
			case schema.TypeKindEnum:
				c.used.addType(t)
			default:
				if err := c.selectionSet(item.SelectionSet, t); err != nil {
					return err
				}
			}
		case *language.FragmentSpread:
			frag := c.op.fragment(item.Name)
			if frag == nil {
				return errUnresolvedFragment(item.Name)
			}
			if !c.used.addFragment(frag) {
				continue
			}
			cond, ok := c.schema.Types[frag.TypeCondition]
			if !ok {
				return errUnknownType(frag.TypeCondition)
			}
			if err := c.selectionSet(frag.SelectionSet, cond); err != nil {
				return err
			}
		case *language.InlineFragment:
			cond := on
			if item.TypeCondition != "" {
				t, ok := c.schema.Types[item.TypeCondition]
				if !ok {
					return errUnknownType(item.TypeCondition)
				}
				cond = t
			}
			if err := c.selectionSet(item.SelectionSet, cond); err != nil {
				return err
			}
		}
	}
	return nil
}

// inputType records a variable's type and everything reachable through
// input object fields. The identity set in the catalog doubles as the
// visited set, so self-referential inputs do not recurse forever.
func (c *collector) inputType(t *schema.Type) {
	switch t.Kind {
	case schema.TypeKindScalar:
		if !schema.IsBuiltinScalar(t.Name) {
			c.used.addType(t)
		}
	case schema.TypeKindEnum:
		c.used.addType(t)
	case schema.TypeKindInputObject:
		if !c.used.addType(t) {
			return
		}
		for _, f := range t.InputFields {
			if nested, ok := c.schema.Types[f.Type.GetNamedType()]; ok {
				c.inputType(nested)
			}
		}
	}
}

func elemNamedType(t *language.Type) string {
	for t != nil {
		if t.NamedType != "" {
			return t.NamedType
		}
		t = t.Elem
	}
	return ""
}
