package resolution

import (
	"github.com/hanpama/queryshape/internal/schema"
)

// TypeQualifier is one nullability or list-repetition modifier on a
// type reference, ordered outer-to-inner as authored. [T!]! reads as
// [Required, List, Required].
type TypeQualifier string

const (
	QualifierList     TypeQualifier = "LIST"
	QualifierRequired TypeQualifier = "REQUIRED"
)

// TypeNode is the container-type descriptor the decorator produces.
// It mirrors schema.TypeRef but carries explicit optionality instead
// of GraphQL's inverted non-null wrapping, so a renderer can map it
// onto a target language mechanically.
type TypeNode struct {
	Kind   TypeNodeKind `json:"kind"`
	OfType *TypeNode    `json:"ofType,omitempty"`
	Named  string       `json:"named,omitempty"`
}

type TypeNodeKind string

const (
	TypeNodeNamed  TypeNodeKind = "NAMED"
	TypeNodeList   TypeNodeKind = "LIST"
	TypeNodeOption TypeNodeKind = "OPTION"
)

func NamedNode(name string) *TypeNode { return &TypeNode{Kind: TypeNodeNamed, Named: name} }
func ListOf(n *TypeNode) *TypeNode    { return &TypeNode{Kind: TypeNodeList, OfType: n} }
func OptionOf(n *TypeNode) *TypeNode  { return &TypeNode{Kind: TypeNodeOption, OfType: n} }

func (n *TypeNode) String() string {
	switch n.Kind {
	case TypeNodeNamed:
		return n.Named
	case TypeNodeList:
		return "List<" + n.OfType.String() + ">"
	case TypeNodeOption:
		return "Option<" + n.OfType.String() + ">"
	}
	return "Unknown"
}

// GetNamedType returns the innermost named type of the descriptor.
func (n *TypeNode) GetNamedType() string {
	current := n
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// DecorateType wraps the named base type according to the qualifier
// sequence. Qualifiers are processed innermost-first while tracking
// whether the next layer was committed non-null, which yields the
// standard semantics: T is optional, T! required, [T] an optional list
// of optional elements, [T!]! a required list of required elements.
// A Required qualifier in already-non-null context is a malformed
// sequence and aborts decoration.
func DecorateType(name string, qualifiers []TypeQualifier) (*TypeNode, error) {
	node := NamedNode(name)
	nonNull := false
	for i := len(qualifiers) - 1; i >= 0; i-- {
		switch qualifiers[i] {
		case QualifierList:
			if nonNull {
				node = ListOf(node)
				nonNull = false
			} else {
				node = ListOf(OptionOf(node))
			}
		case QualifierRequired:
			if nonNull {
				return nil, errMalformedQualifiers(name)
			}
			nonNull = true
		}
	}
	if !nonNull {
		node = OptionOf(node)
	}
	return node, nil
}

// QualifiersOf flattens a schema type reference into its base type
// name and outer-to-inner qualifier sequence.
func QualifiersOf(ref *schema.TypeRef) (string, []TypeQualifier) {
	var qualifiers []TypeQualifier
	for ref != nil {
		switch ref.Kind {
		case schema.TypeRefKindNonNull:
			qualifiers = append(qualifiers, QualifierRequired)
		case schema.TypeRefKindList:
			qualifiers = append(qualifiers, QualifierList)
		case schema.TypeRefKindNamed:
			return ref.Named, qualifiers
		}
		ref = ref.OfType
	}
	return "", qualifiers
}

// decorateRef is DecorateType applied to a schema reference, with the
// base name rewritten when the caller substitutes a generated shape
// for the schema's named type.
func decorateRef(ref *schema.TypeRef, rename string) (*TypeNode, error) {
	name, qualifiers := QualifiersOf(ref)
	if rename != "" {
		name = rename
	}
	return DecorateType(name, qualifiers)
}
