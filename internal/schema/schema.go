package schema

// Schema is the resolved, read-only type-system view generation runs
// against. It is built once from a validated SDL document and never
// mutated afterwards.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	BuiltIn       bool
	Fields        []*Field      // For OBJECT and INTERFACE
	Interfaces    []string      // For OBJECT and INTERFACE (implemented)
	PossibleTypes []string      // For INTERFACE and UNION
	EnumValues    []*EnumValue  // For ENUM
	InputFields   []*InputValue // For INPUT_OBJECT
}

// GetField returns the field declaration with the given name, or nil.
func (t *Type) GetField(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Discriminant is the field that carries an object's runtime type name
// on the wire. The core tags polymorphic selections with it.
func (t *Type) Discriminant() string { return "__typename" }

// IsComposite reports whether selections can be applied to the type.
func (t *Type) IsComposite() bool {
	switch t.Kind {
	case TypeKindObject, TypeKindInterface, TypeKindUnion:
		return true
	}
	return false
}

// IsAbstract reports whether the type resolves to one of several
// concrete object types at runtime.
func (t *Type) IsAbstract() bool {
	return t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

// Field represents a field on an object or interface
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

// GetNamedType returns the innermost named type of the reference.
func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

type EnumValue struct {
	Name        string
	Description string
}

type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	HasDefault   bool
	DefaultValue string // raw literal text; interpretation is a later stage's job
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsPossibleType reports whether name is a concrete member of the
// abstract type. For objects it is plain name equality.
func (s *Schema) IsPossibleType(abstract *Type, name string) bool {
	if abstract.Name == name {
		return abstract.Kind == TypeKindObject
	}
	for _, pt := range abstract.PossibleTypes {
		if pt == name {
			return true
		}
	}
	return false
}

// IsSubtypeOf reports whether sub narrows target: either a concrete
// member of an abstract target, or an interface whose possible types
// all intersect the target's.
func (s *Schema) IsSubtypeOf(sub, target *Type) bool {
	if sub == target {
		return true
	}
	if target.IsAbstract() {
		for _, pt := range target.PossibleTypes {
			if pt == sub.Name {
				return true
			}
		}
	}
	for _, iface := range sub.Interfaces {
		if iface == target.Name {
			return true
		}
	}
	return false
}
