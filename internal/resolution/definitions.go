package resolution

// Category tags each generated definition with the role it plays in
// the operation's typed surface.
type Category string

const (
	CategoryScalar         Category = "SCALAR"
	CategoryEnum           Category = "ENUM"
	CategoryInput          Category = "INPUT"
	CategoryFragment       Category = "FRAGMENT"
	CategoryResponseObject Category = "RESPONSE_OBJECT"
	CategoryVariables      Category = "VARIABLES"
)

// Definition is one named type in the generated surface. Exactly one
// of Alias, Enum, Record and Union is set, depending on the category:
// scalars are aliases, enums are enums, unions back polymorphic
// selections, everything else is a record.
type Definition struct {
	Name     string     `json:"name"`
	Category Category   `json:"category"`
	Derives  []string   `json:"derives,omitempty"`
	Alias    *AliasDef  `json:"alias,omitempty"`
	Enum     *EnumDef   `json:"enum,omitempty"`
	Record   *RecordDef `json:"record,omitempty"`
	Union    *UnionDef  `json:"union,omitempty"`
}

// AliasDef aliases a custom scalar to an externally supplied
// representation. An empty target means the caller supplied no
// mapping and the renderer should fall back to an opaque placeholder.
type AliasDef struct {
	Target string `json:"target,omitempty"`
}

// EnumDef lists the schema-declared values in schema order plus the
// catch-all variant that absorbs values added to the schema after
// generation.
type EnumDef struct {
	Values         []*EnumValueDef `json:"values"`
	UnknownVariant string          `json:"unknownVariant"`
}

type EnumValueDef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RecordDef is the field layout of one record. On names the companion
// tagged-union definition when the selection carried type-conditioned
// branches; its value merges into the record's own serialized level.
type RecordDef struct {
	Fields []*RecordField `json:"fields"`
	On     string         `json:"on,omitempty"`
}

// RecordField is one (output name, wire name, type) triple. Flatten
// marks fields whose value serializes at the record's own level
// rather than under the field's key (fragment references and the On
// union).
type RecordField struct {
	Name     string    `json:"name"`
	WireName string    `json:"wireName"`
	Type     *TypeNode `json:"type"`
	Flatten  bool      `json:"flatten,omitempty"`
}

// UnionDef is the auxiliary tagged union for the type-conditioned
// branches of one selection set. Variants appear in first-seen order;
// each one references a separately emitted record definition.
type UnionDef struct {
	Discriminant string          `json:"discriminant"`
	Variants     []*UnionVariant `json:"variants"`
}

type UnionVariant struct {
	TypeCondition string `json:"typeCondition"`
	Shape         string `json:"shape"`
}

// DefaultAccessor is the signature obligation for one variable's
// default value. The body is intentionally deferred to a later stage;
// the core only fixes the name and declared type.
type DefaultAccessor struct {
	Variable string    `json:"variable"`
	Type     *TypeNode `json:"type"`
}

// Output is the full typed surface generated for one operation, in
// emission order: scalars, enums, inputs, variables, fragments,
// response shapes.
type Output struct {
	OperationName string             `json:"operationName"`
	Definitions   []*Definition      `json:"definitions"`
	Defaults      []*DefaultAccessor `json:"defaults,omitempty"`
}
