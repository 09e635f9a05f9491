package resolution

// Options is the caller-supplied configuration bundle. Derive lists
// are opaque, order-preserving pass-through strings a renderer may
// attach to generated types; the core never interprets them.
type Options struct {
	// ResponseDerives are attached to response shapes, fragments,
	// unions and enums.
	ResponseDerives []string
	// VariableDerives are attached to the variables record and input
	// object records.
	VariableDerives []string
	// ScalarTypes maps a custom scalar name to its external
	// representation. Unmapped scalars stay opaque.
	ScalarTypes map[string]string
}

func (o Options) scalarTarget(name string) string {
	return o.ScalarTypes[name]
}
