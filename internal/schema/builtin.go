package schema

// Spec-defined scalars. These are never emitted as definitions; the
// renderer maps them onto host-language primitives directly.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// IsBuiltinScalar reports whether name is one of the five spec scalars.
func IsBuiltinScalar(name string) bool { return builtinScalars[name] }
