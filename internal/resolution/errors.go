package resolution

import "fmt"

// ErrorKind classifies terminal generation failures. Generation never
// produces partial output: the first failure aborts the whole pass for
// the operation.
type ErrorKind string

const (
	ErrMalformedQualifiers    ErrorKind = "MalformedQualifiers"
	ErrUnknownField           ErrorKind = "UnknownField"
	ErrUnknownType            ErrorKind = "UnknownType"
	ErrUnresolvedFragment     ErrorKind = "UnresolvedFragment"
	ErrAmbiguousTypeCondition ErrorKind = "AmbiguousTypeCondition"
	ErrFieldCollision         ErrorKind = "FieldCollision"
)

type GenerateError struct {
	Kind    ErrorKind
	Message string
}

func (e *GenerateError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Common reusable error constructors (template helpers)
// NOTE: Keep messages stable; tests match on substrings.

func errMalformedQualifiers(typeName string) *GenerateError {
	return &GenerateError{
		Kind:    ErrMalformedQualifiers,
		Message: fmt.Sprintf("double Required qualifier on type %q", typeName),
	}
}

func errUnknownField(fieldName, typeName string) *GenerateError {
	return &GenerateError{
		Kind:    ErrUnknownField,
		Message: fmt.Sprintf("field %q is not declared on type %q", fieldName, typeName),
	}
}

func errUnresolvedFragment(name string) *GenerateError {
	return &GenerateError{
		Kind:    ErrUnresolvedFragment,
		Message: fmt.Sprintf("fragment %q is not defined in the operation's document", name),
	}
}

func errAmbiguousTypeCondition(detail string) *GenerateError {
	return &GenerateError{
		Kind:    ErrAmbiguousTypeCondition,
		Message: detail,
	}
}

func errUnknownType(name string) *GenerateError {
	return &GenerateError{
		Kind:    ErrUnknownType,
		Message: fmt.Sprintf("type %q is not declared in the schema", name),
	}
}

func errFieldCollision(name, shapeName string) *GenerateError {
	return &GenerateError{
		Kind:    ErrFieldCollision,
		Message: fmt.Sprintf("output name %q in %s collides with a composed field", name, shapeName),
	}
}
