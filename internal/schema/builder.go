package schema

import (
	"fmt"

	"github.com/hanpama/queryshape/internal/language"
)

// BuildFromAST projects a validated gqlparser schema into the resolved
// view the generator consumes. Prelude types (built-in scalars and the
// introspection machinery) are carried over with BuiltIn set so that
// downstream passes can tell them apart from user-declared types.
func BuildFromAST(src *language.Schema) (*Schema, error) {
	s := &Schema{Types: make(map[string]*Type, len(src.Types))}
	if src.Query != nil {
		s.QueryType = src.Query.Name
	}
	if src.Mutation != nil {
		s.MutationType = src.Mutation.Name
	}
	if src.Subscription != nil {
		s.SubscriptionType = src.Subscription.Name
	}

	for name, def := range src.Types {
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		for _, pt := range src.PossibleTypes[name] {
			t.PossibleTypes = append(t.PossibleTypes, pt.Name)
		}
		s.Types[name] = t
	}
	return s, nil
}

func buildType(def *language.Definition) (*Type, error) {
	t := &Type{
		Name:        def.Name,
		Description: def.Description,
		BuiltIn:     def.BuiltIn,
		Interfaces:  def.Interfaces,
	}
	switch def.Kind {
	case language.Scalar:
		t.Kind = TypeKindScalar
	case language.Enum:
		t.Kind = TypeKindEnum
		for _, v := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, &EnumValue{Name: v.Name, Description: v.Description})
		}
	case language.Object, language.Interface:
		if def.Kind == language.Object {
			t.Kind = TypeKindObject
		} else {
			t.Kind = TypeKindInterface
		}
		for _, f := range def.Fields {
			field := &Field{
				Name:        f.Name,
				Description: f.Description,
				Type:        buildTypeRef(f.Type),
			}
			for _, arg := range f.Arguments {
				iv := &InputValue{Name: arg.Name, Description: arg.Description, Type: buildTypeRef(arg.Type)}
				if arg.DefaultValue != nil {
					iv.HasDefault = true
					iv.DefaultValue = arg.DefaultValue.String()
				}
				field.Arguments = append(field.Arguments, iv)
			}
			t.Fields = append(t.Fields, field)
		}
	case language.Union:
		t.Kind = TypeKindUnion
	case language.InputObject:
		t.Kind = TypeKindInputObject
		for _, f := range def.Fields {
			iv := &InputValue{Name: f.Name, Description: f.Description, Type: buildTypeRef(f.Type)}
			if f.DefaultValue != nil {
				iv.HasDefault = true
				iv.DefaultValue = f.DefaultValue.String()
			}
			t.InputFields = append(t.InputFields, iv)
		}
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for type %q", def.Kind, def.Name)
	}
	return t, nil
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{
			NamedType: t.NamedType,
			Elem:      t.Elem,
			Position:  t.Position,
		}))
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	return NamedType(t.NamedType)
}
