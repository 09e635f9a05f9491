package resolution

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/queryshape/internal/schema"
)

func TestDecorateType(t *testing.T) {
	type testCase struct {
		name       string
		qualifiers []TypeQualifier
		want       string
	}

	for _, tc := range []testCase{
		{
			name:       "bare",
			qualifiers: nil,
			want:       "Option<T>",
		},
		{
			name:       "required",
			qualifiers: []TypeQualifier{QualifierRequired},
			want:       "T",
		},
		{
			name:       "list",
			qualifiers: []TypeQualifier{QualifierList},
			want:       "Option<List<Option<T>>>",
		},
		{
			name:       "list_of_required",
			qualifiers: []TypeQualifier{QualifierList, QualifierRequired},
			want:       "Option<List<T>>",
		},
		{
			name:       "required_list",
			qualifiers: []TypeQualifier{QualifierRequired, QualifierList},
			want:       "List<Option<T>>",
		},
		{
			name:       "required_list_of_required",
			qualifiers: []TypeQualifier{QualifierRequired, QualifierList, QualifierRequired},
			want:       "List<T>",
		},
		{
			name:       "nested_lists",
			qualifiers: []TypeQualifier{QualifierRequired, QualifierList, QualifierList, QualifierRequired},
			want:       "List<Option<List<T>>>",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			node, err := DecorateType("T", tc.qualifiers)
			require.NoError(t, err)
			require.Equal(t, tc.want, node.String())
		})
	}
}

func TestDecorateTypeDoubleRequired(t *testing.T) {
	_, err := DecorateType("T", []TypeQualifier{QualifierRequired, QualifierRequired})
	require.Error(t, err)
	genErr := &GenerateError{}
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, ErrMalformedQualifiers, genErr.Kind)

	// Double-required below a list is just as malformed.
	_, err = DecorateType("T", []TypeQualifier{QualifierList, QualifierRequired, QualifierRequired})
	require.Error(t, err)
}

func TestDecorateTypeDeterministic(t *testing.T) {
	qualifiers := []TypeQualifier{QualifierRequired, QualifierList, QualifierRequired}
	first, err := DecorateType("T", qualifiers)
	require.NoError(t, err)
	second, err := DecorateType("T", qualifiers)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("decoration not deterministic (-first +second):\n%s", diff)
	}
}

func TestQualifiersOf(t *testing.T) {
	// [ID!]! flattens outer-to-inner.
	ref := schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("ID"))))
	name, qualifiers := QualifiersOf(ref)
	require.Equal(t, "ID", name)
	require.Equal(t, []TypeQualifier{QualifierRequired, QualifierList, QualifierRequired}, qualifiers)

	name, qualifiers = QualifiersOf(schema.NamedType("String"))
	require.Equal(t, "String", name)
	require.Empty(t, qualifiers)
}
