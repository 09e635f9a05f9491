package schema

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/queryshape/internal/language"
)

func buildTestSchema(t *testing.T) *Schema {
	t.Helper()
	sdl, err := os.ReadFile("testdata/schema.graphql")
	require.NoError(t, err, "failed to read test schema")
	src, err := language.LoadSchema(&language.Source{Name: "schema.graphql", Input: string(sdl)})
	require.NoError(t, err, "failed to load test schema")
	s, err := BuildFromAST(src)
	require.NoError(t, err, "failed to build schema")
	return s
}

func TestBuildFromASTRoots(t *testing.T) {
	s := buildTestSchema(t)

	require.Equal(t, "Query", s.QueryType)
	require.Equal(t, "Mutation", s.MutationType)
	require.Empty(t, s.SubscriptionType)
	require.NotNil(t, s.GetQueryType())
	require.NotNil(t, s.GetMutationType())
	require.Nil(t, s.GetSubscriptionType())
}

func TestBuildFromASTKinds(t *testing.T) {
	s := buildTestSchema(t)

	for name, kind := range map[string]TypeKind{
		"DateTime":     TypeKindScalar,
		"Episode":      TypeKindEnum,
		"Node":         TypeKindInterface,
		"User":         TypeKindObject,
		"SearchResult": TypeKindUnion,
		"ReviewInput":  TypeKindInputObject,
	} {
		typ, ok := s.Types[name]
		require.True(t, ok, "type %s missing", name)
		require.Equal(t, kind, typ.Kind, "type %s", name)
		require.False(t, typ.BuiltIn)
	}

	// The prelude rides along, flagged as built in.
	str := s.Types["String"]
	require.NotNil(t, str)
	require.True(t, str.BuiltIn)
	require.Equal(t, "An instant in time.", s.Types["DateTime"].Description)
}

func TestBuildFromASTFields(t *testing.T) {
	s := buildTestSchema(t)
	user := s.Types["User"]
	require.NotNil(t, user)

	id := user.GetField("id")
	require.NotNil(t, id)
	want := NonNullType(NamedType("ID"))
	if diff := cmp.Diff(want, id.Type); diff != "" {
		t.Errorf("id type mismatch (-want +got):\n%s", diff)
	}

	friends := user.GetField("friends")
	require.NotNil(t, friends)
	want = ListType(NonNullType(NamedType("User")))
	if diff := cmp.Diff(want, friends.Type); diff != "" {
		t.Errorf("friends type mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, friends.Arguments, 1)
	require.Equal(t, "first", friends.Arguments[0].Name)
	require.True(t, friends.Arguments[0].HasDefault)
	require.Equal(t, "10", friends.Arguments[0].DefaultValue)

	require.Nil(t, user.GetField("missing"))
	require.Equal(t, []string{"Node"}, user.Interfaces)
}

func TestBuildFromASTInputFields(t *testing.T) {
	s := buildTestSchema(t)
	input := s.Types["ReviewInput"]
	require.NotNil(t, input)
	require.Len(t, input.InputFields, 3)

	stars := input.InputFields[0]
	require.Equal(t, "stars", stars.Name)
	require.True(t, stars.Type.IsNonNull())
	require.False(t, stars.HasDefault)

	commentary := input.InputFields[1]
	require.Equal(t, "commentary", commentary.Name)
	require.True(t, commentary.HasDefault)
	require.Equal(t, `"none"`, commentary.DefaultValue)

	// Self reference resolves by name, not by cycle expansion.
	related := input.InputFields[2]
	require.Equal(t, "ReviewInput", related.Type.GetNamedType())
}

func TestPossibleTypes(t *testing.T) {
	s := buildTestSchema(t)

	node := s.Types["Node"]
	require.ElementsMatch(t, []string{"User", "Droid"}, node.PossibleTypes)
	require.True(t, s.IsPossibleType(node, "User"))
	require.False(t, s.IsPossibleType(node, "Node"))

	user := s.Types["User"]
	require.True(t, s.IsPossibleType(user, "User"))
	require.False(t, s.IsPossibleType(user, "Droid"))
}

func TestIsSubtypeOf(t *testing.T) {
	s := buildTestSchema(t)
	node := s.Types["Node"]
	user := s.Types["User"]
	droid := s.Types["Droid"]
	search := s.Types["SearchResult"]

	require.True(t, s.IsSubtypeOf(user, user))
	require.True(t, s.IsSubtypeOf(user, node))
	require.True(t, s.IsSubtypeOf(droid, search))
	require.False(t, s.IsSubtypeOf(node, user))
	require.False(t, s.IsSubtypeOf(search, user))
}

func TestTypePredicates(t *testing.T) {
	s := buildTestSchema(t)

	require.True(t, s.Types["User"].IsComposite())
	require.True(t, s.Types["Node"].IsComposite())
	require.True(t, s.Types["SearchResult"].IsComposite())
	require.False(t, s.Types["Episode"].IsComposite())
	require.False(t, s.Types["ReviewInput"].IsComposite())

	require.True(t, s.Types["Node"].IsAbstract())
	require.True(t, s.Types["SearchResult"].IsAbstract())
	require.False(t, s.Types["User"].IsAbstract())

	require.Equal(t, "__typename", s.Types["User"].Discriminant())
}
