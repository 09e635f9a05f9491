package resolution

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/queryshape/internal/language"
	"github.com/hanpama/queryshape/internal/schema"
)

const testSDL = `
scalar DateTime

enum Episode {
  NEWHOPE
  EMPIRE
  JEDI
}

interface Node {
  id: ID!
}

type User implements Node {
  id: ID!
  name: String
  friends: [User!]
  joined: DateTime
}

type Droid implements Node {
  id: ID!
  primaryFunction: String
}

union SearchResult = User | Droid

input ReviewInput {
  stars: Int!
  commentary: String
  favorite: Episode
  related: ReviewInput
}

type Query {
  node(id: ID!): Node
  search(term: String!): [SearchResult!]!
  user(id: ID!): User
  episode: Episode
}

type Mutation {
  createReview(episode: Episode!, review: ReviewInput!): Episode
}
`

type testEnv struct {
	ast      *language.Schema
	resolved *schema.Schema
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	astSchema, err := language.LoadSchema(&language.Source{Name: "schema.graphql", Input: testSDL})
	require.NoError(t, err, "failed to load test schema")
	resolved, err := schema.BuildFromAST(astSchema)
	require.NoError(t, err, "failed to build resolved schema")
	return &testEnv{ast: astSchema, resolved: resolved}
}

// loadOperation validates the query against the schema before wrapping
// its first operation, matching what generation assumes in production.
func (e *testEnv) loadOperation(t *testing.T, query string) *Operation {
	t.Helper()
	doc, err := language.LoadQuery(e.ast, query)
	require.NoError(t, err, "failed to load test query")
	require.NotEmpty(t, doc.Operations)
	return NewOperation(doc, doc.Operations[0])
}

// parseOperation skips validation so tests can probe how generation
// reports schema/query mismatches that a validator would catch.
func (e *testEnv) parseOperation(t *testing.T, query string) *Operation {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err, "failed to parse test query")
	require.NotEmpty(t, doc.Operations)
	return NewOperation(doc, doc.Operations[0])
}

func definitionByName(out *Output, name string) *Definition {
	for _, def := range out.Definitions {
		if def.Name == name {
			return def
		}
	}
	return nil
}

func definitionNames(out *Output) []string {
	names := make([]string, 0, len(out.Definitions))
	for _, def := range out.Definitions {
		names = append(names, def.Name)
	}
	return names
}
