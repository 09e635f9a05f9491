package gogen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/queryshape/internal/resolution"
)

// render formats the file and collapses whitespace runs, so assertions
// do not depend on gofmt's column alignment.
func render(t *testing.T, out *resolution.Output) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, File("queries", out).Render(&buf), "rendered file must be valid Go")
	return strings.Join(strings.Fields(buf.String()), " ")
}

func option(n *resolution.TypeNode) *resolution.TypeNode { return resolution.OptionOf(n) }

func TestRenderAlias(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "DateTime",
				Category: resolution.CategoryScalar,
				Alias:    &resolution.AliasDef{Target: "time.Time"},
			},
			{
				Name:     "Cursor",
				Category: resolution.CategoryScalar,
				Alias:    &resolution.AliasDef{},
			},
		},
	})

	require.Contains(t, src, "package queries")
	require.Contains(t, src, "Code generated by queryshape - DO NOT EDIT")
	require.Contains(t, src, "type DateTime = time.Time")
	// Unmapped scalars pass raw JSON through.
	require.Contains(t, src, "type Cursor = json.RawMessage")
}

func TestRenderEnum(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "Episode",
				Category: resolution.CategoryEnum,
				Enum: &resolution.EnumDef{
					Values: []*resolution.EnumValueDef{
						{Name: "NEWHOPE"},
						{Name: "EMPIRE"},
					},
					UnknownVariant: "Unknown",
				},
			},
		},
	})

	require.Contains(t, src, "type Episode string")
	require.Contains(t, src, `EpisodeNewhope Episode = "NEWHOPE"`)
	require.Contains(t, src, `EpisodeEmpire Episode = "EMPIRE"`)
	require.Contains(t, src, `EpisodeUnknown Episode = ""`)
	require.Contains(t, src, "func (v *Episode) UnmarshalJSON(b []byte) error")
	require.Contains(t, src, "case EpisodeNewhope, EpisodeEmpire:")
	require.Contains(t, src, "*v = EpisodeUnknown")
}

func TestRenderRecord(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "ResponseDataUser",
				Category: resolution.CategoryResponseObject,
				Record: &resolution.RecordDef{
					Fields: []*resolution.RecordField{
						{Name: "id", WireName: "id", Type: resolution.NamedNode("ID")},
						{Name: "name", WireName: "name", Type: option(resolution.NamedNode("String"))},
						{Name: "friends", WireName: "friends", Type: option(resolution.ListOf(resolution.NamedNode("ResponseDataUserFriends")))},
					},
				},
			},
		},
	})

	require.Contains(t, src, "type ResponseDataUser struct")
	require.Contains(t, src, "Id string `json:\"id\"`")
	require.Contains(t, src, "Name *string `json:\"name,omitempty\"`")
	require.Contains(t, src, "Friends *[]ResponseDataUserFriends `json:\"friends,omitempty\"`")
	// No flattened members, so decoding stays default.
	require.NotContains(t, src, "UnmarshalJSON")
}

func TestRenderRecordFlatten(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "ResponseDataNode",
				Category: resolution.CategoryResponseObject,
				Record: &resolution.RecordDef{
					On: "ResponseDataNodeOn",
					Fields: []*resolution.RecordField{
						{Name: "id", WireName: "id", Type: resolution.NamedNode("ID")},
						{Name: "userFields", Type: resolution.NamedNode("UserFields"), Flatten: true},
						{Name: "on", Type: resolution.NamedNode("ResponseDataNodeOn"), Flatten: true},
					},
				},
			},
		},
	})

	require.Contains(t, src, "UserFields UserFields `json:\"-\"`")
	require.Contains(t, src, "On ResponseDataNodeOn `json:\"-\"`")
	require.Contains(t, src, "func (v *ResponseDataNode) UnmarshalJSON(b []byte) error")
	require.Contains(t, src, "type wire ResponseDataNode")
	require.Contains(t, src, "*v = ResponseDataNode(w)")
	require.Contains(t, src, "json.Unmarshal(b, &v.UserFields)")
	require.Contains(t, src, "return json.Unmarshal(b, &v.On)")
}

func TestRenderUnion(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "ResponseDataNodeOn",
				Category: resolution.CategoryResponseObject,
				Union: &resolution.UnionDef{
					Discriminant: "__typename",
					Variants: []*resolution.UnionVariant{
						{TypeCondition: "User", Shape: "ResponseDataNodeOnUser"},
						{TypeCondition: "Droid", Shape: "ResponseDataNodeOnDroid"},
					},
				},
			},
		},
	})

	require.Contains(t, src, "type ResponseDataNodeOn struct")
	require.Contains(t, src, "// User | Droid")
	require.Contains(t, src, "TypeName string")
	require.Contains(t, src, "Value interface{}")
	require.Contains(t, src, `case "User": union.Value = new(ResponseDataNodeOnUser)`)
	require.Contains(t, src, `case "Droid": union.Value = new(ResponseDataNodeOnDroid)`)
	require.Contains(t, src, `case "":`)
	require.Contains(t, src, "missing __typename field")
	require.Contains(t, src, "union.TypeName = data.Type")
	require.Contains(t, src, "return json.Unmarshal(b, union.Value)")
}

func TestRenderDefaults(t *testing.T) {
	src := render(t, &resolution.Output{
		Defaults: []*resolution.DefaultAccessor{
			{Variable: "episode", Type: resolution.NamedNode("Episode")},
		},
	})

	require.Contains(t, src, "func DefaultEpisode() Episode")
	require.Contains(t, src, `panic("default value for variable \"episode\" is not implemented")`)
}

func TestRenderBuiltinScalars(t *testing.T) {
	src := render(t, &resolution.Output{
		Definitions: []*resolution.Definition{
			{
				Name:     "Variables",
				Category: resolution.CategoryVariables,
				Record: &resolution.RecordDef{
					Fields: []*resolution.RecordField{
						{Name: "first", WireName: "first", Type: resolution.NamedNode("Int")},
						{Name: "score", WireName: "score", Type: resolution.NamedNode("Float")},
						{Name: "ok", WireName: "ok", Type: resolution.NamedNode("Boolean")},
						{Name: "id", WireName: "id", Type: resolution.NamedNode("ID")},
					},
				},
			},
		},
	})

	require.Contains(t, src, "First int32")
	require.Contains(t, src, "Score float64")
	require.Contains(t, src, "Ok bool")
	require.Contains(t, src, "Id string")
}
