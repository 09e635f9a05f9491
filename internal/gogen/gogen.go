// Package gogen renders a resolved definition catalog as Go source.
// It is one possible renderer for the language-neutral definitions the
// resolution package produces; nothing in the core depends on it.
package gogen

import (
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"

	"github.com/hanpama/queryshape/internal/resolution"
)

// File renders one operation's typed surface into a single Go file.
func File(pkgName string, out *resolution.Output) *jen.File {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by queryshape - DO NOT EDIT")

	for _, def := range out.Definitions {
		switch {
		case def.Alias != nil:
			genAlias(f, def)
		case def.Enum != nil:
			genEnum(f, def)
		case def.Union != nil:
			genUnion(f, def)
		case def.Record != nil:
			genRecord(f, def)
		}
	}
	genDefaults(f, out.Defaults)
	return f
}

// genAlias emits a custom scalar as a type alias. Unmapped scalars
// stay opaque: the raw JSON is handed through untouched.
func genAlias(f *jen.File, def *resolution.Definition) {
	f.Type().Id(def.Name).Op("=").Add(externalType(def.Alias.Target)).Line()
}

func externalType(target string) jen.Code {
	if target == "" {
		return jen.Qual("encoding/json", "RawMessage")
	}
	dot := strings.LastIndex(target, ".")
	if dot < 0 {
		return jen.Id(target)
	}
	return jen.Qual(target[:dot], target[dot+1:])
}

// genEnum emits a string-backed enum with one constant per declared
// value and a catch-all constant. Decoding folds values the schema
// grew after generation into the catch-all instead of failing.
func genEnum(f *jen.File, def *resolution.Definition) {
	f.Type().Id(def.Name).String()

	var consts []jen.Code
	var knownCases []jen.Code
	for _, val := range def.Enum.Values {
		constName := def.Name + strcase.ToCamel(strings.ToLower(val.Name))
		c := jen.Id(constName).Id(def.Name).Op("=").Lit(val.Name)
		if val.Description != "" {
			c = jen.Comment(val.Description).Line().Add(c)
		}
		consts = append(consts, c)
		knownCases = append(knownCases, jen.Id(constName))
	}
	unknownName := def.Name + def.Enum.UnknownVariant
	consts = append(consts, jen.Comment(unknownName+" holds any value added to the schema after this code was generated.").
		Line().Id(unknownName).Id(def.Name).Op("=").Lit(""))
	f.Const().Defs(consts...)

	f.Func().Params(jen.Id("v").Op("*").Id(def.Name)).Id("UnmarshalJSON").Params(
		jen.Id("b").Index().Byte(),
	).Params(jen.Id("error")).Block(
		jen.Var().Id("s").String(),
		jen.If(
			jen.Id("err").Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("s")),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err"))),
		jen.Switch(jen.Id(def.Name).Call(jen.Id("s"))).Block(
			jen.Case(knownCases...).Block(
				jen.Op("*").Id("v").Op("=").Id(def.Name).Call(jen.Id("s")),
			),
			jen.Default().Block(
				jen.Op("*").Id("v").Op("=").Id(unknownName),
			),
		),
		jen.Return(jen.Nil()),
	).Line()
}

// genRecord emits a struct with one field per record field. Flattened
// members (fragment references and the On union) are excluded from
// the first decoding pass and re-decoded from the same bytes, which
// merges their keys into the record's own serialized level.
func genRecord(f *jen.File, def *resolution.Definition) {
	var fields []jen.Code
	var flattened []string
	for _, rf := range def.Record.Fields {
		goName := exportedName(rf.Name)
		if rf.Flatten {
			fields = append(fields, jen.Id(goName).Id(rf.Type.Named).Tag(map[string]string{"json": "-"}))
			flattened = append(flattened, goName)
			continue
		}
		jsonTag := rf.WireName
		if rf.Type.Kind == resolution.TypeNodeOption {
			jsonTag += ",omitempty"
		}
		fields = append(fields, jen.Id(goName).Add(genTypeNode(rf.Type)).Tag(map[string]string{"json": jsonTag}))
	}
	f.Type().Id(def.Name).Struct(fields...).Line()

	if len(flattened) == 0 {
		return
	}
	stmts := []jen.Code{
		jen.Type().Id("wire").Id(def.Name),
		jen.Var().Id("w").Id("wire"),
		jen.If(
			jen.Id("err").Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("w")),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err"))),
		jen.Op("*").Id("v").Op("=").Id(def.Name).Call(jen.Id("w")),
	}
	for i, name := range flattened {
		call := jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("v").Dot(name))
		if i == len(flattened)-1 {
			stmts = append(stmts, jen.Return(call))
			continue
		}
		stmts = append(stmts, jen.If(
			jen.Id("err").Op(":=").Add(call),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err"))))
	}
	f.Func().Params(jen.Id("v").Op("*").Id(def.Name)).Id("UnmarshalJSON").Params(
		jen.Id("b").Index().Byte(),
	).Params(jen.Id("error")).Block(stmts...).Line()
}

// genUnion emits the tagged union for a polymorphic selection as a
// discriminant/value pair with a decoding switch. A concrete type no
// variant matches leaves Value nil; a missing discriminant is an
// error because the response cannot be classified at all.
func genUnion(f *jen.File, def *resolution.Definition) {
	var variantNames []string
	for _, v := range def.Union.Variants {
		variantNames = append(variantNames, v.TypeCondition)
	}
	f.Type().Id(def.Name).Struct(
		jen.Comment(strings.Join(variantNames, " | ")),
		jen.Id("TypeName").String(),
		jen.Id("Value").Interface(),
	).Line()

	var cases []jen.Code
	for _, v := range def.Union.Variants {
		cases = append(cases, jen.Case(jen.Lit(v.TypeCondition)).Block(
			jen.Id("union").Dot("Value").Op("=").New(jen.Id(v.Shape)),
		))
	}
	errPrefix := "queryshape: union " + def.Name + ": "
	cases = append(cases,
		jen.Case(jen.Lit("")).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(errPrefix+"missing "+def.Union.Discriminant+" field"))),
		),
		jen.Default().Block(
			jen.Return(jen.Nil()),
		),
	)

	f.Func().Params(
		jen.Id("union").Op("*").Id(def.Name),
	).Id("UnmarshalJSON").Params(
		jen.Id("b").Index().Byte(),
	).Params(
		jen.Id("error"),
	).Block(
		jen.Var().Id("data").Struct(
			jen.Id("Type").String().Tag(map[string]string{"json": def.Union.Discriminant}),
		),
		jen.If(
			jen.Id("err").Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("data")),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err"))),
		jen.Id("union").Dot("TypeName").Op("=").Id("data").Dot("Type"),
		jen.Switch(jen.Id("data").Dot("Type")).Block(cases...),
		jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(
			jen.Id("b"),
			jen.Id("union").Dot("Value"),
		)),
	).Line()
}

// genDefaults emits one accessor per variable default. Bodies are a
// deliberate obligation for a later stage: the accessor fixes the name
// and type so call sites compile, and panics until filled in.
func genDefaults(f *jen.File, defaults []*resolution.DefaultAccessor) {
	for _, d := range defaults {
		f.Func().Id("Default" + exportedName(d.Variable)).Params().Add(genTypeNode(d.Type)).Block(
			jen.Panic(jen.Lit("default value for variable \"" + d.Variable + "\" is not implemented")),
		).Line()
	}
}

func genTypeNode(n *resolution.TypeNode) jen.Code {
	switch n.Kind {
	case resolution.TypeNodeOption:
		return jen.Op("*").Add(genTypeNode(n.OfType))
	case resolution.TypeNodeList:
		return jen.Index().Add(genTypeNode(n.OfType))
	}
	switch n.Named {
	case "Int":
		return jen.Int32()
	case "Float":
		return jen.Float64()
	case "String", "ID":
		return jen.String()
	case "Boolean":
		return jen.Bool()
	default:
		return jen.Id(n.Named)
	}
}

func exportedName(name string) string {
	return strcase.ToCamel(strings.TrimPrefix(name, "__"))
}
