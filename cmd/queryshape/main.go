package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/hanpama/queryshape/internal/gogen"
	"github.com/hanpama/queryshape/internal/language"
	"github.com/hanpama/queryshape/internal/resolution"
	"github.com/hanpama/queryshape/internal/schema"
)

const rootUsage = `queryshape — typed shapes for GraphQL operations

USAGE:
  queryshape <command> [flags]

COMMANDS:
  generate         Generate Go types for each operation in the query documents
  inspect          Print the resolved definition catalog for each operation as JSON
  help             Show help for any command
`

const generateUsage = `generate FLAGS:
  -s <file>                  GraphQL SDL file. Repeatable; at least one required.
  -q <file>                  GraphQL query document. Repeatable; at least one required.
  -out <dir>                 Output directory for generated Go files (required)
  -pkg <name>                Go package name for generated files (default: queries)
  -scalar <Name=pkg.Type>    Map a custom scalar to an external Go type. Repeatable.
                             Unmapped scalars become json.RawMessage.
  -response-derive <name>    Annotation to attach to response types. Repeatable.
  -variable-derive <name>    Annotation to attach to variable/input types. Repeatable.
`

const inspectUsage = `inspect FLAGS:
  -s <file>                  GraphQL SDL file. Repeatable; at least one required.
  -q <file>                  GraphQL query document. Repeatable; at least one required.
  -scalar <Name=pkg.Type>    Map a custom scalar to an external Go type. Repeatable.
  (Catalog JSON is written to stdout, one document per operation)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("queryshape", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs)
	case "inspect":
		return cmdInspect(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "generate":
		fmt.Print(generateUsage)
	case "inspect":
		fmt.Print(inspectUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type mappingFlag struct {
	m map[string]string
}

func (f *mappingFlag) String() string { return "" }

func (f *mappingFlag) Set(v string) error {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid scalar mapping %q", v)
	}
	name := strings.TrimSpace(parts[0])
	target := strings.TrimSpace(parts[1])
	if name == "" || target == "" {
		return fmt.Errorf("invalid scalar mapping %q", v)
	}
	if f.m == nil {
		f.m = map[string]string{}
	}
	f.m[name] = target
	return nil
}

func cmdGenerate(args []string) error {
	var schemaFiles, queryFiles, responseDerives, variableDerives stringListFlag
	var scalars mappingFlag
	outDir := ""
	pkgName := "queries"

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "s", "GraphQL SDL file")
	fs.Var(&queryFiles, "q", "GraphQL query document")
	fs.StringVar(&outDir, "out", outDir, "Output directory")
	fs.StringVar(&pkgName, "pkg", pkgName, "Go package name")
	fs.Var(&scalars, "scalar", "Scalar mapping Name=pkg.Type")
	fs.Var(&responseDerives, "response-derive", "Response type annotation")
	fs.Var(&variableDerives, "variable-derive", "Variable type annotation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, generateUsage)
		return err
	}
	if len(schemaFiles) == 0 || len(queryFiles) == 0 || outDir == "" {
		fmt.Fprint(os.Stderr, generateUsage)
		return fmt.Errorf("-s, -q and -out are required")
	}

	opts := resolution.Options{
		ResponseDerives: responseDerives,
		VariableDerives: variableDerives,
		ScalarTypes:     scalars.m,
	}
	return forEachOperation(schemaFiles, queryFiles, opts, func(out *resolution.Output) error {
		name := out.OperationName
		if name == "" {
			return fmt.Errorf("cannot generate a file for an unnamed operation; name every operation")
		}
		path := filepath.Join(outDir, strcase.ToSnake(name)+".go")
		if err := gogen.File(pkgName, out).Save(path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		return nil
	})
}

func cmdInspect(args []string) error {
	var schemaFiles, queryFiles stringListFlag
	var scalars mappingFlag

	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "s", "GraphQL SDL file")
	fs.Var(&queryFiles, "q", "GraphQL query document")
	fs.Var(&scalars, "scalar", "Scalar mapping Name=pkg.Type")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, inspectUsage)
		return err
	}
	if len(schemaFiles) == 0 || len(queryFiles) == 0 {
		fmt.Fprint(os.Stderr, inspectUsage)
		return fmt.Errorf("-s and -q are required")
	}

	opts := resolution.Options{ScalarTypes: scalars.m}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return forEachOperation(schemaFiles, queryFiles, opts, func(out *resolution.Output) error {
		return enc.Encode(out)
	})
}

// forEachOperation loads and validates the schema and query documents,
// then runs one independent generation pass per operation.
func forEachOperation(schemaFiles, queryFiles []string, opts resolution.Options, fn func(*resolution.Output) error) error {
	var sources []*language.Source
	for _, file := range schemaFiles {
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", file, err)
		}
		sources = append(sources, &language.Source{Name: file, Input: string(b)})
	}
	astSchema, err := language.LoadSchema(sources...)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	resolved, err := schema.BuildFromAST(astSchema)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	for _, file := range queryFiles {
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read query %s: %w", file, err)
		}
		doc, err := language.LoadQuery(astSchema, string(b))
		if err != nil {
			return fmt.Errorf("load query %s: %w", file, err)
		}
		for _, opDef := range doc.Operations {
			out, err := resolution.Generate(resolved, resolution.NewOperation(doc, opDef), opts)
			if err != nil {
				return fmt.Errorf("operation %q: %w", opDef.Name, err)
			}
			if err := fn(out); err != nil {
				return err
			}
		}
	}
	return nil
}
