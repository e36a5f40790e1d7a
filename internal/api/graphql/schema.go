package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
)

//go:embed schema.graphqls
var schemaSDL string

// executableSchema serves the read-only query schema over the shared executor
type executableSchema struct {
	// Complexity is not served, no complexity limit is installed on the server
	graphql.ExecutableSchema

	schema   *ast.Schema
	resolver *Resolver
}

// NewExecutableSchema parses the query schema and binds it to the resolver
func NewExecutableSchema(resolver *Resolver) (graphql.ExecutableSchema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})
	if err != nil {
		return nil, fmt.Errorf("failed to load GraphQL schema: %w", err)
	}

	return &executableSchema{
		schema:   schema,
		resolver: resolver,
	}, nil
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	if opCtx.Operation.Operation != ast.Query {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported operation: %s", opCtx.Operation.Operation))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		var buf bytes.Buffer
		e.execQuery(ctx, &buf, opCtx.Operation.SelectionSet, opCtx.Variables)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

// execQuery resolves the root fields in selection order
func (e *executableSchema) execQuery(ctx context.Context, buf *bytes.Buffer, sel ast.SelectionSet, vars map[string]interface{}) {
	buf.WriteByte('{')
	for i, f := range collectFields(sel, vars) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, f.Alias)

		path := ast.Path{ast.PathName(f.Alias)}
		switch {
		case f.Name == "__typename":
			buf.WriteString(strconv.Quote(e.schema.Query.Name))
			continue
		case strings.HasPrefix(f.Name, "__"):
			graphql.AddError(ctx, gqlerror.ErrorPathf(path, "introspection is not supported"))
			buf.WriteString("null")
			continue
		}

		value, err := e.resolver.resolveQuery(ctx, f.Name, f.ArgumentMap(vars))
		if err == nil {
			value, err = toJSONValue(value)
		}
		if err != nil {
			graphql.AddError(ctx, gqlerror.WrapPath(path, err))
			buf.WriteString("null")
			continue
		}

		e.writeValue(ctx, buf, path, f.Definition.Type, f.SelectionSet, value, vars)
	}
	buf.WriteByte('}')
}

// writeValue writes v projected onto the selection of type typ
func (e *executableSchema) writeValue(ctx context.Context, buf *bytes.Buffer, path ast.Path, typ *ast.Type, sel ast.SelectionSet, v interface{}, vars map[string]interface{}) {
	if v == nil {
		buf.WriteString("null")
		return
	}

	if typ.Elem != nil {
		items, ok := v.([]interface{})
		if !ok {
			buf.WriteString("null")
			return
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.writeValue(ctx, buf, extendPath(path, ast.PathIndex(i)), typ.Elem, sel, item, vars)
		}
		buf.WriteByte(']')
		return
	}

	def := e.schema.Types[typ.NamedType]
	switch def.Kind {
	case ast.Object:
		obj, ok := v.(map[string]interface{})
		if !ok {
			buf.WriteString("null")
			return
		}
		buf.WriteByte('{')
		for i, f := range collectFields(sel, vars) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(buf, f.Alias)
			if f.Name == "__typename" {
				buf.WriteString(strconv.Quote(def.Name))
				continue
			}
			e.writeValue(ctx, buf, extendPath(path, ast.PathName(f.Alias)), f.Definition.Type, f.SelectionSet, obj[f.Name], vars)
		}
		buf.WriteByte('}')

	case ast.Scalar, ast.Enum:
		var leaf bytes.Buffer
		if err := marshalScalar(&leaf, def.Name, v); err != nil {
			graphql.AddError(ctx, gqlerror.WrapPath(path, apierrors.NewInternalError(err.Error())))
			buf.WriteString("null")
			return
		}
		buf.Write(leaf.Bytes())

	default:
		buf.WriteString("null")
	}
}

// collectFields flattens fragments and applies @skip and @include
func collectFields(sel ast.SelectionSet, vars map[string]interface{}) []*ast.Field {
	var fields []*ast.Field
	for _, s := range sel {
		switch s := s.(type) {
		case *ast.Field:
			if included(s.Directives, vars) {
				fields = append(fields, s)
			}
		case *ast.InlineFragment:
			if included(s.Directives, vars) {
				fields = append(fields, collectFields(s.SelectionSet, vars)...)
			}
		case *ast.FragmentSpread:
			if included(s.Directives, vars) && s.Definition != nil {
				fields = append(fields, collectFields(s.Definition.SelectionSet, vars)...)
			}
		}
	}
	return fields
}

func included(directives ast.DirectiveList, vars map[string]interface{}) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

// toJSONValue converts a resolver result into its decoded JSON form
func toJSONValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return out, nil
}

// extendPath returns a new path so sibling fields never share a backing array
func extendPath(path ast.Path, el ast.PathElement) ast.Path {
	next := make(ast.Path, len(path), len(path)+1)
	copy(next, path)
	return append(next, el)
}

func writeKey(buf *bytes.Buffer, key string) {
	buf.WriteString(strconv.Quote(key))
	buf.WriteByte(':')
}
