package graph

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

//go:embed schema.graphqls
var schemaSDL string

// Schema is the parsed query schema served at /graphql.
var Schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})

// fieldOverrides maps GraphQL fields whose value is not a plain struct field.
var fieldOverrides = map[string]map[string]func(reflect.Value) reflect.Value{
	"AirQuality": {
		"pollutants": func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(v.Interface().(models.AirQuality).Readings())
		},
	},
}

// Operation is a parsed and validated request, ready to run.
type Operation struct {
	opCtx *graphql.OperationContext
}

// Name is the selected operation name, or "anonymous".
func (o *Operation) Name() string {
	if o.opCtx.Operation.Name != "" {
		return o.opCtx.Operation.Name
	}
	return "anonymous"
}

// Executor runs read-only query operations against the resolver. Values are completed by
// reflection over json struct tags, so the wire shape matches the REST bodies.
type Executor struct {
	schema   *ast.Schema
	resolver *Resolver
}

func NewExecutor(resolver *Resolver) *Executor {
	return &Executor{schema: Schema, resolver: resolver}
}

// Prepare parses the query, selects the operation and coerces its variables.
func (e *Executor) Prepare(params *graphql.RawParams) (*Operation, gqlerror.List) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, gqlerror.List{gqlerror.Errorf("no query provided")}
	}

	doc, errs := gqlparser.LoadQuery(e.schema, params.Query)
	if len(errs) > 0 {
		return nil, errs
	}

	op := doc.Operations.ForName(params.OperationName)
	if op == nil {
		if params.OperationName == "" {
			return nil, gqlerror.List{gqlerror.Errorf("operation name is required when the document has several operations")}
		}
		return nil, gqlerror.List{gqlerror.Errorf("operation %s not found", params.OperationName)}
	}
	if op.Operation != ast.Query {
		return nil, gqlerror.List{gqlerror.Errorf("%s operations are not supported", op.Operation)}
	}

	vars, err := validator.VariableValues(e.schema, op, params.Variables)
	if err != nil {
		var gqlErr *gqlerror.Error
		if errors.As(err, &gqlErr) {
			return nil, gqlerror.List{gqlErr}
		}
		return nil, gqlerror.List{gqlerror.Errorf("%s", err.Error())}
	}

	return &Operation{opCtx: &graphql.OperationContext{
		RawQuery:      params.Query,
		Variables:     vars,
		OperationName: params.OperationName,
		Doc:           doc,
		Operation:     op,
	}}, nil
}

// Run resolves every root field of op. A failing nullable field resolves to null with an
// error; a failing non-null field nulls the whole data object.
func (e *Executor) Run(ctx context.Context, op *Operation) *graphql.Response {
	data := &object{}
	var errs gqlerror.List
	nullData := false

	for _, field := range graphql.CollectFields(op.opCtx, op.opCtx.Operation.SelectionSet, []string{"Query"}) {
		key := responseKey(field)
		if field.Name == "__typename" {
			data.set(key, "Query")
			continue
		}

		value, err := e.resolveRoot(ctx, field, field.ArgumentMap(op.opCtx.Variables))
		if err == nil {
			value, err = e.complete(op.opCtx, field.Definition.Type, field.Selections, reflect.ValueOf(value))
		}
		if err != nil {
			gqlErr := gqlerror.Errorf("%s", err.Error())
			gqlErr.Path = ast.Path{ast.PathName(key)}
			errs = append(errs, gqlErr)
			if field.Definition.Type.NonNull {
				nullData = true
			}
			data.set(key, nil)
			continue
		}
		data.set(key, value)
	}

	var raw []byte
	var err error
	if nullData {
		raw = []byte("null")
	} else if raw, err = json.Marshal(data); err != nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("encoding response: %s", err)}}
	}
	return &graphql.Response{Data: raw, Errors: errs}
}

// Execute prepares and runs params in one step.
func (e *Executor) Execute(ctx context.Context, params *graphql.RawParams) *graphql.Response {
	op, errs := e.Prepare(params)
	if len(errs) > 0 {
		return &graphql.Response{Errors: errs}
	}
	return e.Run(ctx, op)
}

func (e *Executor) resolveRoot(ctx context.Context, field graphql.CollectedField, args map[string]interface{}) (interface{}, error) {
	q := e.resolver.Query()

	switch field.Name {
	case "__schema", "__type":
		return nil, fmt.Errorf("introspection is not supported")
	case "stations":
		return q.Stations(ctx, optionalString(args, "state"))
	case "station":
		return q.Station(ctx, requiredString(args, "id"))
	case "nearestStations":
		lat, err := floatArg(args, "lat")
		if err != nil {
			return nil, err
		}
		lon, err := floatArg(args, "lon")
		if err != nil {
			return nil, err
		}
		limit, err := optionalInt(args, "limit")
		if err != nil {
			return nil, err
		}
		return q.NearestStations(ctx, lat, lon, limit)
	case "currentConditions":
		return q.CurrentConditions(ctx, requiredString(args, "stationId"), optionalString(args, "unit"))
	case "dailyForecast":
		days, err := optionalInt(args, "days")
		if err != nil {
			return nil, err
		}
		return q.DailyForecast(ctx, requiredString(args, "stationId"), days)
	case "hourlyForecast":
		hours, err := optionalInt(args, "hours")
		if err != nil {
			return nil, err
		}
		return q.HourlyForecast(ctx, requiredString(args, "stationId"), hours)
	case "activeAlerts":
		return q.ActiveAlerts(ctx, optionalString(args, "stationId"), optionalString(args, "minSeverity"))
	case "airQuality":
		return q.AirQuality(ctx, requiredString(args, "stationId"))
	default:
		return nil, fmt.Errorf("unknown field %s", field.Name)
	}
}

// complete shapes a resolved Go value into the JSON-ready form of typ.
func (e *Executor) complete(opCtx *graphql.OperationContext, typ *ast.Type, sel ast.SelectionSet, v reflect.Value) (interface{}, error) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, nil
	}

	if typ.Elem != nil {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected a list for %s, got %s", typ.String(), v.Kind())
		}
		items := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := e.complete(opCtx, typ.Elem, sel, v.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	}

	def := e.schema.Types[typ.NamedType]
	if def == nil {
		return nil, fmt.Errorf("unknown type %s", typ.NamedType)
	}

	switch def.Kind {
	case ast.Enum:
		return models.ScreamingSnake(v.String()), nil
	case ast.Scalar:
		return v.Interface(), nil
	case ast.Object:
		out := &object{}
		for _, field := range graphql.CollectFields(opCtx, sel, []string{def.Name}) {
			key := responseKey(field)
			if field.Name == "__typename" {
				out.set(key, def.Name)
				continue
			}
			fv, ok := lookupField(def.Name, v, field.Name)
			if !ok {
				return nil, fmt.Errorf("no value for %s.%s", def.Name, field.Name)
			}
			value, err := e.complete(opCtx, field.Definition.Type, field.Selections, fv)
			if err != nil {
				return nil, err
			}
			out.set(key, value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot complete %s of kind %s", def.Name, def.Kind)
	}
}

func responseKey(field graphql.CollectedField) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}

// lookupField finds the struct field whose json name is name, descending into embedded
// structs the way encoding/json flattens them.
func lookupField(typeName string, v reflect.Value, name string) (reflect.Value, bool) {
	if override, ok := fieldOverrides[typeName][name]; ok {
		return override(v), true
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := strings.Split(sf.Tag.Get("json"), ",")[0]
		if sf.Anonymous && tag == "" && sf.Type.Kind() == reflect.Struct {
			if fv, ok := lookupField("", v.Field(i), name); ok {
				return fv, true
			}
			continue
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// object is a JSON object that keeps its keys in selection order.
type object struct {
	keys   []string
	values []interface{}
}

func (o *object) set(key string, value interface{}) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
