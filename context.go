// Package frameql converts optimized relational-algebra plans into
// dataframe computations. A Context owns the registries of named tables
// and user functions, asks the external parser/optimizer for a plan, and
// drives the plan converter over the resulting tree.
package frameql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/internal/log"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/rel"
	"github.com/dshills/FrameQL/sql/rex"
	"github.com/dshills/FrameQL/sql/schema"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// Parameter declares one function parameter with its native type.
type Parameter struct {
	Name string
	Type dataframe.ColumnType
}

// FunctionDescription is a registry entry for a user function. Scalar
// and aggregate functions share one namespace: registering either flavor
// under an existing name replaces the previous entry wholesale.
type FunctionDescription struct {
	Scalar        rex.ScalarFunc
	Aggregate     rel.AggregateFunc
	Parameters    []Parameter
	ReturnType    dataframe.ColumnType
	IsAggregation bool
}

// Context is the main object to communicate with FrameQL. It holds the
// registered tables and functions and converts SQL queries into
// dataframes.
//
// Registries are shared, unsynchronized state: at most one goroutine may
// register tables or functions at a time, and not concurrently with SQL
// calls. SQL calls may run concurrently with each other.
type Context struct {
	tables    map[string]container.DataContainer
	functions map[string]FunctionDescription
	planner   Planner
	relConv   *rel.Converter
	rexConv   *rex.Converter
	logger    log.Logger
	debug     bool
}

// Option configures a Context.
type Option func(*contextConfig)

type contextConfig struct {
	logger  log.Logger
	debug   bool
	relOpts []rel.Option
}

// WithLogger sets the logger used during conversion.
func WithLogger(l log.Logger) Option {
	return func(c *contextConfig) {
		c.logger = l
	}
}

// WithDebug surfaces the external planner's raw diagnostic as the cause
// of parsing errors and logs converted plans.
func WithDebug(debug bool) Option {
	return func(c *contextConfig) {
		c.debug = debug
	}
}

// WithNullOrdering sets the default placement of NULL sort keys.
func WithNullOrdering(n plan.NullOrdering) Option {
	return func(c *contextConfig) {
		c.relOpts = append(c.relOpts, rel.WithNullOrdering(n))
	}
}

// NewContext creates a context backed by the given planner, with the
// default rel and rex plugins registered.
func NewContext(planner Planner, opts ...Option) *Context {
	cfg := contextConfig{logger: log.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	rx := rex.NewConverter()
	return &Context{
		tables:    make(map[string]container.DataContainer),
		functions: make(map[string]FunctionDescription),
		planner:   planner,
		relConv:   rel.NewConverter(rx, cfg.relOpts...),
		rexConv:   rx,
		logger:    cfg.logger,
		debug:     cfg.debug,
	}
}

// RegisterTable makes a dataframe usable as a table in SQL queries under
// the given name. Names are case-insensitive. The frame is stored as it
// is now; re-register after changing it. Re-registration under an
// existing name silently replaces the previous entry.
func (c *Context) RegisterTable(name string, df *dataframe.DataFrame) {
	c.tables[strings.ToLower(name)] = container.New(df, container.NewColumnContainer(df.Columns()))
}

// RegisterFunction registers a scalar function usable in every query
// from now on. The parameter list and return type use native column
// types; they are mapped to SQL types at schema-build time.
func (c *Context) RegisterFunction(name string, fn rex.ScalarFunc, parameters []Parameter, returnType dataframe.ColumnType) {
	c.functions[strings.ToLower(name)] = FunctionDescription{
		Scalar:        fn,
		Parameters:    parameters,
		ReturnType:    returnType,
		IsAggregation: false,
	}
}

// RegisterAggregate registers an aggregation usable in GROUP BY queries.
// The function receives the grouped column values and returns one value
// per group.
func (c *Context) RegisterAggregate(name string, fn rel.AggregateFunc, parameters []Parameter, returnType dataframe.ColumnType) {
	c.functions[strings.ToLower(name)] = FunctionDescription{
		Aggregate:     fn,
		Parameters:    parameters,
		ReturnType:    returnType,
		IsAggregation: true,
	}
}

// RegisterRelPlugin installs a plan-node conversion plugin. Registration
// fails when a plugin for the kind exists, unless replace is set.
func (c *Context) RegisterRelPlugin(p rel.Plugin, replace bool) error {
	return c.relConv.Register(p, replace)
}

// RegisterRexPlugin installs a scalar-expression conversion plugin, with
// the same replace contract as RegisterRelPlugin.
func (c *Context) RegisterRexPlugin(p rex.Plugin, replace bool) error {
	return c.rexConv.Register(p, replace)
}

// SQL queries the registered tables. The query is planned by the
// external planner against a freshly built schema, the plan is converted
// to dataframe operations, and the materialized result is returned with
// user-facing column names.
func (c *Context) SQL(query string) (*dataframe.DataFrame, error) {
	sch, err := c.buildSchema()
	if err != nil {
		return nil, err
	}

	res, err := c.planner.Plan(sch, query)
	if err != nil {
		perr := sqlerr.ParsingError(query, err.Error())
		if c.debug {
			// Chain the planner's raw diagnostic only on request, so the
			// default failure mode stays readable.
			perr = perr.WithCause(err)
		}
		return nil, perr
	}
	if c.debug {
		c.logger.Debug("query planned", "query", query, "plan", res.Root.String())
	}

	dc, err := c.relConv.Convert(res.Root, c)
	if err != nil {
		return nil, err
	}

	if len(res.OutputNames) > 0 {
		dc = humanize(dc, res.OutputNames)
	}
	return dc.Assign()
}

// humanize renames synthetic logical names (EXPR$N) to the user-intended
// output names from the original projection list. Names carried over
// from source columns are already meaningful and stay untouched; an
// output name colliding with a final name gets a numeric suffix so the
// result frame never carries duplicate labels.
func humanize(dc container.DataContainer, outputNames []string) container.DataContainer {
	cols := dc.Columns.Columns()
	used := make(map[string]bool, len(cols))
	for _, col := range cols {
		if !rel.IsSyntheticName(col) {
			used[col] = true
		}
	}
	mapping := make(map[string]string)
	for i, col := range cols {
		if i >= len(outputNames) {
			break
		}
		if !rel.IsSyntheticName(col) {
			continue
		}
		name := outputNames[i]
		for n := 0; used[name]; n++ {
			name = fmt.Sprintf("%s%d", outputNames[i], n)
		}
		used[name] = true
		mapping[col] = name
	}
	return container.New(dc.DF, dc.Columns.Rename(mapping))
}

// buildSchema projects the current registries into the schema shape the
// external planner expects. Built fresh for every query.
func (c *Context) buildSchema() (*schema.Schema, error) {
	s := schema.New("frameql")

	for _, name := range sortedKeys(c.tables) {
		dc := c.tables[name]
		t := schema.Table{Name: name}
		for i, col := range dc.Columns.Columns() {
			series, err := dc.Series(i)
			if err != nil {
				return nil, err
			}
			sqlType, err := types.ToSQLType(series.Type)
			if err != nil {
				return nil, sqlerr.GetError(err).WithTable(name).WithColumn(col)
			}
			t.Columns = append(t.Columns, schema.Column{Name: col, Type: sqlType})
		}
		s.AddTable(t)
	}

	for _, name := range sortedKeys(c.functions) {
		fd := c.functions[name]
		ret, err := types.ToSQLType(fd.ReturnType)
		if err != nil {
			return nil, sqlerr.GetError(err).WithFunction(name)
		}
		f := schema.Function{Name: name, ReturnType: ret}
		for _, p := range fd.Parameters {
			paramType, err := types.ToSQLType(p.Type)
			if err != nil {
				return nil, sqlerr.GetError(err).WithFunction(name)
			}
			f.Parameters = append(f.Parameters, schema.Parameter{Name: p.Name, Type: paramType})
		}
		if fd.IsAggregation {
			s.AddAggregate(f)
		} else {
			s.AddScalar(f)
		}
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table implements rel.Catalog.
func (c *Context) Table(name string) (container.DataContainer, bool) {
	dc, ok := c.tables[name]
	return dc, ok
}

// ScalarFunction implements rex.Functions.
func (c *Context) ScalarFunction(name string) (rex.ScalarFunc, dataframe.ColumnType, bool) {
	fd, ok := c.functions[name]
	if !ok || fd.IsAggregation {
		return nil, dataframe.Any, false
	}
	return fd.Scalar, fd.ReturnType, true
}

// AggregateFunction implements rel.Catalog.
func (c *Context) AggregateFunction(name string) (rel.AggregateFunc, dataframe.ColumnType, bool) {
	fd, ok := c.functions[name]
	if !ok || !fd.IsAggregation {
		return nil, dataframe.Any, false
	}
	return fd.Aggregate, fd.ReturnType, true
}
