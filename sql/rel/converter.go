// Package rel converts relational-algebra plan nodes into data
// containers. Conversion walks the plan depth-first, children before
// parent, dispatching each node to the plugin registered for its kind.
package rel

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/rex"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// AggregateFunc is a user-registered aggregation. It receives the
// grouped column values, missing values included, and returns one value
// for the group.
type AggregateFunc func(values []types.Value) (types.Value, error)

// Catalog resolves registered tables and functions during conversion.
// Names are case-folded by the caller before lookup.
type Catalog interface {
	rex.Functions
	// Table returns the data container registered under the name.
	Table(name string) (container.DataContainer, bool)
	// AggregateFunction returns a registered aggregation and its
	// declared native return type.
	AggregateFunction(name string) (AggregateFunc, dataframe.ColumnType, bool)
}

// Plugin converts one plan node kind.
type Plugin interface {
	// Kind returns the plan node kind this plugin handles.
	Kind() string
	// Convert turns the node, given its already-converted children, into
	// a data container.
	Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error)
}

// ConvertContext carries what plugins need beyond the node itself.
type ConvertContext struct {
	Converter *Converter
	Catalog   Catalog
}

// Rex converts a scalar sub-expression against the given row context.
func (ctx *ConvertContext) Rex(e plan.Rex, dc container.DataContainer) (rex.Datum, error) {
	return ctx.Converter.rex.Convert(e, dc, ctx.Catalog)
}

// NullOrdering resolves a per-key null ordering against the converter's
// configured default.
func (ctx *ConvertContext) NullOrdering(key plan.NullOrdering) plan.NullOrdering {
	if key != plan.NullsDefault {
		return key
	}
	return ctx.Converter.nulls
}

// Converter dispatches plan nodes to registered plugins.
type Converter struct {
	plugins map[string]Plugin
	rex     *rex.Converter
	nulls   plan.NullOrdering
}

// Option configures a Converter.
type Option func(*Converter)

// WithNullOrdering sets the default placement of NULL sort keys.
// The default is NULLS LAST.
func WithNullOrdering(n plan.NullOrdering) Option {
	return func(c *Converter) {
		c.nulls = n
	}
}

// NewConverter creates a converter with the default plugins registered
// for every plan node kind. Caller-installed plugins registered before
// defaults survive, since defaults never replace.
func NewConverter(rx *rex.Converter, opts ...Option) *Converter {
	c := &Converter{
		plugins: make(map[string]Plugin),
		rex:     rx,
		nulls:   plan.NullsLast,
	}
	for _, opt := range opts {
		opt(c)
	}
	_ = c.Register(TableScanPlugin{}, false)
	_ = c.Register(FilterPlugin{}, false)
	_ = c.Register(ProjectPlugin{}, false)
	_ = c.Register(JoinPlugin{}, false)
	_ = c.Register(AggregatePlugin{}, false)
	_ = c.Register(SortPlugin{}, false)
	_ = c.Register(UnionPlugin{}, false)
	_ = c.Register(ValuesPlugin{}, false)
	return c
}

// Register installs a plugin for its node kind. When a plugin for the
// kind already exists, registration fails unless replace is set.
func (c *Converter) Register(p Plugin, replace bool) error {
	if _, ok := c.plugins[p.Kind()]; ok && !replace {
		return fmt.Errorf("rel plugin for kind %q already registered", p.Kind())
	}
	c.plugins[p.Kind()] = p
	return nil
}

// Convert walks the plan depth-first and produces the final data
// container. Any plugin failure aborts the whole conversion.
func (c *Converter) Convert(node plan.Node, cat Catalog) (container.DataContainer, error) {
	children := node.Children()
	converted := make([]container.DataContainer, len(children))
	for i, child := range children {
		dc, err := c.Convert(child, cat)
		if err != nil {
			return container.DataContainer{}, err
		}
		converted[i] = dc
	}

	p, ok := c.plugins[node.Kind()]
	if !ok {
		return container.DataContainer{}, sqlerr.UnsupportedOperationError(node.Kind()).
			WithDetail("no rel plugin registered for this plan node kind")
	}
	dc, err := p.Convert(node, converted, &ConvertContext{Converter: c, Catalog: cat})
	if err != nil {
		ge := sqlerr.GetError(err)
		if ge.Node == "" {
			ge = ge.WithNode(node.Kind())
		}
		return container.DataContainer{}, ge
	}
	return dc, nil
}
