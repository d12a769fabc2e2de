package rex

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// ScalarFunc is a user-registered scalar function, applied row-wise.
type ScalarFunc func(args []types.Value) (types.Value, error)

// Functions resolves user-registered scalar functions by case-folded
// name, yielding the callable and its declared native return type.
type Functions interface {
	ScalarFunction(name string) (ScalarFunc, dataframe.ColumnType, bool)
}

// Plugin converts one scalar expression node kind.
type Plugin interface {
	// RexKind returns the expression node kind this plugin handles.
	RexKind() string
	// Convert turns the node into a datum over the input context.
	Convert(node plan.Rex, dc container.DataContainer, ctx *ConvertContext) (Datum, error)
}

// ConvertContext carries what plugins need beyond the input container.
type ConvertContext struct {
	Converter *Converter
	Functions Functions
}

// Converter dispatches scalar expression nodes to registered plugins.
type Converter struct {
	plugins map[string]Plugin
}

// NewConverter creates a converter with the core plugins (input
// reference, literal, call) registered.
func NewConverter() *Converter {
	c := &Converter{plugins: make(map[string]Plugin)}
	// Core plugins; replace=false keeps any caller-installed plugin.
	_ = c.Register(InputRefPlugin{}, false)
	_ = c.Register(LiteralPlugin{}, false)
	_ = c.Register(CallPlugin{}, false)
	return c
}

// Register installs a plugin for its node kind. When a plugin for the
// kind already exists, registration fails unless replace is set.
func (c *Converter) Register(p Plugin, replace bool) error {
	if _, ok := c.plugins[p.RexKind()]; ok && !replace {
		return fmt.Errorf("rex plugin for kind %q already registered", p.RexKind())
	}
	c.plugins[p.RexKind()] = p
	return nil
}

// Convert turns a scalar expression into a datum over dc's columns.
func (c *Converter) Convert(node plan.Rex, dc container.DataContainer, funcs Functions) (Datum, error) {
	p, ok := c.plugins[node.RexKind()]
	if !ok {
		return Datum{}, sqlerr.UnsupportedOperationError(node.RexKind()).
			WithDetail("no rex plugin registered for this expression kind")
	}
	d, err := p.Convert(node, dc, &ConvertContext{Converter: c, Functions: funcs})
	if err != nil {
		ge := sqlerr.GetError(err)
		if ge.Node == "" {
			ge = ge.WithNode(node.RexKind())
		}
		return Datum{}, ge
	}
	return d, nil
}
