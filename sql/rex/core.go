package rex

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// InputRefPlugin resolves a positional column reference to the current
// physical column of the input context.
type InputRefPlugin struct{}

func (InputRefPlugin) RexKind() string { return plan.RexKindInputRef }

func (InputRefPlugin) Convert(node plan.Rex, dc container.DataContainer, _ *ConvertContext) (Datum, error) {
	ref, ok := node.(*plan.InputRef)
	if !ok {
		return Datum{}, fmt.Errorf("expected *plan.InputRef, got %T", node)
	}
	s, err := dc.Series(ref.Index)
	if err != nil {
		return Datum{}, err
	}
	return Column(s), nil
}

// LiteralPlugin converts a typed SQL literal into its native broadcast
// value. NULL stays NULL, distinct from zero and the empty string.
type LiteralPlugin struct{}

func (LiteralPlugin) RexKind() string { return plan.RexKindLiteral }

func (LiteralPlugin) Convert(node plan.Rex, _ container.DataContainer, _ *ConvertContext) (Datum, error) {
	lit, ok := node.(*plan.Literal)
	if !ok {
		return Datum{}, fmt.Errorf("expected *plan.Literal, got %T", node)
	}
	typ, err := types.FromSQLType(lit.Type)
	if err != nil {
		return Datum{}, err
	}
	cell, err := types.CoerceNative(lit.Value, typ)
	if err != nil {
		return Datum{}, err
	}
	return Scalar(types.ValueFromNative(cell), typ), nil
}

// CallPlugin resolves an operator name to a built-in operation or a
// user-registered scalar function and applies it over the recursively
// converted argument list.
type CallPlugin struct{}

func (CallPlugin) RexKind() string { return plan.RexKindCall }

func (CallPlugin) Convert(node plan.Rex, dc container.DataContainer, ctx *ConvertContext) (Datum, error) {
	call, ok := node.(*plan.Call)
	if !ok {
		return Datum{}, fmt.Errorf("expected *plan.Call, got %T", node)
	}

	args := make([]Datum, len(call.Operands))
	for i, operand := range call.Operands {
		d, err := ctx.Converter.Convert(operand, dc, ctx.Functions)
		if err != nil {
			return Datum{}, err
		}
		args[i] = d
	}

	name := strings.ToLower(call.Operator)
	if op, ok := operations[name]; ok {
		return op(args, dc.DF.Len())
	}
	if ctx.Functions != nil {
		if fn, ret, ok := ctx.Functions.ScalarFunction(name); ok {
			// Registered functions are applied row by row.
			return elementwise(args, dc.DF.Len(), ret, func(vals []types.Value) (types.Value, error) {
				return fn(vals)
			})
		}
	}
	return Datum{}, sqlerr.UnsupportedOperationError(call.Operator)
}
