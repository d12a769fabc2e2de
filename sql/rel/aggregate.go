package rel

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// AggregatePlugin partitions the child rows by the group-key columns and
// computes one value per group for each aggregate call. Group keys keep
// their logical names; aggregate outputs get the supplied alias or a
// synthetic name. Groups appear in first-appearance order.
type AggregatePlugin struct{}

func (AggregatePlugin) Kind() string { return plan.KindAggregate }

func (AggregatePlugin) Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	agg, ok := node.(*plan.Aggregate)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Aggregate, got %T", node)
	}
	child := children[0]

	keySeries := make([]dataframe.Series, len(agg.GroupBy))
	keyNames := make([]string, len(agg.GroupBy))
	logicals := child.Columns.Columns()
	for i, idx := range agg.GroupBy {
		s, err := child.Series(idx)
		if err != nil {
			return container.DataContainer{}, err
		}
		keySeries[i] = s
		keyNames[i] = logicals[idx]
	}

	groups := groupRows(keySeries, child.DF.Len())

	series := make([]dataframe.Series, 0, len(agg.GroupBy)+len(agg.Calls))
	cc := container.NewColumnContainer(nil)

	for i, ks := range keySeries {
		data := make([]any, len(groups))
		for gi, g := range groups {
			data[gi] = ks.Data[g[0]]
		}
		label := container.TemporaryLabel()
		series = append(series, dataframe.NewSeries(label, ks.Type, data))
		var err error
		cc, err = cc.Add(keyNames[i], label)
		if err != nil {
			return container.DataContainer{}, err
		}
	}

	for i, call := range agg.Calls {
		out, typ, err := computeCall(call, child, groups, ctx)
		if err != nil {
			return container.DataContainer{}, err
		}
		label := container.TemporaryLabel()
		series = append(series, dataframe.NewSeries(label, typ, out))
		name := call.Alias
		if name == "" {
			name = SyntheticName(len(agg.GroupBy) + i)
		}
		cc, err = cc.Add(name, label)
		if err != nil {
			return container.DataContainer{}, err
		}
	}

	df, err := dataframe.New(series...)
	if err != nil {
		return container.DataContainer{}, err
	}
	return container.New(df, cc), nil
}

// groupRows partitions row indices by the key tuple, in first-appearance
// order. With no keys every row lands in a single group, so aggregates
// without GROUP BY still yield exactly one row.
func groupRows(keys []dataframe.Series, n int) [][]int {
	if len(keys) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}
	index := make(map[string]int)
	var groups [][]int
	for row := 0; row < n; row++ {
		var b strings.Builder
		for _, k := range keys {
			dataframe.WriteCellKey(&b, k.Data[row])
		}
		key := b.String()
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], row)
	}
	return groups
}

// computeCall evaluates one aggregate call over every group.
func computeCall(call plan.AggregateCall, child container.DataContainer, groups [][]int, ctx *ConvertContext) ([]any, dataframe.ColumnType, error) {
	name := strings.ToLower(call.Function)

	// COUNT(*) counts rows, missing values included.
	if call.Arg < 0 {
		if name != "count" {
			return nil, dataframe.Any, sqlerr.UnsupportedOperationError(call.Function).
				WithDetail("only COUNT may aggregate without an input column")
		}
		out := make([]any, len(groups))
		for gi, g := range groups {
			out[gi] = int64(len(g))
		}
		return out, dataframe.Int64, nil
	}

	arg, err := child.Series(call.Arg)
	if err != nil {
		return nil, dataframe.Any, err
	}

	fn, typ, err := resolveAggregate(name, call.Function, arg.Type, ctx)
	if err != nil {
		return nil, dataframe.Any, err
	}

	out := make([]any, len(groups))
	for gi, g := range groups {
		vals := make([]types.Value, len(g))
		for i, row := range g {
			vals[i] = types.ValueFromNative(arg.Data[row])
		}
		v, err := fn(vals)
		if err != nil {
			return nil, dataframe.Any, fmt.Errorf("aggregate %s: %w", call.Function, err)
		}
		out[gi] = types.NativeFromValue(v)
	}
	return out, typ, nil
}

// resolveAggregate finds a built-in or registered aggregation and its
// result type. Built-ins win, so registry entries cannot shadow them.
func resolveAggregate(name, original string, argType dataframe.ColumnType, ctx *ConvertContext) (AggregateFunc, dataframe.ColumnType, error) {
	switch name {
	case "sum":
		return aggSum, argType, nil
	case "count":
		return aggCount, dataframe.Int64, nil
	case "avg":
		return aggAvg, dataframe.Float64, nil
	case "min":
		return aggMin, argType, nil
	case "max":
		return aggMax, argType, nil
	}
	if fn, typ, ok := ctx.Catalog.AggregateFunction(name); ok {
		return fn, typ, nil
	}
	return nil, dataframe.Any, sqlerr.UnsupportedOperationError(original)
}

// aggSum skips missing values; a group with none yields NULL.
func aggSum(vals []types.Value) (types.Value, error) {
	var i64 int64
	var f64 float64
	seen, isFloat := false, false
	for _, v := range vals {
		if v.IsNull() {
			continue
		}
		seen = true
		switch x := v.Data.(type) {
		case int64:
			i64 += x
			f64 += float64(x)
		case float64:
			isFloat = true
			f64 += x
		default:
			return types.Value{}, fmt.Errorf("cannot sum %T", v.Data)
		}
	}
	if !seen {
		return types.NewNullValue(), nil
	}
	if isFloat {
		return types.NewValue(f64), nil
	}
	return types.NewValue(i64), nil
}

// aggCount counts non-missing values.
func aggCount(vals []types.Value) (types.Value, error) {
	var n int64
	for _, v := range vals {
		if !v.IsNull() {
			n++
		}
	}
	return types.NewValue(n), nil
}

func aggAvg(vals []types.Value) (types.Value, error) {
	var sum float64
	var n int64
	for _, v := range vals {
		if v.IsNull() {
			continue
		}
		f, err := v.AsDouble()
		if err != nil {
			return types.Value{}, err
		}
		sum += f
		n++
	}
	if n == 0 {
		return types.NewNullValue(), nil
	}
	return types.NewValue(sum / float64(n)), nil
}

func aggMin(vals []types.Value) (types.Value, error) {
	return aggExtreme(vals, -1)
}

func aggMax(vals []types.Value) (types.Value, error) {
	return aggExtreme(vals, 1)
}

func aggExtreme(vals []types.Value, want int) (types.Value, error) {
	best := types.NewNullValue()
	for _, v := range vals {
		if v.IsNull() {
			continue
		}
		if best.IsNull() || types.CompareValues(v, best) == want {
			best = v
		}
	}
	return best, nil
}
