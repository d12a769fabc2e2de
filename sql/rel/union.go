package rel

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// UnionPlugin concatenates the rows of all children. Columns match by
// position; every child must have the same logical column count and
// SQL-compatible column types (numeric widths coerce, everything else
// must agree). The first child supplies the output logical names.
// Duplicates are preserved unless the node requests deduplication, which
// dedups on the full row tuple with NULLs comparing equal.
type UnionPlugin struct{}

func (UnionPlugin) Kind() string { return plan.KindUnion }

func (UnionPlugin) Convert(node plan.Node, children []container.DataContainer, _ *ConvertContext) (container.DataContainer, error) {
	union, ok := node.(*plan.Union)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Union, got %T", node)
	}
	if len(children) < 2 {
		return container.DataContainer{}, fmt.Errorf("union expects at least 2 children, got %d", len(children))
	}

	width := children[0].Columns.Len()
	for i, child := range children[1:] {
		if child.Columns.Len() != width {
			return container.DataContainer{}, sqlerr.Newf(sqlerr.DatatypeMismatch,
				"union child %d has %d columns, expected %d", i+1, child.Columns.Len(), width)
		}
	}

	// Decide the output column types, coercing across the numeric family.
	outTypes := make([]dataframe.ColumnType, width)
	for c := 0; c < width; c++ {
		for i, child := range children {
			s, err := child.Series(c)
			if err != nil {
				return container.DataContainer{}, err
			}
			if i == 0 {
				outTypes[c] = s.Type
				continue
			}
			merged, err := mergeColumnTypes(outTypes[c], s.Type, c)
			if err != nil {
				return container.DataContainer{}, err
			}
			outTypes[c] = merged
		}
	}

	labels := make([]string, width)
	for c := range labels {
		labels[c] = container.TemporaryLabel()
	}

	frames := make([]*dataframe.DataFrame, len(children))
	for i, child := range children {
		series := make([]dataframe.Series, width)
		for c := 0; c < width; c++ {
			s, err := child.Series(c)
			if err != nil {
				return container.DataContainer{}, err
			}
			series[c], err = coerceSeries(s, outTypes[c], labels[c])
			if err != nil {
				return container.DataContainer{}, err
			}
		}
		df, err := dataframe.New(series...)
		if err != nil {
			return container.DataContainer{}, err
		}
		frames[i] = df
	}

	df, err := dataframe.Concat(frames...)
	if err != nil {
		return container.DataContainer{}, err
	}
	if !union.All {
		df = df.DropDuplicates()
	}

	cc := container.NewColumnContainer(nil)
	for c, logical := range children[0].Columns.Columns() {
		cc, err = cc.Add(logical, labels[c])
		if err != nil {
			return container.DataContainer{}, err
		}
	}
	return container.New(df, cc), nil
}

// mergeColumnTypes checks SQL-level compatibility of two column types
// and picks the wider one within the numeric family.
func mergeColumnTypes(a, b dataframe.ColumnType, col int) (dataframe.ColumnType, error) {
	if a == b {
		return a, nil
	}
	sa, err := types.ToSQLType(a)
	if err != nil {
		return dataframe.Any, err
	}
	sb, err := types.ToSQLType(b)
	if err != nil {
		return dataframe.Any, err
	}
	if types.IsNumeric(sa) && types.IsNumeric(sb) {
		return dataframe.Float64, nil
	}
	return dataframe.Any, sqlerr.Newf(sqlerr.DatatypeMismatch,
		"union column %d mixes incompatible types %s and %s", col, sa.Name(), sb.Name())
}

// coerceSeries relabels a series and widens integer cells to float64
// when the union result column is floating point.
func coerceSeries(s dataframe.Series, typ dataframe.ColumnType, label string) (dataframe.Series, error) {
	if s.Type == typ {
		return s.WithName(label), nil
	}
	data := make([]any, len(s.Data))
	for i, cell := range s.Data {
		if cell == nil {
			continue
		}
		cell, err := types.CoerceNative(types.NewValue(cell), typ)
		if err != nil {
			return dataframe.Series{}, err
		}
		data[i] = cell
	}
	return dataframe.NewSeries(label, typ, data), nil
}
