// Package rex converts scalar expression nodes into column-level
// computations over a data container. Conversion is plugin-dispatched on
// the expression node kind, so new kinds register without touching the
// existing plugins.
package rex

import (
	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/types"
)

// Datum is the result of converting one scalar expression: either a
// whole column of the input context or a scalar broadcast across its
// rows.
type Datum struct {
	series dataframe.Series
	scalar types.Value
	typ    dataframe.ColumnType
	isCol  bool
}

// Column wraps a physical series as a datum.
func Column(s dataframe.Series) Datum {
	return Datum{series: s, typ: s.Type, isCol: true}
}

// Scalar wraps a broadcast value as a datum.
func Scalar(v types.Value, typ dataframe.ColumnType) Datum {
	return Datum{scalar: v, typ: typ}
}

// IsScalar reports whether the datum is a broadcast scalar.
func (d Datum) IsScalar() bool {
	return !d.isCol
}

// Type returns the native column type of the datum.
func (d Datum) Type() dataframe.ColumnType {
	return d.typ
}

// At returns the value for row i. Scalars broadcast to every row.
func (d Datum) At(i int) types.Value {
	if !d.isCol {
		return d.scalar
	}
	return types.ValueFromNative(d.series.Data[i])
}

// Series materializes the datum as a series of n rows under the given
// physical label.
func (d Datum) Series(label string, n int) dataframe.Series {
	if d.isCol {
		return d.series.WithName(label)
	}
	data := make([]any, n)
	cell := types.NativeFromValue(d.scalar)
	for i := range data {
		data[i] = cell
	}
	return dataframe.NewSeries(label, d.typ, data)
}
