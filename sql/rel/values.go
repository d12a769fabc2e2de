package rel

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
)

// ValuesPlugin materializes a fresh in-memory container from a literal
// row list and the declared column types. It has no child input.
type ValuesPlugin struct{}

func (ValuesPlugin) Kind() string { return plan.KindValues }

func (ValuesPlugin) Convert(node plan.Node, _ []container.DataContainer, _ *ConvertContext) (container.DataContainer, error) {
	values, ok := node.(*plan.Values)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Values, got %T", node)
	}
	width := len(values.Types)
	for r, row := range values.Rows {
		if len(row) != width {
			return container.DataContainer{}, fmt.Errorf("values row %d has %d columns, expected %d", r, len(row), width)
		}
	}

	series := make([]dataframe.Series, width)
	cc := container.NewColumnContainer(nil)
	for c := 0; c < width; c++ {
		typ, err := types.FromSQLType(values.Types[c])
		if err != nil {
			return container.DataContainer{}, err
		}
		data := make([]any, len(values.Rows))
		for r, row := range values.Rows {
			cell, err := types.CoerceNative(row[c], typ)
			if err != nil {
				return container.DataContainer{}, fmt.Errorf("values row %d column %d: %w", r, c, err)
			}
			data[r] = cell
		}
		label := container.TemporaryLabel()
		series[c] = dataframe.NewSeries(label, typ, data)
		name := ""
		if c < len(values.Names) {
			name = values.Names[c]
		}
		if name == "" {
			name = SyntheticName(c)
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
