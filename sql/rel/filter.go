package rel

import (
	"fmt"

	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
)

// FilterPlugin applies a predicate as a row mask. The logical schema is
// unchanged; only the row count shrinks. The predicate's three-valued
// result collapses here: an Unknown (NULL) predicate excludes the row.
type FilterPlugin struct{}

func (FilterPlugin) Kind() string { return plan.KindFilter }

func (FilterPlugin) Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	filter, ok := node.(*plan.Filter)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Filter, got %T", node)
	}
	child := children[0]

	d, err := ctx.Rex(filter.Condition, child)
	if err != nil {
		return container.DataContainer{}, err
	}

	mask := make([]bool, child.DF.Len())
	for i := range mask {
		v := d.At(i)
		if v.IsNull() {
			continue
		}
		b, err := v.AsBool()
		if err != nil {
			return container.DataContainer{}, fmt.Errorf("filter predicate: %w", err)
		}
		mask[i] = b
	}

	df, err := child.DF.Filter(mask)
	if err != nil {
		return container.DataContainer{}, err
	}
	return container.New(df, child.Columns), nil
}
