package rel

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
)

// JoinPlugin joins two children on a condition evaluated over their
// combined schema (left columns followed by right columns). Both sides
// get fresh physical labels before combining, so labels never collide; a
// right-side logical name colliding with a left one gets a numeric
// suffix, calcite style, while each side's names stay independent.
type JoinPlugin struct{}

func (JoinPlugin) Kind() string { return plan.KindJoin }

func (JoinPlugin) Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	join, ok := node.(*plan.Join)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Join, got %T", node)
	}

	left, err := relabeled(children[0])
	if err != nil {
		return container.DataContainer{}, err
	}
	right, err := relabeled(children[1])
	if err != nil {
		return container.DataContainer{}, err
	}

	combinedDF, err := left.DF.CrossJoin(right.DF)
	if err != nil {
		return container.DataContainer{}, err
	}
	combinedCC := left.Columns
	for _, logical := range right.Columns.Columns() {
		physical, err := right.Columns.PhysicalLabel(logical)
		if err != nil {
			return container.DataContainer{}, err
		}
		combinedCC, err = combinedCC.Add(disambiguate(combinedCC, logical), physical)
		if err != nil {
			return container.DataContainer{}, err
		}
	}
	combined := container.New(combinedDF, combinedCC)

	d, err := ctx.Rex(join.Condition, combined)
	if err != nil {
		return container.DataContainer{}, err
	}

	nl, nr := left.DF.Len(), right.DF.Len()
	matchedL := make([]bool, nl)
	matchedR := make([]bool, nr)
	keep := make([]int, 0, nl)
	for k := 0; k < nl*nr; k++ {
		v := d.At(k)
		if v.IsNull() {
			continue
		}
		b, err := v.AsBool()
		if err != nil {
			return container.DataContainer{}, fmt.Errorf("join condition: %w", err)
		}
		if b {
			keep = append(keep, k)
			matchedL[k/nr] = true
			matchedR[k%nr] = true
		}
	}

	parts := []*dataframe.DataFrame{combinedDF.Take(keep)}
	if join.JoinType == plan.LeftJoin || join.JoinType == plan.FullJoin {
		pad, err := nullPadded(left.DF, right.DF, unmatched(matchedL), true)
		if err != nil {
			return container.DataContainer{}, err
		}
		parts = append(parts, pad)
	}
	if join.JoinType == plan.RightJoin || join.JoinType == plan.FullJoin {
		pad, err := nullPadded(left.DF, right.DF, unmatched(matchedR), false)
		if err != nil {
			return container.DataContainer{}, err
		}
		parts = append(parts, pad)
	}
	df, err := dataframe.Concat(parts...)
	if err != nil {
		return container.DataContainer{}, err
	}
	return container.New(df, combinedCC), nil
}

// relabeled reduces a container's frame to its visible columns under
// fresh physical labels, keeping the logical names.
func relabeled(dc container.DataContainer) (container.DataContainer, error) {
	series := make([]dataframe.Series, 0, dc.Columns.Len())
	cc := container.NewColumnContainer(nil)
	for i, logical := range dc.Columns.Columns() {
		s, err := dc.Series(i)
		if err != nil {
			return container.DataContainer{}, err
		}
		label := container.TemporaryLabel()
		series = append(series, s.WithName(label))
		cc, err = cc.Add(logical, label)
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

// disambiguate appends a numeric suffix until the logical name is unique
// within the container.
func disambiguate(cc container.ColumnContainer, logical string) string {
	if _, err := cc.PhysicalLabel(logical); err != nil {
		return logical
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s%d", logical, i)
		if _, err := cc.PhysicalLabel(candidate); err != nil {
			return candidate
		}
	}
}

// unmatched collects the indices still false in the matched set.
func unmatched(matched []bool) []int {
	var out []int
	for i, m := range matched {
		if !m {
			out = append(out, i)
		}
	}
	return out
}

// nullPadded builds the outer-join rows for one side: the kept side's
// rows at the given indices, the other side all NULL.
func nullPadded(left, right *dataframe.DataFrame, indices []int, keepLeft bool) (*dataframe.DataFrame, error) {
	var kept, padded *dataframe.DataFrame
	if keepLeft {
		kept, padded = left.Take(indices), right
	} else {
		kept, padded = right.Take(indices), left
	}
	nulls := make([]dataframe.Series, 0, padded.Width())
	for _, name := range padded.Columns() {
		s, err := padded.Column(name)
		if err != nil {
			return nil, err
		}
		nulls = append(nulls, dataframe.NullSeries(s.Name, s.Type, len(indices)))
	}

	var series []dataframe.Series
	if keepLeft {
		series = append(keptSeries(kept), nulls...)
	} else {
		series = append(nulls, keptSeries(kept)...)
	}
	return dataframe.New(series...)
}

func keptSeries(df *dataframe.DataFrame) []dataframe.Series {
	out := make([]dataframe.Series, 0, df.Width())
	for _, name := range df.Columns() {
		s, _ := df.Column(name)
		out = append(out, s)
	}
	return out
}
